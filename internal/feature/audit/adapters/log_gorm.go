// Package adapters はauditフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"catalog_backend/internal/feature/audit/domain/entity"
	"catalog_backend/internal/feature/audit/usecase"
)

// LogModel は logs テーブルの行です。追記のみで更新・削除はしません。
type LogModel struct {
	ID        uint      `gorm:"primaryKey"`
	Operation string    `gorm:"size:255;not null"`
	Type      string    `gorm:"size:16;not null;index"`
	UserID    uint      `gorm:"not null;index"`
	Date      time.Time `gorm:"not null;autoCreateTime"`
}

func (LogModel) TableName() string {
	return "logs"
}

// logRow はユーザー名を結合した一覧取得用の行です。
type logRow struct {
	ID        uint
	Operation string
	Type      string
	UserID    uint
	UserName  string
	Date      time.Time
}

type logGorm struct {
	db *gorm.DB
}

var _ usecase.LogRepository = (*logGorm)(nil)

// NewLogRepository はGORMを使ったLogRepositoryを生成します。
func NewLogRepository(db *gorm.DB) *logGorm {
	return &logGorm{db: db}
}

// Create はエントリを追加し、採番されたIDと日時をeに書き戻します。
func (r *logGorm) Create(ctx context.Context, e *entity.LogEntry) error {
	m := LogModel{
		Operation: e.Operation,
		Type:      string(e.Type),
		UserID:    e.UserID,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	e.ID = m.ID
	e.Date = m.Date
	return nil
}

// List はフィルタ条件をANDで結合し、実行ユーザー名を付けて返します。
// 論理削除済みユーザーのエントリも名前付きで返します。
func (r *logGorm) List(ctx context.Context, f entity.Filter) ([]entity.LogEntry, error) {
	q := r.db.WithContext(ctx).
		Table("logs AS l").
		Select("l.id, l.operation, l.type, l.user_id, COALESCE(u.name, '') AS user_name, l.date").
		Joins("LEFT JOIN users u ON u.id = l.user_id")

	if f.Kind != "" {
		q = q.Where("l.type = ?", string(f.Kind))
	}
	if f.UserID != 0 {
		q = q.Where("l.user_id = ?", f.UserID)
	}
	if f.Order == entity.OrderAsc {
		q = q.Order("l.id ASC")
	} else {
		q = q.Order("l.id DESC")
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var rows []logRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.LogEntry, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.LogEntry{
			ID:        m.ID,
			Operation: m.Operation,
			Type:      entity.Kind(m.Type),
			UserID:    m.UserID,
			UserName:  m.UserName,
			Date:      m.Date,
		})
	}
	return out, nil
}

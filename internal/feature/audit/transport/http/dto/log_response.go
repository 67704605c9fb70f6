// Package dto はauditフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"catalog_backend/internal/feature/audit/domain/entity"
)

// LogResponse は /v1/logs/ が返す1件分のエントリです。
type LogResponse struct {
	ID        uint      `json:"id"`
	Operation string    `json:"operation"`
	Type      string    `json:"type"`
	UserID    uint      `json:"user_id"`
	UserName  string    `json:"user_name"`
	Date      time.Time `json:"date"`
}

// FromEntries はエントリ一覧をレスポンスに変換します。空でも [] を返します。
func FromEntries(entries []entity.LogEntry) []LogResponse {
	out := make([]LogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, LogResponse{
			ID:        e.ID,
			Operation: e.Operation,
			Type:      string(e.Type),
			UserID:    e.UserID,
			UserName:  e.UserName,
			Date:      e.Date.UTC(),
		})
	}
	return out
}

package adapters

import (
	"time"

	"catalog_backend/internal/feature/auth/domain/entity"
)

// TokenModel is the GORM model for the tokens table.
type TokenModel struct {
	ID        uint      `gorm:"primaryKey"`
	Key       string    `gorm:"column:token_key;size:36;not null;uniqueIndex"`
	UserID    uint      `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (TokenModel) TableName() string {
	return "tokens"
}

// ToEntity converts the GORM model to a domain entity.
func (m *TokenModel) ToEntity() *entity.Token {
	return &entity.Token{
		ID:        m.ID,
		Key:       m.Key,
		UserID:    m.UserID,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}
}

// TokenModelFromEntity converts a domain entity to a GORM model.
func TokenModelFromEntity(t *entity.Token) *TokenModel {
	return &TokenModel{
		ID:        t.ID,
		Key:       t.Key,
		UserID:    t.UserID,
		ExpiresAt: t.ExpiresAt,
		CreatedAt: t.CreatedAt,
	}
}

// Package entity defines the domain entities for the users feature.
package entity

import (
	"time"

	"gorm.io/gorm"
)

// MaskedPassword replaces the password hash whenever a user is rendered.
const MaskedPassword = "*****"

// User represents an account that can authenticate against the API.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Name is the display name.
	Name string `gorm:"size:255;not null"`

	// Email is used for authentication.
	// It must be unique across non-deleted users, hence the partial index.
	Email string `gorm:"size:255;not null;uniqueIndex:idx_users_email_active,where:deleted_at IS NULL"`

	// Password is the bcrypt hash of the user's password.
	// This should never store plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// Admin grants access to every resource.
	Admin bool `gorm:"not null"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time

	// DeletedAt marks a deleted user. The row is kept so that tokens and
	// audit entries keep pointing at an existing record.
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

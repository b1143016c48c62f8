// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account capable of authoring posts.
// It contains authentication credentials and metadata for account management.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Name is the user's display name. It must not be empty.
	Name string `gorm:"size:100;not null"`

	// Email is the user's email address used as the login key.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// PasswordHash is the bcrypt hash of the user's password.
	// This must never store the plaintext password.
	PasswordHash string `gorm:"size:255;not null"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

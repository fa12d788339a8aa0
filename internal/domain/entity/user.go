// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// MaxPasswordBytes is the longest password accepted, in bytes. bcrypt ignores
// or rejects anything past this, so every hasher is held to the same limit.
const MaxPasswordBytes = 72

// Column widths of the stored user; a session's username holds either value.
const (
	MaxNameLength  = 255
	MaxEmailLength = 255
)

// User is the single account entity of the service.
type User struct {
	ID           uuid.UUID // Server-assigned on first save, never reused or changed.
	Name         string    // Display name, not unique.
	Email        string    // Login identifier, unique across all users (exact match).
	PasswordHash string    // Output of the configured password hasher, never the plaintext.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsNew reports whether the user has not been persisted yet.
func (u *User) IsNew() bool {
	return u.ID == uuid.Nil
}

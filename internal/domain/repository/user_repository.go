// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"nexus/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	// It returns ErrUserNotFound when no such user exists.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their exact email address.
	// It returns ErrUserNotFound when no such user exists.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// ExistsByID reports whether a user with the given ID is stored.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// ExistsByEmail reports whether a user with the given email is stored.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindAll returns every stored user in creation order.
	FindAll(ctx context.Context) ([]*entity.User, error)

	// Save inserts the user when its ID is uuid.Nil and updates it otherwise.
	// On insert the generated ID and timestamps are written back to user.
	// A duplicate email is reported as domain ErrUserAlreadyExists.
	Save(ctx context.Context, user *entity.User) error

	// DeleteByID removes the user with the given ID. Deleting a missing user is not an error.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

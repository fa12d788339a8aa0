// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"nexus/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateUserInput carries the full replacement of a user's mutable fields.
type UpdateUserInput struct {
	Name     string
	Email    string
	Password string
}

// --- Output DTOs ---

// DeleteOutcome reports what DeleteUser did.
type DeleteOutcome int

const (
	// DeleteOutcomeDeleted means the user existed and was removed.
	DeleteOutcomeDeleted DeleteOutcome = iota + 1
	// DeleteOutcomeNotFound means no user had the given id.
	DeleteOutcomeNotFound
)

func (o DeleteOutcome) String() string {
	switch o {
	case DeleteOutcomeDeleted:
		return "deleted"
	case DeleteOutcomeNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// RegisterUser validates the input, rejects taken emails and stores a new user with a hashed password.
	RegisterUser(ctx context.Context, input *RegisterUserInput) (*entity.User, error)

	// Authenticate returns the user whose email and password match.
	// Unknown email and wrong password both fail with ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*entity.User, error)

	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// UpdateUser overwrites name, email and password (re-hashed) of an existing user.
	UpdateUser(ctx context.Context, id uuid.UUID, input *UpdateUserInput) (*entity.User, error)

	// DeleteUser removes a user and all of their sessions. A missing user is reported
	// through the outcome, not as an error.
	DeleteUser(ctx context.Context, id uuid.UUID) (DeleteOutcome, error)

	ListUsers(ctx context.Context) ([]*entity.User, error)
}

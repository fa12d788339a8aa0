// Package service defines interfaces for stateless domain logic whose implementations live in infra.
package service

import "nexus/internal/errors"

// ErrPasswordTooLong is returned by Hash when the password exceeds the algorithm's input limit.
var ErrPasswordTooLong = errors.New("password exceeds hasher input limit")

// PasswordHasher hashes and verifies user passwords.
// Implementations exist for bcrypt and argon2id; the algorithm is chosen by configuration.
type PasswordHasher interface {
	// Hash returns a salted digest; hashing the same password twice yields different digests.
	Hash(password string) (string, error)

	// Check reports whether password matches hash. A malformed hash never matches.
	Check(password, hash string) bool
}

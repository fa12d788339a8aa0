package auth

import (
	"nexus/config"
	"nexus/internal/domain/service"
	"nexus/internal/errors"
)

// NewPasswordHasher selects the credential hasher configured under auth.hashAlgorithm.
func NewPasswordHasher(cfg *config.Config) (service.PasswordHasher, error) {
	if cfg.Auth == nil {
		return NewBcryptHasher(), nil
	}

	switch cfg.Auth.HashAlgorithm {
	case "", config.HashAlgorithmBcrypt:
		return NewBcryptHasherWithCost(cfg.Auth.BcryptCost), nil
	case config.HashAlgorithmArgon2id:
		return NewArgon2Hasher(DefaultArgon2Params()), nil
	default:
		return nil, errors.Errorf("unsupported hash algorithm: %s", cfg.Auth.HashAlgorithm)
	}
}

package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"nexus/internal/domain/service"
	"nexus/internal/errors"
)

// Argon2Params are the Argon2id cost parameters.
type Argon2Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2Params returns the OWASP-recommended Argon2id parameters.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Upper bounds accepted when decoding a stored digest.
const (
	maxArgon2Memory     = 1 << 20 // KiB, 1 GiB
	maxArgon2Iterations = 64
	maxArgon2KeyLength  = 1024
)

type argon2Hasher struct {
	params Argon2Params
}

// NewArgon2Hasher creates a PasswordHasher producing PHC-encoded Argon2id digests:
// $argon2id$v=19$m=65536,t=3,p=2$<salt>$<hash>
func NewArgon2Hasher(params Argon2Params) service.PasswordHasher {
	return &argon2Hasher{params: params}
}

func (h *argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "generate salt")
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Iterations, h.params.Memory, h.params.Parallelism, h.params.KeyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Iterations,
		h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (h *argon2Hasher) Check(password, hash string) bool {
	params, salt, key, err := decodeArgon2Hash(hash)
	if err != nil {
		return false
	}

	other := argon2.IDKey([]byte(password), salt, params.Iterations, params.Memory, params.Parallelism, params.KeyLength)

	return subtle.ConstantTimeCompare(key, other) == 1
}

func decodeArgon2Hash(encoded string) (Argon2Params, []byte, []byte, error) {
	var params Argon2Params

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return params, nil, nil, errors.New("invalid argon2id hash format")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return params, nil, nil, errors.Wrap(err, "parse version")
	}
	if version != argon2.Version {
		return params, nil, nil, errors.Errorf("incompatible argon2 version %d", version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Iterations, &params.Parallelism); err != nil {
		return params, nil, nil, errors.Wrap(err, "parse parameters")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, errors.Wrap(err, "decode salt")
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return params, nil, nil, errors.Wrap(err, "decode hash")
	}
	if len(key) == 0 {
		return params, nil, nil, errors.New("empty argon2id hash")
	}

	params.SaltLength = uint32(len(salt))
	params.KeyLength = uint32(len(key))

	if err := validateArgon2Params(params); err != nil {
		return params, nil, nil, err
	}

	return params, salt, key, nil
}

// validateArgon2Params rejects parameters argon2.IDKey would panic on or that exceed the decode bounds.
func validateArgon2Params(params Argon2Params) error {
	switch {
	case params.Iterations < 1 || params.Iterations > maxArgon2Iterations:
		return errors.Errorf("argon2id iterations out of range: %d", params.Iterations)
	case params.Parallelism < 1:
		return errors.New("argon2id parallelism must be at least 1")
	case params.Memory < 8*uint32(params.Parallelism) || params.Memory > maxArgon2Memory:
		return errors.Errorf("argon2id memory out of range: %d", params.Memory)
	case params.KeyLength == 0 || params.KeyLength > maxArgon2KeyLength:
		return errors.Errorf("argon2id key length out of range: %d", params.KeyLength)
	}

	return nil
}

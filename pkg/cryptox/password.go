// Package cryptox hashes and verifies passwords. The concrete KDF hides
// behind the Hasher interface so callers never depend on the algorithm.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters following the RFC 9106 low-memory recommendation.
const (
	memory      = 19 * 1024 // KiB
	iterations  = 2
	parallelism = 1
	keyLength   = 32
	saltLength  = 16
)

// ErrMismatch reports that a password does not match the stored hash.
// Malformed stored hashes surface as distinct errors for the logs, but
// callers are expected to collapse everything into one credential failure.
var ErrMismatch = errors.New("cryptox: password does not match")

// Hasher is the password hashing capability. Hash must embed a fresh random
// salt in its encoded output so Verify needs no out-of-band salt lookup.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) error
}

// Argon2id implements Hasher with PHC-encoded Argon2id digests.
type Argon2id struct{}

// Hash derives an Argon2id digest over a fresh 16-byte salt and returns the
// PHC-format string "$argon2id$v=19$m=..,t=..,p=..$salt$hash".
func (Argon2id) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, keyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		memory,
		iterations,
		parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// Verify recomputes the digest with the parameters and salt embedded in
// encodedHash and compares in constant time.
func (Argon2id) Verify(password, encodedHash string) error {
	params, salt, expected, err := decodePHC(encodedHash)
	if err != nil {
		return err
	}

	computed := argon2.IDKey(
		[]byte(password),
		salt,
		params.iterations,
		params.memory,
		params.parallelism,
		uint32(len(expected)), // #nosec G115 -- digest length is bounded by the encoding
	)

	if subtle.ConstantTimeCompare(computed, expected) != 1 {
		return ErrMismatch
	}
	return nil
}

type phcParams struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
}

// decodePHC parses "$argon2id$v=19$m=X,t=Y,p=Z$salt$hash".
func decodePHC(encoded string) (phcParams, []byte, []byte, error) {
	parts := make([]string, 0, 6)
	start := 0
	for i := range len(encoded) {
		if encoded[i] == '$' {
			parts = append(parts, encoded[start:i])
			start = i + 1
		}
	}
	parts = append(parts, encoded[start:])

	if len(parts) != 6 || parts[1] != "argon2id" {
		return phcParams{}, nil, nil, errors.New("cryptox: invalid hash format")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return phcParams{}, nil, nil, errors.New("cryptox: unsupported hash version")
	}

	var p phcParams
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.parallelism); err != nil {
		return phcParams{}, nil, nil, fmt.Errorf("cryptox: invalid hash parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return phcParams{}, nil, nil, fmt.Errorf("cryptox: invalid salt encoding: %w", err)
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return phcParams{}, nil, nil, fmt.Errorf("cryptox: invalid hash encoding: %w", err)
	}

	return p, salt, hash, nil
}

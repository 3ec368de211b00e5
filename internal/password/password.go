// Package password turns plaintext passwords into self-describing stored
// credentials and verifies them. Two schemes are supported: argon2id
// (preferred) and bcrypt over a SHA-256 pre-hash (fallback). The pre-hash
// lifts bcrypt's 72-byte input ceiling so passphrases of 200+ characters
// survive both schemes without truncation.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"

	"github.com/NO-YA/MedBridge/internal/config"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16

	bcryptCost = 10
)

// Hasher produces and verifies password credentials. The {scheme, fallback}
// pair is fixed at construction, from the enumeration resolved at startup.
// Hash always uses the active scheme; Verify accepts credentials minted under
// either scheme of the pair, so a deployment can rotate from the fallback to
// the preferred scheme without invalidating stored rows. Credentials from
// schemes outside the pair are rejected.
type Hasher struct {
	scheme   config.HashScheme
	fallback config.HashScheme
}

// New returns a Hasher for the given scheme pair.
func New(scheme, fallback config.HashScheme) *Hasher {
	return &Hasher{scheme: scheme, fallback: fallback}
}

// Scheme reports the active hashing scheme.
func (h *Hasher) Scheme() config.HashScheme {
	return h.scheme
}

// Hash transforms plaintext into a storable credential. It fails only when
// the entropy source does, which is not recoverable.
func (h *Hasher) Hash(plaintext string) (string, error) {
	switch h.scheme {
	case config.SchemeBcryptSHA256:
		return hashBcryptSHA256(plaintext)
	default:
		return hashArgon2id(plaintext)
	}
}

// Verify reports whether plaintext matches the stored credential. A
// malformed credential, or one minted under a scheme outside the configured
// pair, is an ordinary mismatch, never an error.
func (h *Hasher) Verify(plaintext, credential string) bool {
	switch {
	case strings.HasPrefix(credential, "$argon2id$"):
		return h.allows(config.SchemeArgon2id) && verifyArgon2id(plaintext, credential)
	case strings.HasPrefix(credential, "$2"):
		return h.allows(config.SchemeBcryptSHA256) &&
			bcrypt.CompareHashAndPassword([]byte(credential), prehash(plaintext)) == nil
	default:
		return false
	}
}

func (h *Hasher) allows(scheme config.HashScheme) bool {
	return h.scheme == scheme || h.fallback == scheme
}

// prehash maps arbitrary-length plaintext into 64 hex bytes, below bcrypt's
// 72-byte limit.
func prehash(plaintext string) []byte {
	sum := sha256.Sum256([]byte(plaintext))
	return []byte(hex.EncodeToString(sum[:]))
}

func hashBcryptSHA256(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(prehash(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(hashed), nil
}

func hashArgon2id(plaintext string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}
	key := argon2.IDKey([]byte(plaintext), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// verifyArgon2id recomputes the key with the parameters embedded in the
// credential and compares in constant time.
func verifyArgon2id(plaintext, credential string) bool {
	parts := strings.Split(credential, "$")
	// ["", "argon2id", "v=19", "m=...,t=...,p=...", salt, hash]
	if len(parts) != 6 {
		return false
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}
	var memory uint32
	var time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}
	if memory == 0 || time == 0 || threads == 0 {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false
	}
	got := argon2.IDKey([]byte(plaintext), salt, time, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the default PBKDF2 round count
	DefaultIterations = 100_000
	// Algorithm is the tag stored in front of every credential
	Algorithm = "pbkdf2_sha256"

	saltLength   = 16
	digestLength = 32
	separator    = "$"
)

var randomRead = rand.Read

// Hasher derives and verifies password credentials.
// A credential is "pbkdf2_sha256$<iterations>$<hex salt>$<hex digest>".
type Hasher struct {
	Iterations int
}

// NewHasher creates a hasher; non-positive iterations fall back to DefaultIterations
func NewHasher(iterations int) *Hasher {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &Hasher{Iterations: iterations}
}

// Hash derives a credential from a raw password using a fresh random salt
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := randomRead(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	iterations := h.iterations()
	digest := pbkdf2.Key([]byte(password), salt, iterations, digestLength, sha256.New)

	return strings.Join([]string{
		Algorithm,
		strconv.Itoa(iterations),
		hex.EncodeToString(salt),
		hex.EncodeToString(digest),
	}, separator), nil
}

// Verify reports whether attempt matches the stored credential.
// Malformed credentials never match.
func (h *Hasher) Verify(credential, attempt string) bool {
	parts := strings.Split(credential, separator)
	if len(parts) != 4 || parts[0] != Algorithm {
		return false
	}

	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return false
	}

	salt, err := hex.DecodeString(parts[2])
	if err != nil || len(salt) == 0 {
		return false
	}

	expected, err := hex.DecodeString(parts[3])
	if err != nil || len(expected) == 0 {
		return false
	}

	actual := pbkdf2.Key([]byte(attempt), salt, iterations, len(expected), sha256.New)
	return subtle.ConstantTimeCompare(actual, expected) == 1
}

func (h *Hasher) iterations() int {
	if h == nil || h.Iterations <= 0 {
		return DefaultIterations
	}
	return h.Iterations
}

// GenerateRandomToken generates a random token of specified length
func GenerateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

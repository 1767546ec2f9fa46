package crypto

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12

	// TempPasswordLength is the length of generated temporary passwords
	TempPasswordLength = 12

	// PlaceholderHash is stored on accounts that have not been approved yet.
	// It is not a bcrypt digest, so CheckPassword can never succeed against it.
	PlaceholderHash = "!unverified-account"

	tempPasswordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

var (
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	randomRead                 = rand.Read
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcryptGenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword compares a password with a hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateTempPassword generates a random password from the 62-symbol
// alphanumeric alphabet. Selection is uniform per character: random bytes
// outside the largest multiple of the alphabet size are rejected and redrawn.
func GenerateTempPassword(length int) (string, error) {
	if length <= 0 {
		length = TempPasswordLength
	}

	// 248 = 62*4 is the largest multiple of len(alphabet) below 256.
	const max = byte(248)

	out := make([]byte, 0, length)
	buf := make([]byte, length)
	for len(out) < length {
		if _, err := randomRead(buf); err != nil {
			return "", fmt.Errorf("failed to generate temp password: %w", err)
		}
		for _, b := range buf {
			if b >= max {
				continue
			}
			out = append(out, tempPasswordAlphabet[int(b)%len(tempPasswordAlphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}

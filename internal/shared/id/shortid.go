// Package id generates the short human-readable codes used as external
// ticket and moderation case identifiers.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// alphabet is uppercase-alphanumeric; codes are meant to be read aloud
	// and typed back by humans.
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Generate creates a random short ID with the specified length.
// The generated ID is cryptographically random.
func Generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("id length must be positive, got %d", length)
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

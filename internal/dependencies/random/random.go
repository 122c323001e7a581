package random

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

// Random provides credential generation that can be mocked for testing
type Random interface {
	// Digits generates a random numeric string of the given length
	Digits(length int) string

	// Secret generates a random token-binding secret
	Secret() string
}

// CryptoRandom implements Random using crypto/rand and UUIDs
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Digits generates a cryptographically random numeric string
func (r *CryptoRandom) Digits(length int) string {
	if length <= 0 {
		return ""
	}
	result := make([]byte, length)
	for i := range result {
		result[i] = '0' + byte(intn(10))
	}
	return string(result)
}

// Secret generates a random UUID secret
func (r *CryptoRandom) Secret() string {
	return uuid.NewString()
}

// intn returns a cryptographically random int in [0, n)
func intn(n int) int {
	result, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// Should never happen with crypto/rand
		return 0
	}
	return int(result.Int64())
}

package mocks

import (
	"fmt"

	"github.com/openexpo/jurypanel/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing.
// Queued values are returned in order; when a queue is exhausted a
// deterministic sequence takes over so tests never see duplicates.
type MockRandom struct {
	// DigitsResults is a queue of results to return from Digits
	DigitsResults []string
	digitsIndex   int

	// SecretResults is a queue of results to return from Secret
	SecretResults []string
	secretIndex   int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Digits returns the next queued result, or a deterministic fallback
func (r *MockRandom) Digits(length int) string {
	if r.digitsIndex < len(r.DigitsResults) {
		result := r.DigitsResults[r.digitsIndex]
		r.digitsIndex++
		return result
	}
	r.digitsIndex++
	return fmt.Sprintf("%0*d", length, r.digitsIndex)
}

// Secret returns the next queued result, or a deterministic fallback
func (r *MockRandom) Secret() string {
	if r.secretIndex < len(r.SecretResults) {
		result := r.SecretResults[r.secretIndex]
		r.secretIndex++
		return result
	}
	r.secretIndex++
	return fmt.Sprintf("mock-secret-%03d", r.secretIndex)
}

// QueueDigits adds values to the Digits result queue
func (r *MockRandom) QueueDigits(values ...string) {
	r.DigitsResults = append(r.DigitsResults, values...)
}

// QueueSecret adds values to the Secret result queue
func (r *MockRandom) QueueSecret(values ...string) {
	r.SecretResults = append(r.SecretResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.DigitsResults = nil
	r.digitsIndex = 0
	r.SecretResults = nil
	r.secretIndex = 0
}

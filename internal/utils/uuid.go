package utils

import (
	"strings"

	"github.com/google/uuid"
)

type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a time-ordered UUIDv7, falling back to a random UUIDv4.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// ShortHex returns n lowercase hex characters taken from a random UUIDv4.
// n is capped at 32.
func (g *UUIDGenerator) ShortHex(n int) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > len(hex) || n < 0 {
		n = len(hex)
	}
	return hex[:n]
}

package utils

import "github.com/google/uuid"

// UUIDGenerator issues time-ordered UUIDv7 identifiers for new user and note
// records. Falling back to a random UUIDv4 keeps creation paths working even
// if the v7 source fails.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

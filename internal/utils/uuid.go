package utils

import "github.com/google/uuid"

// UUIDGenerator issues time-ordered (v7) identifiers, so rows inserted
// later sort after earlier ones.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a v7 uuid, falling back to v4 if the clock source fails.
func (g *UUIDGenerator) NewID() uuid.UUID {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return v7
}

// Generate returns NewID in its canonical string form.
func (g *UUIDGenerator) Generate() string {
	return g.NewID().String()
}

package id

import "github.com/google/uuid"

// Generator hands out short opaque identifiers for questions and players.
type Generator interface {
	NewID() string
}

// UUID implements Generator with random UUIDs truncated to eight hex characters.
type UUID struct{}

func New() *UUID {
	return &UUID{}
}

// NewID returns the first eight characters of a random UUID.
func (UUID) NewID() string {
	return uuid.New().String()[:8]
}

package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/inspired/internal/common/uuid Generator

// Generator hands out identifiers for rolled messages
type Generator interface {
	NewID() string
}

type randomGenerator struct{}

// New returns a Generator backed by random (version 4) UUIDs
func New() Generator {
	return randomGenerator{}
}

// NewID returns a new random UUID string
func (randomGenerator) NewID() string {
	return uuid.NewString()
}

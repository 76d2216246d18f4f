package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/inspired/internal/services/messaging Service

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetRollMessage returns a flavor line for a natural 20 or natural 1, if any
	GetRollMessage(ctx context.Context, input *GetRollMessageInput) (*GetRollMessageOutput, error)

	// GetInspirationMessage returns a flavor line for a reroll made with inspiration
	GetInspirationMessage(ctx context.Context, input *GetInspirationMessageInput) (*GetInspirationMessageOutput, error)
}

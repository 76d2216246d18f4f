package inspiration

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/inspired/internal/services/inspiration Service

import "context"

// Service defines the interface for rolls and inspiration
type Service interface {
	// Roll parses and evaluates a formula and stores it as a message
	Roll(ctx context.Context, input *RollInput) (*RollOutput, error)

	// GetInspirationState reports what a viewer is offered on a rolled message
	GetInspirationState(ctx context.Context, input *GetInspirationStateInput) (*GetInspirationStateOutput, error)

	// UseInspiration rerolls the first d20 of a message, consuming or reactivating inspiration
	UseInspiration(ctx context.Context, input *UseInspirationInput) (*UseInspirationOutput, error)

	// SetInspiration grants or removes an actor's inspiration
	SetInspiration(ctx context.Context, input *SetInspirationInput) (*SetInspirationOutput, error)

	// ListInspired returns the actors holding inspiration
	ListInspired(ctx context.Context) (*ListInspiredOutput, error)
}

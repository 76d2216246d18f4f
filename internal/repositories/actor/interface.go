package actor

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/inspired/internal/repositories/actor Repository

import (
	"context"

	"github.com/KirkDiggler/inspired/internal/models"
)

// Repository defines the interface for actor data persistence
type Repository interface {
	// SaveActor persists an actor
	SaveActor(ctx context.Context, input *SaveActorInput) error

	// UpdateInspiration sets an actor's inspiration flag if it still holds the expected value
	UpdateInspiration(ctx context.Context, input *UpdateInspirationInput) (*models.Actor, error)

	// GetActor retrieves an actor by ID
	GetActor(ctx context.Context, input *GetActorInput) (*models.Actor, error)

	// GetInspiredActors retrieves all actors currently holding inspiration
	GetInspiredActors(ctx context.Context) (*GetInspiredActorsOutput, error)
}

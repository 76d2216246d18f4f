package actor

import (
	"time"

	"github.com/KirkDiggler/inspired/internal/models"
)

type SaveActorInput struct {
	Actor *models.Actor
}

type UpdateInspirationInput struct {
	ActorID string

	// Expected is the flag the stored actor must hold for the update to apply
	Expected bool

	Inspiration bool
	UpdatedAt   time.Time
}

type GetActorInput struct {
	ActorID string
}

type GetInspiredActorsOutput struct {
	Actors []*models.Actor
}

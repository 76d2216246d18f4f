package inspiration

import (
	"github.com/KirkDiggler/inspired/internal/models"
	"github.com/KirkDiggler/inspired/internal/roll"
)

// Mode selects how inspiration changes a roll
type Mode string

const (
	// ModeConsume spends the author's inspiration to reroll the lowest d20
	ModeConsume Mode = "consume"

	// ModeReactivate gives inspiration back and rerolls the highest d20
	ModeReactivate Mode = "reactivate"
)

type RollInput struct {
	ChannelID  string
	AuthorID   string
	AuthorName string
	Formula    string
	Flavor     string
}

type RollOutput struct {
	Message *models.Message
}

type GetInspirationStateInput struct {
	MessageID  string
	ViewerID   string
	ViewerIsGM bool
}

type GetInspirationStateOutput struct {
	Message *models.Message

	// State is nil when the viewer is offered nothing
	State *models.InspirationState
}

type UseInspirationInput struct {
	MessageID string
	UserID    string
	IsGM      bool
	Mode      Mode
}

type UseInspirationOutput struct {
	Message *models.Message
	Actor   *models.Actor

	// Display holds the reused dice, nil when nothing was reused
	Display *roll.Roll

	// PreviousTotal is the message total before the reroll
	PreviousTotal int

	Reused   int
	Fresh    int
	Leftover int
}

type SetInspirationInput struct {
	ActorID     string
	ActorName   string
	Inspiration bool
	IsGM        bool
}

type SetInspirationOutput struct {
	Actor *models.Actor
}

type ListInspiredOutput struct {
	Actors []*models.Actor
}

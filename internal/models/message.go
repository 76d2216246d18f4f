package models

import (
	"time"

	"github.com/KirkDiggler/inspired/internal/roll"
)

// Message is a chat message carrying a roll
type Message struct {
	// ID is the unique identifier for the message
	ID string

	// ChannelID is the Discord channel the message was posted in
	ChannelID string

	// AuthorID is the actor who made the roll
	AuthorID string

	// Flavor is optional text shown with the roll
	Flavor string

	// Roll is the evaluated roll, including any reconciled leftovers
	Roll *roll.Roll

	// InspirationUsed counts how often inspiration changed the roll
	InspirationUsed int

	// CreatedAt is when the roll was made
	CreatedAt time.Time

	// UpdatedAt is when the roll was last changed
	UpdatedAt time.Time
}

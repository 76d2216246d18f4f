package models

import (
	"time"
)

// Actor is a character controlled by a Discord user
type Actor struct {
	// ID is the Discord user ID of the actor's owner
	ID string

	// Name is the display name of the actor
	Name string

	// Inspiration indicates the actor holds inspiration
	Inspiration bool

	// UpdatedAt is when the actor was last changed
	UpdatedAt time.Time
}

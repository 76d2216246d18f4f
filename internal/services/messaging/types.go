package messaging

import (
	"github.com/KirkDiggler/inspired/internal/roll"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	ToneNeutral     MessageTone = "neutral"
	ToneCelebration MessageTone = "celebration"
	ToneSympathetic MessageTone = "sympathetic"
	ToneDramatic    MessageTone = "dramatic"
)

// GetRollMessageInput contains parameters for getting a roll message
type GetRollMessageInput struct {
	// Roll is the evaluated roll
	Roll *roll.Roll
}

// GetRollMessageOutput contains the result of getting a roll message
type GetRollMessageOutput struct {
	// Message is empty when the roll has nothing worth commenting on
	Message string
	Tone    MessageTone
}

// GetInspirationMessageInput contains parameters for getting an inspiration message
type GetInspirationMessageInput struct {
	// Reactivated is true when the GM gave inspiration back
	Reactivated bool

	// Before and After are the totals around the reroll
	Before int
	After  int
}

// GetInspirationMessageOutput contains the result of getting an inspiration message
type GetInspirationMessageOutput struct {
	Message string
	Tone    MessageTone
}

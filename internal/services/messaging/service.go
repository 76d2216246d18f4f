package messaging

import (
	"context"
	"errors"

	"github.com/KirkDiggler/inspired/internal/dice"
	"github.com/KirkDiggler/inspired/internal/roll"
)

// ServiceConfig holds configuration for the messaging service
type ServiceConfig struct {
	// Roller picks among the candidate lines
	Roller dice.Roller
}

// service implements the Service interface
type service struct {
	roller dice.Roller
}

// NewService creates a new messaging service
func NewService(cfg *ServiceConfig) (Service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Roller == nil {
		return nil, errors.New("roller cannot be nil")
	}

	return &service{
		roller: cfg.Roller,
	}, nil
}

// GetRollMessage returns a flavor line for a natural 20 or natural 1 on a counted d20
func (s *service) GetRollMessage(ctx context.Context, input *GetRollMessageInput) (*GetRollMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	natural20, natural1 := false, false
	for _, d := range roll.Flatten(input.Roll) {
		if d.Faces != 20 {
			continue
		}
		for _, r := range d.Results {
			if !r.Counts() {
				continue
			}
			switch r.Value {
			case 20:
				natural20 = true
			case 1:
				natural1 = true
			}
		}
	}

	switch {
	case natural20:
		return &GetRollMessageOutput{
			Message: s.pick([]string{
				"Natural 20! The dice gods smile upon you.",
				"A natural 20. Bards will sing of this.",
				"Critical! Somebody write that down.",
				"Twenty. Not a number, a lifestyle.",
			}),
			Tone: ToneCelebration,
		}, nil
	case natural1:
		return &GetRollMessageOutput{
			Message: s.pick([]string{
				"A natural 1. The dice have chosen violence.",
				"Ouch. That one's going in the blooper reel.",
				"Natural 1. Maybe it's time for some inspiration?",
				"The d20 would like to apologise. It won't.",
			}),
			Tone: ToneSympathetic,
		}, nil
	default:
		return &GetRollMessageOutput{
			Tone: ToneNeutral,
		}, nil
	}
}

// GetInspirationMessage returns a flavor line for a reroll made with inspiration
func (s *service) GetInspirationMessage(ctx context.Context, input *GetInspirationMessageInput) (*GetInspirationMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.Reactivated {
		return &GetInspirationMessageOutput{
			Message: s.pick([]string{
				"The GM giveth, and the GM taketh away. Inspiration restored, fortune reversed.",
				"Fate twists the knife, but your inspiration is back.",
				"A cruel turn of luck. At least you are inspired again.",
			}),
			Tone: ToneDramatic,
		}, nil
	}

	if input.After > input.Before {
		return &GetInspirationMessageOutput{
			Message: s.pick([]string{
				"Inspiration pays off!",
				"That's what it was saved for.",
				"Heroic inspiration, heroic result.",
			}),
			Tone: ToneCelebration,
		}, nil
	}

	return &GetInspirationMessageOutput{
		Message: s.pick([]string{
			"Inspiration spent, the first roll stands.",
			"The new die sulked. Your original roll holds.",
			"Worth a try. The old roll was the better one.",
		}),
		Tone: ToneNeutral,
	}, nil
}

// pick selects one line using the roller
func (s *service) pick(lines []string) string {
	return lines[s.roller.Roll(len(lines))-1]
}

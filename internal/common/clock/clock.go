package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/KirkDiggler/inspired/internal/common/clock Clock

// Clock stamps messages and actors
type Clock interface {
	Now() time.Time
}

// systemClock reports wall time in UTC so stored timestamps compare across hosts
type systemClock struct{}

// New returns the system clock
func New() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

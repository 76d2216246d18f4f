package dice

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/KirkDiggler/inspired/internal/dice Roller

// Roller is the source of fresh die faces
type Roller interface {
	// Roll returns a face value in [1, sides]
	Roll(sides int) int
}

// Config for dice roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// randomRoller draws uniform values from a seeded source
type randomRoller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// New creates a new dice roller
func New(cfg *Config) Roller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &randomRoller{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Roll generates a random face for a die with the specified number of sides
func (r *randomRoller) Roll(sides int) int {
	r.mu.Lock()
	u := r.random.Float64()
	r.mu.Unlock()

	return MapRandomFace(u, sides)
}

// MapRandomFace maps a uniform value in [0, 1) to a face value on a die.
// Values outside the interval are clamped to the nearest face.
func MapRandomFace(u float64, sides int) int {
	if sides < 1 {
		sides = 1
	}
	face := int(math.Ceil((1 - u) * float64(sides)))
	if face < 1 {
		return 1
	}
	if face > sides {
		return sides
	}
	return face
}

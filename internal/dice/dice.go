package dice

import (
	"math/rand"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/pigparty/server/internal/dice Roller

// Roller provides dice rolling functionality
type Roller interface {
	// Roll returns a uniformly random value in [1, sides]
	Roll(sides int) int
}

// Config for dice roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// DefaultRoller implements Roller with a seeded PRNG
type DefaultRoller struct {
	random *rand.Rand
}

// New creates a new dice roller
func New(cfg *Config) *DefaultRoller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)
	random := rand.New(source)

	return &DefaultRoller{
		random: random,
	}
}

// Roll generates a random dice roll with the specified number of sides
func (r *DefaultRoller) Roll(sides int) int {
	if sides < 1 {
		sides = 6 // Default to 6-sided die
	}
	return r.random.Intn(sides) + 1
}

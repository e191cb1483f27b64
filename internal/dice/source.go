package dice

import (
	"math/rand/v2"

	rpgdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/dndtools/internal/errors"
)

//go:generate mockgen -destination=mock/mock_roller.go -package=dicemock github.com/KirkDiggler/rpg-toolkit/dice Roller

// Roller is the random source every simulation draws from.
// Roll(size) returns a uniform value in [1, size].
type Roller = rpgdice.Roller

// SourceFactory hands out one Roller per worker index
type SourceFactory func(worker int) Roller

// DefaultSource shares the toolkit's crypto backed roller, which is safe for
// concurrent use, across all workers.
func DefaultSource() SourceFactory {
	return func(int) Roller {
		return rpgdice.DefaultRoller
	}
}

// SeededSource gives every worker its own deterministic stream derived from seed
func SeededSource(seed uint64) SourceFactory {
	return func(worker int) Roller {
		return newSeededStream(seed, uint64(worker))
	}
}

// streamSalt keeps worker 0's stream distinct from NewSeededRoller(seed)
const streamSalt = 0x9e3779b97f4a7c15

// SeededRoller is a deterministic Roller backed by PCG.
// It is not safe for concurrent use; give each goroutine its own.
type SeededRoller struct {
	rng *rand.Rand
}

// NewSeededRoller returns a roller that replays the same draws for the same seed
func NewSeededRoller(seed uint64) *SeededRoller {
	return &SeededRoller{rng: rand.New(rand.NewPCG(seed, 0))}
}

func newSeededStream(seed, stream uint64) *SeededRoller {
	return &SeededRoller{rng: rand.New(rand.NewPCG(seed, streamSalt^(stream+1)))}
}

// Roll returns a value in [1, size]
func (r *SeededRoller) Roll(size int) (int, error) {
	if size < 1 {
		return 0, errors.InvalidArgumentf("die size must be positive: %d", size)
	}
	return r.rng.IntN(size) + 1, nil
}

// RollN returns count values in [1, size], in draw order
func (r *SeededRoller) RollN(count, size int) ([]int, error) {
	if count < 0 {
		return nil, errors.InvalidArgumentf("dice count must not be negative: %d", count)
	}
	out := make([]int, count)
	for i := range out {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

var _ Roller = (*SeededRoller)(nil)

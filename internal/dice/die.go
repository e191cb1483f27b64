// Package dice implements the dice mechanics: parsing NdM expressions,
// rolling groups of dice, and generating 4d6-drop-lowest stat blocks.
//
// Every function takes its randomness from an explicit Roller, so results
// are reproducible with a seeded source and safe to run from many workers
// as long as each worker owns its own Roller.
package dice

import (
	"fmt"

	"github.com/KirkDiggler/dndtools/internal/errors"
)

// Die is a supported die size
type Die int

// Supported dice
const (
	D4   Die = 4
	D6   Die = 6
	D8   Die = 8
	D10  Die = 10
	D12  Die = 12
	D20  Die = 20
	D100 Die = 100
)

var supportedDice = []Die{D4, D6, D8, D10, D12, D20, D100}

// SupportedDice returns every supported die in ascending order
func SupportedDice() []Die {
	out := make([]Die, len(supportedDice))
	copy(out, supportedDice)
	return out
}

// NewDie returns the die with the given number of sides, or an
// UNSUPPORTED_DIE error when no such die exists.
func NewDie(sides int) (Die, error) {
	d := Die(sides)
	if !d.Valid() {
		return 0, errors.InvalidArgumentf("unsupported die size: %d", sides).
			WithReason(ReasonUnsupportedDie).
			WithMeta("sides", sides)
	}
	return d, nil
}

// Valid reports whether d is one of the supported dice
func (d Die) Valid() bool {
	switch d {
	case D4, D6, D8, D10, D12, D20, D100:
		return true
	default:
		return false
	}
}

// Sides returns the number of faces
func (d Die) Sides() int {
	return int(d)
}

func (d Die) String() string {
	return fmt.Sprintf("d%d", int(d))
}

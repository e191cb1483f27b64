package dice

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/dndtools/internal/errors"
)

// Group is Count dice of the same size rolled together
type Group struct {
	Count int
	Die   Die
}

// MaxCount is the most dice a single group may hold
const MaxCount = 10000

// NewGroup validates count and die and returns the group
func NewGroup(count int, die Die) (Group, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("count", count, 0, MaxCount, vb)
	if err := vb.Build(); err != nil {
		return Group{}, errors.Wrapf(err, "invalid dice count: %d", count).
			WithReason(ReasonInvalidCount).
			WithMeta("count", count)
	}
	if !die.Valid() {
		return Group{}, errors.InvalidArgumentf("unsupported die size: %d", int(die)).
			WithReason(ReasonUnsupportedDie).
			WithMeta("sides", int(die))
	}
	return Group{Count: count, Die: die}, nil
}

func (g Group) String() string {
	return fmt.Sprintf("%d%s", g.Count, g.Die)
}

// RolledGroup is the outcome of rolling one Group.
// Rolls are in draw order and Total is their sum.
type RolledGroup struct {
	Die   Die
	Rolls []int
	Total int
}

// Count returns the number of dice rolled
func (r RolledGroup) Count() int {
	return len(r.Rolls)
}

// Batch is the outcome of rolling a sequence of groups, in input order
type Batch struct {
	Groups []RolledGroup
	Total  int
}

// StatBlock holds six ability scores sorted ascending
type StatBlock [6]int

// Descending returns the scores highest first
func (b StatBlock) Descending() []int {
	out := make([]int, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// String renders the scores highest first, space separated
func (b StatBlock) String() string {
	parts := make([]string, 0, len(b))
	for _, v := range b.Descending() {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, " ")
}

// AbilityRoll records the four d6 behind one ability score
type AbilityRoll struct {
	// Dice in draw order
	Dice    [4]int
	Dropped int
	Score   int
}

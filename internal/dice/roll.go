package dice

import (
	"github.com/KirkDiggler/dndtools/internal/errors"
)

// RollGroups rolls each group in order and totals the results.
//
// Exactly sum(Count) draws are taken from roller, one Roll call per die,
// group by group and die by die. Replaying the same draws reproduces the
// same Batch. An empty groups slice yields an empty Batch with Total 0, and
// a group with Count 0 still gets a RolledGroup with no rolls.
func RollGroups(groups []Group, roller Roller) (*Batch, error) {
	for _, g := range groups {
		if _, err := NewGroup(g.Count, g.Die); err != nil {
			return nil, err
		}
	}

	batch := &Batch{
		Groups: make([]RolledGroup, 0, len(groups)),
	}

	for gi, g := range groups {
		rolled := RolledGroup{
			Die:   g.Die,
			Rolls: make([]int, 0, min(g.Count, MaxCount)),
		}
		for i := 0; i < g.Count; i++ {
			v, err := draw(roller, g.Die)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to roll %s", g).
					WithMeta("group", gi)
			}
			rolled.Rolls = append(rolled.Rolls, v)
			rolled.Total += v
		}
		batch.Groups = append(batch.Groups, rolled)
		batch.Total += rolled.Total
	}

	return batch, nil
}

// draw takes one value from roller and checks it against the die.
func draw(roller Roller, die Die) (int, error) {
	v, err := roller.Roll(die.Sides())
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.CodeInternal, "random source failed")
	}
	if v < 1 || v > die.Sides() {
		return 0, errors.Internalf("random source returned %d for a %s", v, die).
			WithMeta("value", v)
	}
	return v, nil
}

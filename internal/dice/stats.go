package dice

import (
	"slices"

	"github.com/KirkDiggler/dndtools/internal/errors"
)

const (
	// AbilityCount is the number of scores in a stat block
	AbilityCount = 6

	// abilityDice is how many d6 are rolled per ability before dropping the lowest
	abilityDice = 4
)

// RollAbility rolls 4d6 and keeps the highest three.
// Takes exactly four draws.
func RollAbility(roller Roller) (AbilityRoll, error) {
	var ability AbilityRoll
	for i := 0; i < abilityDice; i++ {
		v, err := draw(roller, D6)
		if err != nil {
			return AbilityRoll{}, err
		}
		ability.Dice[i] = v
	}

	sorted := ability.Dice
	slices.Sort(sorted[:])

	ability.Dropped = sorted[0]
	for _, v := range sorted[1:] {
		ability.Score += v
	}

	return ability, nil
}

// GenStats generates a stat block using 4d6 drop lowest.
// Takes exactly 24 draws, four per ability, and returns scores sorted ascending.
func GenStats(roller Roller) (StatBlock, error) {
	block, _, err := GenStatsDetailed(roller)
	return block, err
}

// GenStatsDetailed is GenStats that also returns each ability's dice in
// generation order.
func GenStatsDetailed(roller Roller) (StatBlock, [AbilityCount]AbilityRoll, error) {
	var (
		block     StatBlock
		abilities [AbilityCount]AbilityRoll
	)

	for i := 0; i < AbilityCount; i++ {
		ability, err := RollAbility(roller)
		if err != nil {
			return StatBlock{}, abilities, errors.Wrapf(err, "failed to roll ability score %d", i+1)
		}
		abilities[i] = ability
		block[i] = ability.Score
	}

	slices.Sort(block[:])
	return block, abilities, nil
}

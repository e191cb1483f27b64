package dice

import (
	"time"

	dicecore "github.com/KirkDiggler/dndtools/internal/dice"
	"github.com/KirkDiggler/dndtools/internal/sinks"
)

// RollDiceInput defines the request for rolling dice
type RollDiceInput struct {
	// Notations are dice expressions such as "2d6" or "d20"
	Notations []string
}

// RollDiceOutput defines the response for rolling dice
type RollDiceOutput struct {
	Groups []dicecore.Group
	Batch  *dicecore.Batch
}

// RollAbilityScoresInput defines the request for rolling one stat block
type RollAbilityScoresInput struct{}

// RollAbilityScoresOutput defines the response for rolling one stat block
type RollAbilityScoresOutput struct {
	Block dicecore.StatBlock
	// Abilities in generation order, before the block was sorted
	Abilities [dicecore.AbilityCount]dicecore.AbilityRoll
}

// GenerateStatBlocksInput defines the request for a batch of stat blocks
type GenerateStatBlocksInput struct {
	// Count of blocks to generate; 0 means DefaultBlockCount
	Count int
	// Jobs is the number of workers; 0 means one per CPU
	Jobs int
	// Sink receives every block. Order across workers is not guaranteed.
	Sink sinks.Sink
}

// GenerateStatBlocksOutput defines the response for a batch of stat blocks
type GenerateStatBlocksOutput struct {
	BatchID   string
	Generated int
	Workers   int
	Elapsed   time.Duration
}

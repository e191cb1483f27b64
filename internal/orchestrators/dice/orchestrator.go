// Package dice implements the dice orchestrator behind the roll and stats commands
package dice

//go:generate mockgen -destination=mock/mock_service.go -package=dicemock github.com/KirkDiggler/dndtools/internal/orchestrators/dice Service

import (
	"context"
	"log/slog"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	dicecore "github.com/KirkDiggler/dndtools/internal/dice"
	"github.com/KirkDiggler/dndtools/internal/errors"
	"github.com/KirkDiggler/dndtools/internal/pkg/clock"
	"github.com/KirkDiggler/dndtools/internal/pkg/idgen"
)

const (
	// DefaultBlockCount is used when no count is requested
	DefaultBlockCount = 1

	// MethodStandard is the only supported ability score method
	MethodStandard = "4d6_drop_lowest"
)

// Service defines the interface for dice operations
type Service interface {
	// RollDice parses and rolls a set of dice expressions
	RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error)

	// RollAbilityScores rolls one stat block and keeps the dice behind it
	RollAbilityScores(ctx context.Context, input *RollAbilityScoresInput) (*RollAbilityScoresOutput, error)

	// GenerateStatBlocks rolls many stat blocks across workers into a sink
	GenerateStatBlocks(ctx context.Context, input *GenerateStatBlocksInput) (*GenerateStatBlocksOutput, error)
}

// Config holds the dependencies for the dice orchestrator
type Config struct {
	Sources     dicecore.SourceFactory
	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Sources == nil {
		vb.RequiredField("Sources")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	sources dicecore.SourceFactory
	idGen   idgen.Generator
	clock   clock.Clock
}

// NewOrchestrator creates a new dice orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		sources: cfg.Sources,
		idGen:   cfg.IDGenerator,
		clock:   cfg.Clock,
	}, nil
}

// RollDice parses every notation, then rolls them in order
func (o *orchestrator) RollDice(_ context.Context, input *RollDiceInput) (*RollDiceOutput, error) {
	if input == nil || len(input.Notations) == 0 {
		return nil, errors.InvalidArgument("missing dice")
	}

	groups, err := dicecore.ParseAll(input.Notations)
	if err != nil {
		return nil, err
	}

	batch, err := dicecore.RollGroups(groups, o.sources(0))
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll dice")
	}

	slog.Debug("Dice rolled",
		"notations", input.Notations,
		"groups", len(batch.Groups),
		"total", batch.Total,
	)

	return &RollDiceOutput{
		Groups: groups,
		Batch:  batch,
	}, nil
}

// RollAbilityScores rolls a single block with the 4d6 drop lowest method
func (o *orchestrator) RollAbilityScores(_ context.Context, _ *RollAbilityScoresInput) (*RollAbilityScoresOutput, error) {
	block, abilities, err := dicecore.GenStatsDetailed(o.sources(0))
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll ability scores")
	}

	slog.Debug("Ability scores rolled",
		"method", MethodStandard,
		"scores", block.String(),
	)

	return &RollAbilityScoresOutput{
		Block:     block,
		Abilities: abilities,
	}, nil
}

// GenerateStatBlocks fans Count generations out over Jobs workers. Each
// worker owns its own random source. The first failure cancels the rest of
// the batch and is returned; blocks already written stay written.
func (o *orchestrator) GenerateStatBlocks(ctx context.Context, input *GenerateStatBlocksInput) (*GenerateStatBlocksOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	count := input.Count
	if count == 0 {
		count = DefaultBlockCount
	}
	jobs := input.Jobs
	if jobs == 0 {
		jobs = runtime.NumCPU()
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateMin("count", count, 1, vb)
	errors.ValidateMin("jobs", jobs, 1, vb)
	if input.Sink == nil {
		vb.RequiredField("sink")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	if jobs > count {
		jobs = count
	}

	batchID := o.idGen.Generate()
	start := o.clock.Now()

	slog.Info("Generating stat blocks",
		"batch_id", batchID,
		"count", count,
		"workers", jobs,
		"method", MethodStandard,
	)

	var generated atomic.Int64
	indices := make(chan int)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(indices)
		for i := 0; i < count; i++ {
			select {
			case indices <- i:
			case <-gctx.Done():
				return nil
			}
		}
		return nil
	})

	for w := 0; w < jobs; w++ {
		roller := o.sources(w)
		g.Go(func() error {
			for idx := range indices {
				block, err := dicecore.GenStats(roller)
				if err != nil {
					return errors.Wrapf(err, "failed to generate stat block %d", idx+1).
						WithMetaMap(map[string]interface{}{"worker": w, "block": idx + 1})
				}
				if err := input.Sink.Write(block); err != nil {
					return errors.Wrapf(err, "failed to write stat block %d", idx+1).
						WithMetaMap(map[string]interface{}{"worker": w, "block": idx + 1})
				}
				generated.Add(1)
			}
			return nil
		})
	}

	err := g.Wait()
	elapsed := o.clock.Now().Sub(start)

	if err == nil && int(generated.Load()) < count {
		err = errors.Canceledf("stat block generation canceled after %d of %d blocks", generated.Load(), count)
	}
	if err != nil {
		slog.Error("Stat block generation failed",
			"batch_id", batchID,
			"generated", generated.Load(),
			"error", err,
		)
		return nil, err
	}

	slog.Info("Stat blocks generated",
		"batch_id", batchID,
		"generated", generated.Load(),
		"workers", jobs,
		"elapsed", elapsed,
	)

	return &GenerateStatBlocksOutput{
		BatchID:   batchID,
		Generated: int(generated.Load()),
		Workers:   jobs,
		Elapsed:   elapsed,
	}, nil
}

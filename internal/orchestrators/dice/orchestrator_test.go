package dice_test

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	dicecore "github.com/KirkDiggler/dndtools/internal/dice"
	dicecoremock "github.com/KirkDiggler/dndtools/internal/dice/mock"
	"github.com/KirkDiggler/dndtools/internal/errors"
	"github.com/KirkDiggler/dndtools/internal/orchestrators/dice"
	"github.com/KirkDiggler/dndtools/internal/pkg/clock"
	"github.com/KirkDiggler/dndtools/internal/pkg/idgen"
	"github.com/KirkDiggler/dndtools/internal/sinks"
	sinksmock "github.com/KirkDiggler/dndtools/internal/sinks/mock"
)

// collectingSink records every block it receives
type collectingSink struct {
	mu     sync.Mutex
	blocks []dicecore.StatBlock
}

func (c *collectingSink) Write(block dicecore.StatBlock) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blocks = append(c.blocks, block)
	return nil
}

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockRoller *dicecoremock.MockRoller
	mockSink   *sinksmock.MockSink
	clock      *clock.Fixed
	ctx        context.Context
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRoller = dicecoremock.NewMockRoller(s.ctrl)
	s.mockSink = sinksmock.NewMockSink(s.ctrl)
	s.clock = &clock.Fixed{At: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), Step: 250 * time.Millisecond}
	s.ctx = context.Background()
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) newOrchestrator(sources dicecore.SourceFactory) dice.Service {
	o, err := dice.NewOrchestrator(&dice.Config{
		Sources:     sources,
		IDGenerator: idgen.NewSequential("batch"),
		Clock:       s.clock,
	})
	s.Require().NoError(err)
	return o
}

func (s *OrchestratorTestSuite) mockSource() dicecore.SourceFactory {
	return func(int) dicecore.Roller { return s.mockRoller }
}

func (s *OrchestratorTestSuite) TestNewOrchestrator_Validation() {
	_, err := dice.NewOrchestrator(nil)
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = dice.NewOrchestrator(&dice.Config{})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().Contains(err.Error(), "Sources")
	s.Assert().Contains(err.Error(), "IDGenerator")
	s.Assert().Contains(err.Error(), "Clock")
}

func (s *OrchestratorTestSuite) TestRollDice() {
	o := s.newOrchestrator(s.mockSource())

	first := s.mockRoller.EXPECT().Roll(6).Return(3, nil)
	second := s.mockRoller.EXPECT().Roll(6).Return(5, nil).After(first)
	s.mockRoller.EXPECT().Roll(20).Return(17, nil).After(second)

	out, err := o.RollDice(s.ctx, &dice.RollDiceInput{Notations: []string{"2d6", "d20"}})
	s.Require().NoError(err)

	s.Assert().Equal([]dicecore.Group{{Count: 2, Die: dicecore.D6}, {Count: 1, Die: dicecore.D20}}, out.Groups)
	s.Require().Len(out.Batch.Groups, 2)
	s.Assert().Equal([]int{3, 5}, out.Batch.Groups[0].Rolls)
	s.Assert().Equal(8, out.Batch.Groups[0].Total)
	s.Assert().Equal([]int{17}, out.Batch.Groups[1].Rolls)
	s.Assert().Equal(25, out.Batch.Total)
}

func (s *OrchestratorTestSuite) TestRollDice_MissingDice() {
	o := s.newOrchestrator(s.mockSource())

	for _, input := range []*dice.RollDiceInput{nil, {}, {Notations: []string{}}} {
		_, err := o.RollDice(s.ctx, input)
		s.Require().Error(err)
		s.Assert().True(errors.IsInvalidArgument(err))
		s.Assert().Equal("missing dice", errors.GetMessage(err))
	}
}

func (s *OrchestratorTestSuite) TestRollDice_ParseErrorRollsNothing() {
	o := s.newOrchestrator(s.mockSource())

	_, err := o.RollDice(s.ctx, &dice.RollDiceInput{Notations: []string{"2d6", "1d7"}})
	s.Require().Error(err)
	s.Assert().ErrorIs(err, dicecore.ErrUnsupportedDie)
}

func (s *OrchestratorTestSuite) TestRollAbilityScores() {
	o := s.newOrchestrator(dicecore.SeededSource(11))

	out, err := o.RollAbilityScores(s.ctx, &dice.RollAbilityScoresInput{})
	s.Require().NoError(err)
	s.Assert().True(slices.IsSorted(out.Block[:]))

	scores := make([]int, 0, dicecore.AbilityCount)
	for _, a := range out.Abilities {
		scores = append(scores, a.Score)
	}
	slices.Sort(scores)
	s.Assert().Equal(out.Block[:], scores)

	again, err := s.newOrchestrator(dicecore.SeededSource(11)).RollAbilityScores(s.ctx, nil)
	s.Require().NoError(err)
	s.Assert().Equal(out, again)
}

func (s *OrchestratorTestSuite) TestGenerateStatBlocks() {
	o := s.newOrchestrator(dicecore.SeededSource(2024))
	sink := &collectingSink{}

	out, err := o.GenerateStatBlocks(s.ctx, &dice.GenerateStatBlocksInput{
		Count: 250,
		Jobs:  4,
		Sink:  sink,
	})
	s.Require().NoError(err)
	s.Assert().Equal("batch_1", out.BatchID)
	s.Assert().Equal(250, out.Generated)
	s.Assert().Equal(4, out.Workers)
	s.Assert().Equal(250*time.Millisecond, out.Elapsed)

	s.Require().Len(sink.blocks, 250)
	for _, block := range sink.blocks {
		s.Assert().True(slices.IsSorted(block[:]))
		for _, score := range block {
			s.Assert().GreaterOrEqual(score, 3)
			s.Assert().LessOrEqual(score, 18)
		}
	}
}

func (s *OrchestratorTestSuite) TestGenerateStatBlocks_Defaults() {
	o := s.newOrchestrator(dicecore.SeededSource(1))
	sink := &collectingSink{}

	out, err := o.GenerateStatBlocks(s.ctx, &dice.GenerateStatBlocksInput{Sink: sink})
	s.Require().NoError(err)
	s.Assert().Equal(dice.DefaultBlockCount, out.Generated)
	s.Assert().Equal(1, out.Workers, "workers are capped at the block count")
	s.Assert().Len(sink.blocks, 1)
}

func (s *OrchestratorTestSuite) TestGenerateStatBlocks_SingleWorkerIsDeterministic() {
	run := func() []dicecore.StatBlock {
		sink := &collectingSink{}
		_, err := s.newOrchestrator(dicecore.SeededSource(77)).GenerateStatBlocks(s.ctx, &dice.GenerateStatBlocksInput{
			Count: 20,
			Jobs:  1,
			Sink:  sink,
		})
		s.Require().NoError(err)
		return sink.blocks
	}

	s.Assert().Equal(run(), run())
}

func (s *OrchestratorTestSuite) TestGenerateStatBlocks_InvalidInput() {
	o := s.newOrchestrator(dicecore.SeededSource(1))

	testCases := []struct {
		name  string
		input *dice.GenerateStatBlocksInput
		field string
	}{
		{"nil input", nil, "input"},
		{"negative count", &dice.GenerateStatBlocksInput{Count: -1, Sink: sinks.Discard}, "count"},
		{"negative jobs", &dice.GenerateStatBlocksInput{Jobs: -3, Sink: sinks.Discard}, "jobs"},
		{"missing sink", &dice.GenerateStatBlocksInput{Count: 2}, "sink"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := o.GenerateStatBlocks(s.ctx, tc.input)
			s.Require().Error(err)
			s.Assert().True(errors.IsInvalidArgument(err))
			s.Assert().Contains(err.Error(), tc.field)
		})
	}
}

func (s *OrchestratorTestSuite) TestGenerateStatBlocks_SinkFailureAbortsBatch() {
	o := s.newOrchestrator(dicecore.SeededSource(5))

	var writes int
	var mu sync.Mutex
	s.mockSink.EXPECT().Write(gomock.Any()).DoAndReturn(func(dicecore.StatBlock) error {
		mu.Lock()
		defer mu.Unlock()
		writes++
		if writes == 3 {
			return errors.DataLoss("disk full")
		}
		return nil
	}).MinTimes(3)

	out, err := o.GenerateStatBlocks(s.ctx, &dice.GenerateStatBlocksInput{
		Count: 10000,
		Jobs:  4,
		Sink:  s.mockSink,
	})
	s.Assert().Nil(out)
	s.Require().Error(err)
	s.Assert().True(errors.IsDataLoss(err))
	s.Assert().Contains(err.Error(), "failed to write stat block")

	mu.Lock()
	defer mu.Unlock()
	s.Assert().Less(writes, 10000, "workers stop once the batch has failed")
}

func (s *OrchestratorTestSuite) TestGenerateStatBlocks_SourceFailure() {
	o := s.newOrchestrator(s.mockSource())
	s.mockRoller.EXPECT().Roll(6).Return(0, fmt.Errorf("no entropy"))

	_, err := o.GenerateStatBlocks(s.ctx, &dice.GenerateStatBlocksInput{
		Count: 1,
		Jobs:  1,
		Sink:  s.mockSink,
	})
	s.Require().Error(err)
	s.Assert().True(errors.IsInternal(err))
	s.Assert().True(strings.Contains(err.Error(), "no entropy"))
	s.Assert().Equal(0, errors.GetMeta(err)["worker"])
	s.Assert().Equal(1, errors.GetMeta(err)["block"])
}

func (s *OrchestratorTestSuite) TestGenerateStatBlocks_Canceled() {
	o := s.newOrchestrator(dicecore.SeededSource(5))

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := o.GenerateStatBlocks(ctx, &dice.GenerateStatBlocksInput{
		Count: 100000,
		Jobs:  2,
		Sink:  sinks.Discard,
	})
	s.Require().Error(err)
	s.Assert().True(errors.IsCanceled(err))
}

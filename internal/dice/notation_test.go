package dice_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/dndtools/internal/dice"
	"github.com/KirkDiggler/dndtools/internal/errors"
)

type NotationTestSuite struct {
	suite.Suite
}

func TestNotationSuite(t *testing.T) {
	suite.Run(t, new(NotationTestSuite))
}

func (s *NotationTestSuite) TestParse_Valid() {
	testCases := []struct {
		expression string
		want       dice.Group
	}{
		{"2d6", dice.Group{Count: 2, Die: dice.D6}},
		{"d20", dice.Group{Count: 1, Die: dice.D20}},
		{"D8", dice.Group{Count: 1, Die: dice.D8}},
		{"1d4", dice.Group{Count: 1, Die: dice.D4}},
		{"0d4", dice.Group{Count: 0, Die: dice.D4}},
		{"3d12", dice.Group{Count: 3, Die: dice.D12}},
		{"4D10", dice.Group{Count: 4, Die: dice.D10}},
		{"10d100", dice.Group{Count: 10, Die: dice.D100}},
		{"10000d4", dice.Group{Count: dice.MaxCount, Die: dice.D4}},
		{"007d6", dice.Group{Count: 7, Die: dice.D6}},
	}

	for _, tc := range testCases {
		s.Run(tc.expression, func() {
			got, err := dice.Parse(tc.expression)
			s.Require().NoError(err)
			s.Assert().Equal(tc.want, got)
		})
	}
}

func (s *NotationTestSuite) TestParse_EveryCountAndDie() {
	for _, die := range dice.SupportedDice() {
		for n := 0; n <= 25; n++ {
			got, err := dice.Parse(fmt.Sprintf("%dd%d", n, die.Sides()))
			s.Require().NoError(err)
			s.Assert().Equal(n, got.Count)
			s.Assert().Equal(die, got.Die)
		}

		got, err := dice.Parse(fmt.Sprintf("d%d", die.Sides()))
		s.Require().NoError(err)
		s.Assert().Equal(1, got.Count, "missing count defaults to one")
	}
}

func (s *NotationTestSuite) TestParse_Errors() {
	testCases := []struct {
		expression string
		want       error
	}{
		{"xd6", dice.ErrInvalidCount},
		{"-1d6", dice.ErrInvalidCount},
		{"+1d6", dice.ErrInvalidCount},
		{"2 d6", dice.ErrInvalidCount},
		{" 2d6", dice.ErrInvalidCount},
		{"99999999999999999999999d6", dice.ErrInvalidCount},
		{"9000000000000000000d6", dice.ErrInvalidCount},
		{"10001d6", dice.ErrInvalidCount},
		{"2dZ", dice.ErrInvalidSize},
		{"2d", dice.ErrInvalidSize},
		{"", dice.ErrInvalidSize},
		{"6", dice.ErrInvalidSize},
		{"2d 6", dice.ErrInvalidSize},
		{"1d6 ", dice.ErrInvalidSize},
		{"2d6d6", dice.ErrInvalidSize},
		{"1d-6", dice.ErrInvalidSize},
		{"1d0", dice.ErrInvalidSize},
		{"1d7", dice.ErrUnsupportedDie},
		{"1d1", dice.ErrUnsupportedDie},
		{"3d2", dice.ErrUnsupportedDie},
		{"1d1000", dice.ErrUnsupportedDie},
	}

	for _, tc := range testCases {
		s.Run(fmt.Sprintf("%q", tc.expression), func() {
			got, err := dice.Parse(tc.expression)
			s.Require().Error(err)
			s.Assert().ErrorIs(err, tc.want)
			s.Assert().True(errors.IsInvalidArgument(err))
			s.Assert().Equal(tc.expression, errors.GetMeta(err)["expression"])
			s.Assert().Equal(dice.Group{}, got)
		})
	}
}

func (s *NotationTestSuite) TestParse_ReasonsAreDistinct() {
	_, err := dice.Parse("xd6")
	s.Require().Error(err)
	s.Assert().NotErrorIs(err, dice.ErrInvalidSize)
	s.Assert().NotErrorIs(err, dice.ErrUnsupportedDie)

	_, err = dice.Parse("1d7")
	s.Require().Error(err)
	s.Assert().NotErrorIs(err, dice.ErrInvalidCount)
	s.Assert().NotErrorIs(err, dice.ErrInvalidSize)
}

func (s *NotationTestSuite) TestParseAll() {
	groups, err := dice.ParseAll([]string{"2d6", "d8", "0d20"})
	s.Require().NoError(err)
	s.Assert().Equal([]dice.Group{
		{Count: 2, Die: dice.D6},
		{Count: 1, Die: dice.D8},
		{Count: 0, Die: dice.D20},
	}, groups)

	groups, err = dice.ParseAll([]string{"2d6", "1d7", "xd6"})
	s.Require().Error(err)
	s.Assert().Nil(groups)
	s.Assert().ErrorIs(err, dice.ErrUnsupportedDie, "first failure wins")
	s.Assert().Equal("1d7", errors.GetMeta(err)["expression"])

	groups, err = dice.ParseAll(nil)
	s.Require().NoError(err)
	s.Assert().Empty(groups)
}

func (s *NotationTestSuite) TestNewDie() {
	for _, sides := range []int{4, 6, 8, 10, 12, 20, 100} {
		d, err := dice.NewDie(sides)
		s.Require().NoError(err)
		s.Assert().Equal(sides, d.Sides())
		s.Assert().True(d.Valid())
	}

	for _, sides := range []int{-6, 0, 1, 2, 3, 5, 7, 16, 30, 1000} {
		_, err := dice.NewDie(sides)
		s.Assert().ErrorIs(err, dice.ErrUnsupportedDie, "d%d", sides)
		s.Assert().False(dice.Die(sides).Valid())
	}
}

func (s *NotationTestSuite) TestStringers() {
	s.Assert().Equal("d20", dice.D20.String())
	s.Assert().Equal("2d6", dice.Group{Count: 2, Die: dice.D6}.String())
}

func (s *NotationTestSuite) TestNewGroup() {
	g, err := dice.NewGroup(3, dice.D8)
	s.Require().NoError(err)
	s.Assert().Equal(dice.Group{Count: 3, Die: dice.D8}, g)

	_, err = dice.NewGroup(-1, dice.D8)
	s.Assert().ErrorIs(err, dice.ErrInvalidCount)

	g, err = dice.NewGroup(dice.MaxCount, dice.D8)
	s.Require().NoError(err)
	s.Assert().Equal(dice.MaxCount, g.Count)

	_, err = dice.NewGroup(dice.MaxCount+1, dice.D8)
	s.Assert().ErrorIs(err, dice.ErrInvalidCount)
	s.Assert().Equal(dice.MaxCount+1, errors.GetMeta(err)["count"])

	_, err = dice.NewGroup(1, dice.Die(7))
	s.Assert().ErrorIs(err, dice.ErrUnsupportedDie)
}

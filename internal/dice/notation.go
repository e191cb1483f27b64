package dice

import (
	"strconv"

	"github.com/KirkDiggler/dndtools/internal/errors"
)

// Reasons attached to INVALID_ARGUMENT errors from this package
const (
	ReasonInvalidCount   = "INVALID_COUNT"
	ReasonInvalidSize    = "INVALID_SIZE"
	ReasonUnsupportedDie = "UNSUPPORTED_DIE"
)

// Targets for errors.Is
var (
	ErrInvalidCount   = errors.InvalidArgument("invalid dice count").WithReason(ReasonInvalidCount)
	ErrInvalidSize    = errors.InvalidArgument("invalid die size").WithReason(ReasonInvalidSize)
	ErrUnsupportedDie = errors.InvalidArgument("unsupported die").WithReason(ReasonUnsupportedDie)
)

// Parse parses dice notation of the form [count]d<size>, case-insensitively.
// A missing count means one die. Whitespace is not stripped.
func Parse(expression string) (Group, error) {
	countPart, sizePart, _ := splitNotation(expression)

	count := 1
	if countPart != "" {
		n, ok := parseDigits(countPart)
		if !ok {
			return Group{}, errors.InvalidArgumentf("invalid dice count in %q", expression).
				WithReason(ReasonInvalidCount).
				WithMeta("expression", expression)
		}
		count = n
	}

	sides, ok := parseDigits(sizePart)
	if !ok || sides == 0 {
		return Group{}, errors.InvalidArgumentf("invalid die size in %q", expression).
			WithReason(ReasonInvalidSize).
			WithMeta("expression", expression)
	}

	die, err := NewDie(sides)
	if err != nil {
		return Group{}, errors.Wrapf(err, "unsupported die in %q", expression).
			WithMeta("expression", expression)
	}

	group, err := NewGroup(count, die)
	if err != nil {
		return Group{}, errors.Wrapf(err, "invalid dice count in %q", expression).
			WithMeta("expression", expression)
	}
	return group, nil
}

// ParseAll parses each expression in order and stops at the first failure
func ParseAll(expressions []string) ([]Group, error) {
	groups := make([]Group, 0, len(expressions))
	for _, expr := range expressions {
		g, err := Parse(expr)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// splitNotation splits on the first d or D. Later markers stay in the size part.
func splitNotation(expression string) (countPart, sizePart string, found bool) {
	for i := 0; i < len(expression); i++ {
		if expression[i] == 'd' || expression[i] == 'D' {
			return expression[:i], expression[i+1:], true
		}
	}
	return expression, "", false
}

// parseDigits accepts only a non-empty run of ASCII digits that fits in an int.
func parseDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

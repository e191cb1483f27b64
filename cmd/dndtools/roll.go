package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dndtools/internal/errors"
	"github.com/KirkDiggler/dndtools/internal/orchestrators/dice"
)

func newRollCmd(a *app) *cobra.Command {
	var alwaysTotal bool

	cmd := &cobra.Command{
		Use:   "roll [flags] DICE...",
		Short: "Roll dice expressions",
		Long: `Roll one or more dice expressions and show every die. Examples:

  roll 2d6
  roll d20 1d8
  roll 4d6 2d10 d100

Supported dice: d4, d6, d8, d10, d12, d20, d100.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.service.RollDice(cmd.Context(), &dice.RollDiceInput{
				Notations: args,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, g := range out.Batch.Groups {
				if _, err := fmt.Fprintf(w, "%d%s: %d %s\n", g.Count(), g.Die, g.Total, formatRolls(g.Rolls)); err != nil {
					return errors.WrapWithCode(err, errors.CodeDataLoss, "failed to write roll results")
				}
			}
			if alwaysTotal || len(out.Batch.Groups) > 1 {
				if _, err := fmt.Fprintf(w, "Total: %d\n", out.Batch.Total); err != nil {
					return errors.WrapWithCode(err, errors.CodeDataLoss, "failed to write roll results")
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&alwaysTotal, "total", false, "print the grand total even for a single expression")

	return cmd
}

// formatRolls renders rolls as [3, 5]
func formatRolls(rolls []int) string {
	parts := make([]string, len(rolls))
	for i, r := range rolls {
		parts[i] = strconv.Itoa(r)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

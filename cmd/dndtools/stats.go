package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dndtools/internal/errors"
	"github.com/KirkDiggler/dndtools/internal/orchestrators/dice"
	"github.com/KirkDiggler/dndtools/internal/sinks"
)

type statsOptions struct {
	count      int
	jobs       int
	file       string
	appendFile bool
	quiet      bool
	verbose    bool
}

func newStatsCmd(a *app) *cobra.Command {
	opts := &statsOptions{}

	cmd := &cobra.Command{
		Use:   "stats [flags]",
		Short: "Generate ability score blocks (4d6 drop lowest)",
		Long: `Generate blocks of six ability scores. Each score is the sum of the
highest three of four d6. Blocks print one per line, highest score first.

  stats
  stats -n 1000 -j 8 -f blocks.txt -q`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runStats(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.count, "count", "n", 1, "number of stat blocks to generate")
	flags.IntVarP(&opts.jobs, "jobs", "j", 0, "number of workers (default: DNDTOOLS_JOBS or one per CPU)")
	flags.StringVarP(&opts.file, "file", "f", "", "write blocks to this file")
	flags.BoolVar(&opts.appendFile, "append", false, "append to --file instead of truncating it")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress console output")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "show the dice behind each score (single block only)")

	return cmd
}

func (a *app) runStats(cmd *cobra.Command, opts *statsOptions) error {
	jobs := a.cfg.Jobs
	if cmd.Flags().Changed("jobs") {
		jobs = opts.jobs
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateMin("count", opts.count, 1, vb)
	if cmd.Flags().Changed("jobs") {
		errors.ValidateMin("jobs", opts.jobs, 1, vb)
	}
	if opts.appendFile && opts.file == "" {
		vb.Field("append", "requires --file")
	}
	if opts.verbose && opts.count != 1 {
		vb.Field("verbose", "requires a single block")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	var console sinks.Sink
	if !opts.quiet {
		console = sinks.NewWriterSink(cmd.OutOrStdout())
	}

	var file *sinks.FileSink
	if opts.file != "" {
		f, err := sinks.OpenFileSink(opts.file, opts.appendFile)
		if err != nil {
			return err
		}
		file = f
	}

	// file before console so a failed file write never reaches the screen
	var sink sinks.Sink
	if file != nil {
		sink = sinks.Multi(file, console)
	} else {
		sink = sinks.Multi(console)
	}

	var runErr error
	if opts.verbose {
		runErr = a.writeDetailedBlock(cmd, sink, !opts.quiet)
	} else {
		_, runErr = a.service.GenerateStatBlocks(cmd.Context(), &dice.GenerateStatBlocksInput{
			Count: opts.count,
			Jobs:  jobs,
			Sink:  sink,
		})
	}

	if file != nil {
		if err := file.Close(); err != nil && runErr == nil {
			runErr = err
		}
	}
	return runErr
}

func (a *app) writeDetailedBlock(cmd *cobra.Command, sink sinks.Sink, show bool) error {
	out, err := a.service.RollAbilityScores(cmd.Context(), &dice.RollAbilityScoresInput{})
	if err != nil {
		return err
	}

	if show {
		writeAbilities(cmd.OutOrStdout(), out)
	}
	return sink.Write(out.Block)
}

func writeAbilities(w io.Writer, out *dice.RollAbilityScoresOutput) {
	for i, ab := range out.Abilities {
		_, _ = fmt.Fprintf(w, "%d: %s drop %d = %d\n", i+1, formatRolls(ab.Dice[:]), ab.Dropped, ab.Score)
	}
}

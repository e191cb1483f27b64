package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dndtools/internal/config"
	dicecore "github.com/KirkDiggler/dndtools/internal/dice"
	"github.com/KirkDiggler/dndtools/internal/errors"
	"github.com/KirkDiggler/dndtools/internal/orchestrators/dice"
	"github.com/KirkDiggler/dndtools/internal/pkg/clock"
	"github.com/KirkDiggler/dndtools/internal/pkg/idgen"
)

const rootName = "dndtools"

// serviceFactory builds the dice service once flags and config are known
type serviceFactory func(cfg *config.Config) (dice.Service, error)

// app carries what the subcommands share
type app struct {
	cfg        *config.Config
	service    dice.Service
	newService serviceFactory

	// persistent flags
	seed     uint64
	logLevel string
}

func newService(cfg *config.Config) (dice.Service, error) {
	sources := dicecore.DefaultSource()
	if cfg.Seed != 0 {
		sources = dicecore.SeededSource(cfg.Seed)
	}

	return dice.NewOrchestrator(&dice.Config{
		Sources:     sources,
		IDGenerator: idgen.NewUUID("batch"),
		Clock:       clock.New(),
	})
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   rootName,
		Short: "Dice tools for tabletop role-playing games",
		Long: `dndtools rolls dice expressions such as 2d6 or d20 and generates
ability score blocks using 4d6 drop lowest.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	cmd.PersistentFlags().Uint64Var(&a.seed, "seed", 0, "seed for reproducible rolls (0 uses a crypto source)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid arguments")
	})

	cmd.AddCommand(newRollCmd(a))
	cmd.AddCommand(newStatsCmd(a))

	return cmd
}

// setup loads config, applies persistent flag overrides, configures logging,
// and builds the service.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = a.seed
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	svc, err := a.newService(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to create dice service")
	}
	a.service = svc

	return nil
}

// run executes the command line and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return runWith(ctx, args, stdout, stderr, newService)
}

func runWith(ctx context.Context, args []string, stdout, stderr io.Writer, factory serviceFactory) int {
	a := &app{newService: factory}

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	failed, err := root.ExecuteContextC(ctx)
	if err == nil {
		return errors.ExitOK
	}

	if failed == nil {
		failed = root
	}
	_, _ = fmt.Fprintf(stderr, "%s: %s\n", failed.Name(), describe(err))
	_, _ = fmt.Fprintf(stderr, "Try '%s --help' for more info.\n", failed.CommandPath())

	// errors cobra raises itself (unknown command, bad args) are usage errors
	var e *errors.Error
	if !errors.As(err, &e) {
		return errors.ExitUsage
	}
	return errors.ExitCode(err)
}

// describe gives the one line diagnostic shown to users
func describe(err error) string {
	var e *errors.Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, describe(e.Cause))
}

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/morsezoo/internal/config"
	"github.com/roach88/morsezoo/internal/engine"
	"github.com/roach88/morsezoo/internal/extract"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // config file path, empty for defaults
	Root    string // archive root, overrides config and environment

	// lookupEnv is os.LookupEnv outside tests.
	lookupEnv func(string) (string, bool)
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the morsezoo CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(os.LookupEnv)
}

func newRootCommand(lookupEnv func(string) (string, bool)) *cobra.Command {
	opts := &RootOptions{lookupEnv: lookupEnv}

	cmd := &cobra.Command{
		Use:   "morsezoo",
		Short: "Morse graph database browser",
		Long: `Query archives of DSGRN Morse graph databases, summarize matches
per permutation, and extract parameter graphs with their inequalities.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "config file (.cue, .json, .yaml)")
	cmd.PersistentFlags().StringVar(&opts.Root, "root", "", "archive root (overrides config)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewDatabasesCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewSummaryCommand(opts))
	cmd.AddCommand(NewGraphCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewInequalitiesCommand(opts))
	cmd.AddCommand(NewLoadCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// loadConfig reads the config file, then applies environment and flag
// overrides in that order.
func (o *RootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.Config)
	if err != nil {
		return nil, err
	}
	lookup := o.lookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	cfg.ApplyEnv(lookup)
	if o.Root != "" {
		cfg.Root = o.Root
	}
	return cfg, nil
}

// logger writes to w at the configured level, or debug with --verbose.
func (o *RootOptions) logger(cfg *config.Config, w io.Writer) *slog.Logger {
	level := cfg.Level()
	if o.Verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

// newEngine loads the configuration and builds an engine logging to
// stderr.
func (o *RootOptions) newEngine(cmd *cobra.Command) (*engine.Engine, *slog.Logger, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := o.logger(cfg, cmd.ErrOrStderr())
	return buildEngine(cfg, logger), logger, nil
}

func buildEngine(cfg *config.Config, logger *slog.Logger) *engine.Engine {
	return engine.New(cfg.Root,
		engine.WithTools(cfg.Tools),
		engine.WithRunner(extract.ExecRunner{Timeout: cfg.Timeout}),
		engine.WithScratchDir(cfg.ScratchDir),
		engine.WithLogger(logger))
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/i5heu/TetrisStack/internal/config"
	"github.com/i5heu/TetrisStack/internal/game"
	"github.com/i5heu/TetrisStack/internal/render"
)

// cliOptions holds the flag values of one command tree.
type cliOptions struct {
	configPath string
	mode       string
	seed       uint64
	alphabet   string
	verbose    bool
	noColor    bool
	logFile    string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:   "tetrisstack",
		Short: "Tetris Stack - future piece queue and reserve stack simulator",
		Long: `Tetris Stack keeps a queue of upcoming pieces and, in the reserve and
strategic modes, a small stack of reserved pieces.

Modes:
  queue      play or insert pieces
  reserve    play, reserve and use reserved pieces (queue refills itself)
  strategic  reserve mode plus single and batch swaps between queue and stack

Run without arguments to start the interactive menu.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s := game.NewFromConfig(opts.cfg, opts.logger)
			chooser := game.NewLineChooser(opts.cfg.Mode, cmd.InOrStdin())
			return play(cmd.OutOrStdout(), s, chooser, render.New(!opts.noColor))
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "Path to the YAML config file")
	flags.StringVarP(&opts.mode, "mode", "m", "", "Game mode: queue, reserve or strategic")
	flags.Uint64Var(&opts.seed, "seed", 0, "Seed for piece generation (0 = time based)")
	flags.StringVar(&opts.alphabet, "alphabet", "", "Piece symbols to draw from")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable coloured output")
	flags.StringVar(&opts.logFile, "log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(newInitConfigCmd(opts))
	return rootCmd
}

func newInitConfigCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Write the effective configuration to the config path",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.cfg.Save(opts.configPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", opts.configPath)
			return nil
		},
	}
}

// setup loads the config, lets explicit flags win over it, validates the
// result and builds the logger.
func (o *cliOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Mode = o.mode
	}
	if flags.Changed("seed") {
		cfg.Seed = o.seed
	}
	if flags.Changed("alphabet") {
		cfg.Alphabet = o.alphabet
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = o.logFile
	}
	if o.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg

	o.logger, err = newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func newLogger(lc config.LoggingConfig) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stderr"}
	if lc.File != "" {
		zcfg.OutputPaths = []string{lc.File}
	}
	return zcfg.Build()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

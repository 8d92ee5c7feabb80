// Package cli implements the ghostleg command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ghostleg/pkg/buildinfo"
	"github.com/matzehuels/ghostleg/pkg/config"
	"github.com/matzehuels/ghostleg/pkg/round"
	"github.com/matzehuels/ghostleg/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "ghostleg"

	// defaultListLimit is how many rounds history list shows by default.
	defaultListLimit = 20

	// annotationSkipConfig marks commands that run without loading the
	// config file, so they work while it is missing or broken.
	annotationSkipConfig = "ghostleg/skip-config"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "ghostleg draws ladder lotteries in the terminal",
		Long: `ghostleg plays the ghost-leg (ladder lottery) game: every player starts at the
top of a lane, follows the rungs down and ends on a result at the bottom.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotationSkipConfig] == "" {
				if err := c.loadConfig(); err != nil {
					return err
				}
			}
			installHooks(c.Logger)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/ghostleg/config.toml)")

	// Register all subcommands
	root.AddCommand(c.playCommand())
	root.AddCommand(c.drawCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads --config, or the default config file when it exists.
func (c *CLI) loadConfig() error {
	var (
		cfg config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.Load(c.configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}
	c.config = cfg
	c.Logger.Debug("config loaded", "backend", cfg.Store.Backend, "rows", cfg.Rows)
	return nil
}

// =============================================================================
// Store Factory
// =============================================================================

// openStore opens the configured round store, or a null store when noSave
// is set.
func (c *CLI) openStore(ctx context.Context, noSave bool) (store.Store, error) {
	if noSave {
		return store.NewNullStore(), nil
	}
	open := func(ctx context.Context) (store.Store, error) { return store.Open(ctx, c.config.Store) }
	var (
		s   store.Store
		err error
	)
	switch c.config.Store.Backend {
	case config.BackendRedis, config.BackendMongo:
		s, err = withSpinner(ctx, "Connecting to "+c.config.Store.Backend, open)
	default:
		s, err = open(ctx)
	}
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("store opened", "backend", c.config.Store.Backend)
	return s, nil
}

// =============================================================================
// Round Flags
// =============================================================================

// roundFlags are the flags shared by commands that create a round.
type roundFlags struct {
	names    []string
	results  []string
	rows     int
	maxRungs int
	seed     uint64
	noSave   bool
}

func (f *roundFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.names, "names", "n", nil, "player names, comma-separated (required)")
	cmd.Flags().StringSliceVarP(&f.results, "results", "r", nil, "results, comma-separated (default 0..n-1)")
	cmd.Flags().IntVar(&f.rows, "rows", 0, "rows per ladder (default from config)")
	cmd.Flags().IntVar(&f.maxRungs, "max-rungs", 0, "exclusive upper bound on rungs per gap (default from config)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed, 0 for a fresh one (default from config)")
	cmd.Flags().BoolVar(&f.noSave, "no-save", false, "do not store the round")
	_ = cmd.MarkFlagRequired("names")
}

// options merges the flags over the loaded config.
func (f *roundFlags) options(cfg config.Config) round.Options {
	opts := round.Options{
		Names:    f.names,
		Results:  f.results,
		Rows:     cfg.Rows,
		MaxRungs: cfg.MaxRungs,
		MaxLanes: cfg.MaxLanes,
		Seed:     cfg.Seed,
	}
	if f.rows != 0 {
		opts.Rows = f.rows
	}
	if f.maxRungs != 0 {
		opts.MaxRungs = f.maxRungs
	}
	if f.seed != 0 {
		opts.Seed = f.seed
	}
	return opts
}

// newRound creates a round from the flags and stores it unless --no-save.
func (c *CLI) newRound(ctx context.Context, f *roundFlags) (*round.Round, error) {
	r, err := round.New(ctx, f.options(c.config))
	if err != nil {
		return nil, err
	}

	s, err := c.openStore(ctx, f.noSave)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	if err := s.Put(ctx, r); err != nil {
		return nil, err
	}
	logRound(ctx, "round created", r)
	return r, nil
}

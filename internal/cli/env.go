package cli

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/cjtrainer/internal/config"
	"github.com/roach88/cjtrainer/internal/record"
	"github.com/roach88/cjtrainer/internal/store"
)

// env is the resolved state every command runs with.
type env struct {
	cfg       config.Config
	logger    *slog.Logger
	formatter *OutputFormatter
}

// newEnv resolves settings (flags over config file over defaults) and
// installs the logger.
func newEnv(opts *RootOptions, cmd *cobra.Command) (*env, error) {
	cfg := config.Default()
	if opts.ConfigFile != "" {
		loaded, err := config.Load(opts.ConfigFile)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to load config", err).withErrCode(ErrCodeConfig)
		}
		cfg = loaded
	}
	if opts.DataFile != "" {
		cfg.DataFile = opts.DataFile
	}
	if opts.Seed != 0 {
		cfg.Seed = opts.Seed
	}

	// Configure logging based on config and verbose flag
	level := cfg.Level()
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	return &env{
		cfg:    cfg,
		logger: logger,
		formatter: &OutputFormatter{
			Format:    opts.Format,
			Writer:    cmd.OutOrStdout(),
			ErrWriter: cmd.ErrOrStderr(),
			Verbose:   opts.Verbose,
		},
	}, nil
}

// validate re-checks settings after command flags were applied.
func (e *env) validate() error {
	if err := e.cfg.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid settings", err).withErrCode(ErrCodeConfig)
	}
	return nil
}

// openStore loads the record file, bootstrapping it if missing.
func (e *env) openStore() (*store.Store, store.LoadStats, error) {
	st := store.New(e.cfg.DataFile,
		store.WithRand(newRand(e.cfg.Seed)),
		store.WithLogger(e.logger),
	)
	stats, err := st.Load()
	if err != nil {
		if store.IsParseError(err) {
			return nil, stats, WrapExitError(ExitCommandError, "corrupt record file", err).withErrCode(ErrCodeCorrupt)
		}
		return nil, stats, WrapExitError(ExitCommandError, "failed to load records", err).withErrCode(ErrCodeLoadFailed)
	}
	e.formatter.VerboseLog("%d records imported from %s", stats.Loaded, e.cfg.DataFile)
	return st, stats, nil
}

// save persists st, mapping failures to a command error.
func (e *env) save(st *store.Store) error {
	if err := st.Save(); err != nil {
		return WrapExitError(ExitCommandError, "failed to save records", err).withErrCode(ErrCodeSaveFailed)
	}
	return nil
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// selector returns the batch builder for a strategy name.
func selector(st *store.Store, strategy string) func(int) []record.Record {
	switch strategy {
	case config.StrategyScore:
		return st.ScoreItems
	case config.StrategyRandom:
		return st.RandomItems
	default:
		return st.SmartItems
	}
}

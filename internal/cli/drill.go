package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/cjtrainer/internal/quiz"
)

// SelectionOptions holds the batch flags shared by drill and sample.
type SelectionOptions struct {
	Count    int
	Strategy string
}

func (s *SelectionOptions) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&s.Count, "count", "n", 0, "records per batch (default from config, 10)")
	cmd.Flags().StringVar(&s.Strategy, "strategy", "", "selection strategy (smart|score|random)")
}

// apply copies explicitly set flags over the resolved config.
func (s *SelectionOptions) apply(cmd *cobra.Command, e *env) {
	if cmd.Flags().Changed("count") {
		e.cfg.ItemCount = s.Count
	}
	if cmd.Flags().Changed("strategy") {
		e.cfg.Strategy = s.Strategy
	}
}

// DrillOptions holds flags for the drill command.
type DrillOptions struct {
	*RootOptions
	SelectionOptions
	Rounds int

	// SessionOptions are passed to every quiz session (for testing).
	SessionOptions []quiz.Option
}

// DrillSummary reports a finished drill.
type DrillSummary struct {
	Rounds int `json:"rounds"`
	Score  int `json:"score"`
	Asked  int `json:"asked"`
}

func (s DrillSummary) String() string {
	return fmt.Sprintf("Rounds: %d  Total score: %d/%d", s.Rounds, s.Score, s.Asked)
}

// NewDrillCommand creates the drill command.
func NewDrillCommand(rootOpts *RootOptions) *cobra.Command {
	return newDrillCommand(&DrillOptions{RootOptions: rootOpts})
}

func newDrillCommand(opts *DrillOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drill",
		Short: "Run interactive quiz rounds",
		Long: `Run interactive quiz rounds against the record file.

The record file is created from the built-in seed if missing, then sorted,
de-duplicated and saved. Each round selects a batch, asks for the code of
every character and saves the updated ratings. Drilling stops after
--rounds rounds or at end of input. Ratings are saved after every
round, so interrupting with Ctrl-C loses at most the current round.

Example:
  cjtrainer drill
  cjtrainer drill --data ./cj.csv --count 20 --strategy score --rounds 3`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDrill(opts, cmd)
		},
	}

	opts.SelectionOptions.register(cmd)
	cmd.Flags().IntVar(&opts.Rounds, "rounds", 0, "rounds to run (0 = until end of input)")

	return cmd
}

func runDrill(opts *DrillOptions, cmd *cobra.Command) error {
	e, err := newEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	opts.SelectionOptions.apply(cmd, e)
	if cmd.Flags().Changed("rounds") {
		e.cfg.Rounds = opts.Rounds
	}
	if err := e.validate(); err != nil {
		return err
	}

	st, _, err := e.openStore()
	if err != nil {
		return err
	}
	st.Normalize()
	if err := e.save(st); err != nil {
		return err
	}
	if st.Len() == 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("no records in %s", st.Path())).withErrCode(ErrCodeNoRecords)
	}

	// Ctrl-C kills the process while it waits on input; every finished
	// round is already saved.
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sessionOpts := append([]quiz.Option{quiz.WithLogger(e.logger)}, opts.SessionOptions...)
	session := quiz.NewSession(cmd.InOrStdin(), cmd.OutOrStdout(), sessionOpts...)
	selectBatch := selector(st, e.cfg.Strategy)

	var summary DrillSummary
	for e.cfg.Rounds == 0 || summary.Rounds < e.cfg.Rounds {
		batch := selectBatch(e.cfg.ItemCount)
		res, runErr := session.Run(ctx, batch)

		if err := st.Update(res.Batch); err != nil {
			return WrapExitError(ExitFailure, "rating update failed", err).withErrCode(ErrCodeUpdate)
		}
		if err := e.save(st); err != nil {
			return err
		}
		summary.Score += res.Score
		summary.Asked += res.Asked

		if runErr != nil {
			if errors.Is(runErr, io.EOF) || ctx.Err() != nil {
				e.logger.Info("drill interrupted", "reason", runErr)
				break
			}
			return WrapExitError(ExitCommandError, "failed to read answer", runErr)
		}
		summary.Rounds++
	}

	return e.formatter.Success(summary)
}

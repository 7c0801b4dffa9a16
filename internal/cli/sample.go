package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/cjtrainer/internal/record"
)

// SampleOptions holds flags for the sample command.
type SampleOptions struct {
	*RootOptions
	SelectionOptions
}

// SampleBatch is one selected batch.
type SampleBatch struct {
	Strategy string          `json:"strategy"`
	Records  []record.Record `json:"records"`
}

func (b SampleBatch) String() string {
	lines := make([]string, len(b.Records))
	for i, r := range b.Records {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n")
}

// NewSampleCommand creates the sample command.
func NewSampleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SampleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print one quiz batch without asking it",
		Long: `Print the batch a drill round would ask, one "code,character,rating"
line per record. An existing record file is not modified; a missing one
is created from the built-in seed, as drill would.

Example:
  cjtrainer sample --strategy score --count 9 --seed 7`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSample(opts, cmd)
		},
	}

	opts.SelectionOptions.register(cmd)

	return cmd
}

func runSample(opts *SampleOptions, cmd *cobra.Command) error {
	e, err := newEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	opts.SelectionOptions.apply(cmd, e)
	if err := e.validate(); err != nil {
		return err
	}

	st, _, err := e.openStore()
	if err != nil {
		return err
	}
	st.Normalize()

	batch := selector(st, e.cfg.Strategy)(e.cfg.ItemCount)
	return e.formatter.Success(SampleBatch{Strategy: e.cfg.Strategy, Records: batch})
}

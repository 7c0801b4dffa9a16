package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/cjtrainer/internal/record"
)

// StatsReport is the band breakdown of the record file.
type StatsReport struct {
	record.Counts
	Total int `json:"total"`
}

func (r StatsReport) String() string {
	return fmt.Sprintf("difficult  %5d\nnew        %5d\neasy       %5d\nvery easy  %5d\ntotal      %5d",
		r.Difficult, r.New, r.Easy, r.VeryEasy, r.Total)
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stats",
		Short:         "Show record counts per proficiency band",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(rootOpts, cmd)
		},
	}

	return cmd
}

func runStats(opts *RootOptions, cmd *cobra.Command) error {
	e, err := newEnv(opts, cmd)
	if err != nil {
		return err
	}

	st, _, err := e.openStore()
	if err != nil {
		return err
	}

	counts := st.Counts()
	return e.formatter.Success(StatsReport{Counts: counts, Total: counts.Total()})
}

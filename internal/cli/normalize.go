package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NormalizeReport describes a normalize run.
type NormalizeReport struct {
	Path         string `json:"path"`
	Bootstrapped bool   `json:"bootstrapped"`
	Loaded       int    `json:"loaded"`
	Skipped      int    `json:"skipped"`
	Sorted       int    `json:"sorted"`
	Removed      int    `json:"removed"`
	Records      int    `json:"records"`
}

func (r NormalizeReport) String() string {
	var b strings.Builder
	if r.Bootstrapped {
		fmt.Fprintf(&b, "created %s from built-in seed\n", r.Path)
	}
	fmt.Fprintf(&b, "%d records imported (%d lines skipped)\n", r.Loaded, r.Skipped)
	fmt.Fprintf(&b, "%d records sorted\n", r.Sorted)
	fmt.Fprintf(&b, "%d duplicates removed\n", r.Removed)
	fmt.Fprintf(&b, "%d records saved to %s", r.Records, r.Path)
	return b.String()
}

// NewNormalizeCommand creates the normalize command.
func NewNormalizeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Sort and de-duplicate the record file",
		Long: `Sort the record file by (code, character) and collapse duplicate
entries, keeping the lowest rating of each duplicate group.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(rootOpts, cmd)
		},
	}

	return cmd
}

func runNormalize(opts *RootOptions, cmd *cobra.Command) error {
	e, err := newEnv(opts, cmd)
	if err != nil {
		return err
	}

	st, stats, err := e.openStore()
	if err != nil {
		return err
	}
	sorted, removed := st.Normalize()
	if err := e.save(st); err != nil {
		return err
	}

	return e.formatter.Success(NormalizeReport{
		Path:         st.Path(),
		Bootstrapped: stats.Bootstrapped,
		Loaded:       stats.Loaded,
		Skipped:      stats.Skipped,
		Sorted:       sorted,
		Removed:      removed,
		Records:      st.Len(),
	})
}

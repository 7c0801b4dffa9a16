package cli

import (
	"errors"
	"io"
)

// Execute runs the CLI with args and returns the process exit code.
// Errors not already rendered by a command are written to stderr in the
// selected output format.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	if !isReported(err) {
		format, _ := cmd.PersistentFlags().GetString("format")
		if !isValidFormat(format) {
			format = "text"
		}
		formatter := &OutputFormatter{Format: format, Writer: stderr}
		_ = formatter.Error(getErrCode(err), err.Error(), nil)
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	// Flag parsing and argument errors come from cobra.
	return ExitCommandError
}

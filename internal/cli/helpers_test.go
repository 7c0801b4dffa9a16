package cli

import (
	"bytes"
	"strings"
	"testing"
)

type cliRun struct {
	stdout string
	stderr string
	code   int
}

// runCLI executes the CLI with args, feeding input on stdin.
func runCLI(t *testing.T, input string, args ...string) cliRun {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(args, strings.NewReader(input), &stdout, &stderr)
	return cliRun{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

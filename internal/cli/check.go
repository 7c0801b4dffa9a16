package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/cjtrainer/internal/record"
)

// Problem is one finding in a record file.
type Problem struct {
	Line    int    `json:"line"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CheckResult holds the findings for one record file.
type CheckResult struct {
	Valid    bool      `json:"valid"`
	Records  int       `json:"records"`
	Skipped  int       `json:"skipped"`
	Sorted   bool      `json:"sorted"`
	Problems []Problem `json:"problems,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [record-file]",
		Short: "Lint a record file without changing it",
		Long: `Lint a record file without loading it into the trainer.

Reports every unparsable rating, duplicate (code, character) pair and
character not in Unicode NFC form, with line numbers. Also reports whether
the file is sorted and how many short lines would be skipped. Unlike the
other commands, check never creates a missing file.

Defaults to the configured record file when no path is given.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, args []string, cmd *cobra.Command) error {
	e, err := newEnv(opts, cmd)
	if err != nil {
		return err
	}
	path := e.cfg.DataFile
	if len(args) == 1 {
		path = args[0]
	}

	result, err := CheckFile(path)
	if err != nil {
		code := ErrCodeLoadFailed
		if errors.Is(err, fs.ErrNotExist) {
			code = ErrCodeNotFound
		}
		return WrapExitError(ExitCommandError, "failed to check records", err).withErrCode(code)
	}
	e.formatter.VerboseLog("checked %d records in %s", result.Records, path)

	if !result.Valid {
		return outputCheckProblems(e.formatter, path, result)
	}
	return outputCheckSuccess(e.formatter, path, result)
}

// CheckFile scans the record file at path and collects every problem
// instead of stopping at the first.
func CheckFile(path string) (*CheckResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	result := &CheckResult{Sorted: true}
	firstLine := make(map[record.Key]int)
	var prev *record.Record

	scanner := record.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		rec, ok, err := record.ParseLine(line)
		if err != nil {
			result.Problems = append(result.Problems, Problem{Line: lineNo, Code: ErrCodeBadRating, Message: err.Error()})
			continue
		}
		if !ok {
			result.Skipped++
			continue
		}
		result.Records++

		if at, dup := firstLine[rec.Key()]; dup {
			result.Problems = append(result.Problems, Problem{
				Line:    lineNo,
				Code:    ErrCodeDuplicate,
				Message: fmt.Sprintf("%s,%s repeats line %d", rec.Code, rec.Character, at),
			})
		} else {
			firstLine[rec.Key()] = lineNo
		}

		if !norm.NFC.IsNormalString(rec.Character) {
			result.Problems = append(result.Problems, Problem{
				Line:    lineNo,
				Code:    ErrCodeNotNFC,
				Message: fmt.Sprintf("character %q is not NFC normalized", rec.Character),
			})
		}

		if prev != nil && record.Compare(*prev, rec) > 0 {
			result.Sorted = false
		}
		prev = &rec
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	result.Valid = len(result.Problems) == 0
	return result, nil
}

func outputCheckSuccess(formatter *OutputFormatter, path string, result *CheckResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ %s: %d records, %d lines skipped", path, result.Records, result.Skipped)
	if !result.Sorted {
		fmt.Fprint(formatter.Writer, ", not sorted")
	}
	fmt.Fprintln(formatter.Writer)
	return nil
}

func outputCheckProblems(formatter *OutputFormatter, path string, result *CheckResult) error {
	exitErr := NewExitError(ExitFailure, fmt.Sprintf("check failed with %d problem(s)", len(result.Problems))).withErrCode(ErrCodeCheckFailed)
	exitErr.Reported = true

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    result.Problems[0].Code,
				Message: result.Problems[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return exitErr
	}

	fmt.Fprintf(formatter.Writer, "✗ %s: check failed\n\n", path)
	for _, p := range result.Problems {
		fmt.Fprintf(formatter.Writer, "line %d\n", p.Line)
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", p.Code, p.Message)
	}
	return exitErr
}

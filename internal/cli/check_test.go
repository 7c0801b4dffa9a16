package cli

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cjtrainer/internal/testutil"
)

func TestCheckFile_Clean(t *testing.T) {
	path := testutil.WriteDataFile(t, t.TempDir(), "cj.csv", "a,日,0", "b,月,-3", "short")

	result, err := CheckFile(path)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, 2, result.Records)
	assert.Equal(t, 1, result.Skipped)
	assert.True(t, result.Sorted)
	assert.Empty(t, result.Problems)
}

func TestCheckFile_CollectsAllProblems(t *testing.T) {
	path := testutil.WriteDataFile(t, t.TempDir(), "cj.csv",
		"b,月,0",
		"a,日,x",
		"b,月,3",
		"c,e\u0301,0",
		"short",
	)

	result, err := CheckFile(path)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, 3, result.Records)
	assert.Equal(t, 1, result.Skipped)
	assert.True(t, result.Sorted)

	require.Len(t, result.Problems, 3)
	assert.Equal(t, Problem{Line: 2, Code: ErrCodeBadRating, Message: result.Problems[0].Message}, result.Problems[0])
	assert.Equal(t, Problem{Line: 3, Code: ErrCodeDuplicate, Message: "b,月 repeats line 1"}, result.Problems[1])
	assert.Equal(t, 4, result.Problems[2].Line)
	assert.Equal(t, ErrCodeNotNFC, result.Problems[2].Code)
}

func TestCheckFile_OversizedLineIsSkipped(t *testing.T) {
	path := testutil.WriteDataFile(t, t.TempDir(), "cj.csv", "a,日,0", strings.Repeat("x", 200*1024))

	result, err := CheckFile(path)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, 1, result.Records)
	assert.Equal(t, 1, result.Skipped)
}

func TestCheckFile_Unsorted(t *testing.T) {
	path := testutil.WriteDataFile(t, t.TempDir(), "cj.csv", "b,月,0", "a,日,0")

	result, err := CheckFile(path)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.False(t, result.Sorted)
}

func TestCheck_TextOutput(t *testing.T) {
	path := testutil.WriteDataFile(t, t.TempDir(), "cj.csv", "a,日,0", "a,日,1")

	res := runCLI(t, "", "check", path)
	assert.Equal(t, ExitFailure, res.code)
	assert.Contains(t, res.stdout, "✗ "+path+": check failed")
	assert.Contains(t, res.stdout, "line 2\n  E102: a,日 repeats line 1")
	assert.NotContains(t, res.stderr, "Error [")
}

func TestCheck_Success(t *testing.T) {
	path := testutil.WriteDataFile(t, t.TempDir(), "cj.csv", "b,月,0", "a,日,0")

	res := runCLI(t, "", "check", path)
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "✓ "+path+": 2 records, 0 lines skipped, not sorted\n", res.stdout)
}

func TestCheck_JSONOutput(t *testing.T) {
	path := testutil.WriteDataFile(t, t.TempDir(), "cj.csv", "a,日,0", "b,月,?")

	res := runCLI(t, "", "--format", "json", "check", path)
	assert.Equal(t, ExitFailure, res.code)

	var resp struct {
		Status string      `json:"status"`
		Data   CheckResult `json:"data"`
		Error  CLIError    `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeBadRating, resp.Error.Code)
	assert.False(t, resp.Data.Valid)
	require.Len(t, resp.Data.Problems, 1)
	assert.Equal(t, 2, resp.Data.Problems[0].Line)
}

func TestCheck_UsesConfiguredFile(t *testing.T) {
	path := testutil.WriteDataFile(t, t.TempDir(), "cj.csv", "a,日,0")

	res := runCLI(t, "", "--data", path, "check")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "1 records")
}

func TestCheck_MissingFileIsNotCreated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cj.csv")

	res := runCLI(t, "", "check", path)
	assert.Equal(t, ExitCommandError, res.code)
	assert.Contains(t, res.stderr, "Error [E008]")
	assert.NoFileExists(t, path)
}

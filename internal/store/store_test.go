package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cjtrainer/internal/record"
	"github.com/roach88/cjtrainer/internal/testutil"
)

func fixedSeed(recs ...record.Record) func() ([]record.Record, error) {
	return func() ([]record.Record, error) { return recs, nil }
}

func TestLoad_ParsesRecords(t *testing.T) {
	path := testutil.WriteDataFile(t, t.TempDir(), "cj.csv",
		"aombc,題,-9",
		"CVMI, 鏘 ,0",
		"ybog,離,-2",
	)
	s := New(path, WithLogger(quietLogger()))

	stats, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, LoadStats{Loaded: 3}, stats)
	assert.Equal(t, []record.Record{
		rec("aombc", "題", -9),
		rec("cvmi", "鏘", 0),
		rec("ybog", "離", -2),
	}, s.Records())
}

func TestLoad_SkipsShortLines(t *testing.T) {
	path := testutil.WriteDataFile(t, t.TempDir(), "cj.csv",
		"a,日,0",
		"",
		"b,月",
		"garbage",
		"c,金,1",
	)
	s := New(path, WithLogger(quietLogger()))

	stats, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Loaded)
	assert.Equal(t, 3, stats.Skipped)
	assert.Equal(t, 2, s.Len())
}

func TestLoad_BadRatingIsFatal(t *testing.T) {
	path := testutil.WriteDataFile(t, t.TempDir(), "cj.csv",
		"a,日,0",
		"b,月,high",
	)
	s := New(path, WithLogger(quietLogger()))

	_, err := s.Load()
	require.Error(t, err)
	assert.True(t, IsParseError(err))

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Line)
	assert.Equal(t, path, pe.Path)
	assert.Contains(t, err.Error(), "b,月,high")
	assert.Zero(t, s.Len(), "failed load must not leave partial records")
}

func TestLoad_StripsByteOrderMark(t *testing.T) {
	path := testutil.WriteDataFile(t, t.TempDir(), "cj.csv", "\ufeffa,日,0")
	s := New(path, WithLogger(quietLogger()))

	_, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "a", s.Records()[0].Code)
}

func TestLoad_SkipsOversizedShortLine(t *testing.T) {
	junk := strings.Repeat("x", 200*1024)
	path := testutil.WriteDataFile(t, t.TempDir(), "cj.csv", "a,日,0", junk, "b,月,-1")
	s := New(path, WithLogger(quietLogger()))

	stats, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Loaded)
	assert.Equal(t, 1, stats.Skipped)
}

func TestLoad_BootstrapsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cj.csv")
	s := New(path,
		WithLogger(quietLogger()),
		WithSeed(fixedSeed(rec("a", "日", 0), rec("b", "月", 0))),
	)

	stats, err := s.Load()
	require.NoError(t, err)
	assert.True(t, stats.Bootstrapped)
	assert.Equal(t, 2, stats.Loaded)
	assert.Equal(t, []string{"a,日,0", "b,月,0"}, testutil.ReadLines(t, path))

	// A second load reads the file written by the first.
	again := New(path, WithLogger(quietLogger()), WithSeed(fixedSeed()))
	stats, err = again.Load()
	require.NoError(t, err)
	assert.False(t, stats.Bootstrapped)
	assert.Equal(t, 2, again.Len())
}

func TestLoad_BootstrapsFromBuiltInSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cj.csv")
	s := New(path, WithLogger(quietLogger()))

	stats, err := s.Load()
	require.NoError(t, err)
	assert.True(t, stats.Bootstrapped)
	assert.Positive(t, s.Len())
	assert.Equal(t, s.Len(), s.Counts().New)
}

func TestLoad_BootstrapMissingParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "cj.csv")
	s := New(path, WithLogger(quietLogger()), WithSeed(fixedSeed(rec("a", "日", 0))))

	_, err := s.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_SeedErrorIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cj.csv")
	boom := errors.New("boom")
	s := New(path, WithLogger(quietLogger()), WithSeed(func() ([]record.Record, error) {
		return nil, boom
	}))

	_, err := s.Load()
	require.ErrorIs(t, err, boom)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	recs := []record.Record{
		rec("ybog", "離", -2),
		rec("aombc", "題", -9),
		rec("cvmi", "鏘", 0),
		rec("a", "日", 12),
	}
	s := newTestStore(t, recs...)
	require.NoError(t, s.Save())

	loaded := New(s.Path(), WithLogger(quietLogger()))
	_, err := loaded.Load()
	require.NoError(t, err)
	assert.ElementsMatch(t, recs, loaded.Records())
}

func TestSave_ReplacesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteDataFile(t, dir, "cj.csv", "old,舊,0", "older,古,0")

	s := New(path, WithLogger(quietLogger()))
	s.records = []record.Record{rec("a", "日", 1)}
	require.NoError(t, s.Save())

	assert.Equal(t, []string{"a,日,1"}, testutil.ReadLines(t, path))

	// No temp files are left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cj.csv", entries[0].Name())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestSave_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone", "cj.csv")
	s := New(path, WithLogger(quietLogger()))
	s.records = []record.Record{rec("a", "日", 0)}

	err := s.Save()
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestSave_Golden(t *testing.T) {
	s := newTestStore(t,
		rec("ybog", "離", -2),
		rec("aombc", "題", 0),
		rec("cvmi", "鏘", 0),
		rec("aombc", "題", -9),
		rec("aombc", "題", -3),
		rec("a", "日", 4),
	)
	s.Normalize()
	require.NoError(t, s.Save())

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "save_normalized", data)
}

func TestCounts(t *testing.T) {
	s := newTestStore(t,
		rec("a", "日", -1),
		rec("b", "月", 0),
		rec("c", "金", 0),
		rec("d", "木", 3),
		rec("e", "水", 4),
	)
	assert.Equal(t, record.Counts{Difficult: 1, New: 2, Easy: 1, VeryEasy: 1}, s.Counts())
}

func TestRecordsReturnsCopy(t *testing.T) {
	s := newTestStore(t, rec("a", "日", 0))
	out := s.Records()
	out[0].Rating = 99
	assert.Equal(t, 0, s.Records()[0].Rating)
}

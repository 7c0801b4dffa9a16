package store

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/roach88/cjtrainer/internal/record"
	"github.com/roach88/cjtrainer/internal/testutil"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestStore returns a store holding recs, backed by a path in a temp dir
// that does not exist yet.
func newTestStore(t *testing.T, recs ...record.Record) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), "cj.csv"),
		WithRand(testutil.NewRand(42)),
		WithLogger(quietLogger()),
	)
	s.records = append(s.records, recs...)
	return s
}

func rec(code, char string, rating int) record.Record {
	return record.Record{Code: code, Character: char, Rating: rating}
}

// population builds n records per rating listed, with distinct codes.
func population(perRating map[int]int) []record.Record {
	var out []record.Record
	i := 0
	for rating, n := range perRating {
		for _i := 0; _i < n; _i++ {
			out = append(out, rec(codeFor(i), string(rune('一'+i)), rating))
			i++
		}
	}
	return out
}

func codeFor(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxy"
	code := ""
	for {
		code = string(letters[i%len(letters)]) + code
		i /= len(letters)
		if i == 0 {
			return code
		}
	}
}

func bandTally(batch []record.Record) record.Counts {
	var c record.Counts
	for _, r := range batch {
		c.Add(r.Rating)
	}
	return c
}

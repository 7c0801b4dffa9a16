package store

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/roach88/cjtrainer/internal/record"
	"github.com/roach88/cjtrainer/internal/seed"
)

// Store owns the ordered record set backed by a data file.
type Store struct {
	path    string
	records []record.Record
	rng     *rand.Rand
	logger  *slog.Logger
	seed    func() ([]record.Record, error)
}

// Option configures a Store.
type Option func(*Store)

// WithRand sets the randomness source used by the selection algorithms.
// Tests pass a seeded source for reproducible batches.
func WithRand(rng *rand.Rand) Option {
	return func(s *Store) { s.rng = rng }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithSeed overrides the bootstrap content written when the data file is
// missing. Defaults to seed.Records.
func WithSeed(fn func() ([]record.Record, error)) Option {
	return func(s *Store) { s.seed = fn }
}

// New creates an empty store for the data file at path. Nothing is read
// until Load is called.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path: path,
		seed: seed.Records,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Path returns the data file location.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of records held.
func (s *Store) Len() int {
	return len(s.records)
}

// Records returns a copy of the records in their current order.
func (s *Store) Records() []record.Record {
	return slices.Clone(s.records)
}

// Counts tallies the records per rating band.
func (s *Store) Counts() record.Counts {
	var c record.Counts
	for _, r := range s.records {
		c.Add(r.Rating)
	}
	return c
}

// LoadStats describes what a Load call did.
type LoadStats struct {
	Loaded       int  `json:"loaded"`
	Skipped      int  `json:"skipped"`
	Bootstrapped bool `json:"bootstrapped"`
}

// Load appends every record in the data file to the store, creating the
// file from the seed first if it does not exist.
//
// Lines with fewer than three fields are skipped. A line whose rating does
// not parse fails the whole load with a *ParseError.
func (s *Store) Load() (LoadStats, error) {
	var stats LoadStats

	created, err := s.bootstrap()
	if err != nil {
		return stats, err
	}
	stats.Bootstrapped = created

	f, err := os.Open(s.path)
	if err != nil {
		return stats, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	var loaded []record.Record
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
			return stats, &ParseError{Path: s.path, Line: lineNo, Text: line, Err: err}
		}
		if !ok {
			stats.Skipped++
			s.logger.Debug("skipping short line", "path", s.path, "line", lineNo)
			continue
		}
		loaded = append(loaded, rec)
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read %s: %w", s.path, err)
	}

	s.records = append(s.records, loaded...)
	stats.Loaded = len(loaded)
	s.logger.Info("records imported", "path", s.path, "records", stats.Loaded, "skipped", stats.Skipped)
	return stats, nil
}

// Save writes every record to the data file, replacing it atomically.
func (s *Store) Save() error {
	if err := writeAtomic(s.path, s.records); err != nil {
		return fmt.Errorf("save %s: %w", s.path, err)
	}
	s.logger.Debug("records saved", "path", s.path, "records", len(s.records))
	return nil
}

// bootstrap writes the seed content when the data file is missing and
// reports whether it did. The parent directory must already exist.
func (s *Store) bootstrap() (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat %s: %w", s.path, err)
	}

	recs, err := s.seed()
	if err != nil {
		return false, fmt.Errorf("bootstrap %s: %w", s.path, err)
	}
	if err := writeAtomic(s.path, recs); err != nil {
		return false, fmt.Errorf("bootstrap %s: %w", s.path, err)
	}

	s.logger.Info("created data file from seed", "path", s.path, "records", len(recs))
	return true, nil
}

// writeAtomic writes recs to a temp file beside path and renames it into
// place. On failure the temp file is removed and path is untouched.
func writeAtomic(path string, recs []record.Record) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, r := range recs {
		if _, err = w.WriteString(r.String() + "\n"); err != nil {
			return fmt.Errorf("write %s: %w", tmp.Name(), err)
		}
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}

	// rename replaces an existing file atomically
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

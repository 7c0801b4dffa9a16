package store

import (
	"fmt"

	"github.com/roach88/cjtrainer/internal/record"
)

// Update copies the rating of every batch record onto the first store
// record with the same code. Records not named in the batch are untouched.
//
// All targets are resolved before anything is written: if any code is
// missing, Update returns an error wrapping ErrRecordNotFound and the store
// is unchanged.
func (s *Store) Update(batch []record.Record) error {
	first := make(map[string]int, len(s.records))
	for i, r := range s.records {
		if _, ok := first[r.Code]; !ok {
			first[r.Code] = i
		}
	}

	targets := make([]int, len(batch))
	for i, b := range batch {
		idx, ok := first[b.Code]
		if !ok {
			return fmt.Errorf("update code %q (%s): %w", b.Code, b.Character, ErrRecordNotFound)
		}
		targets[i] = idx
	}

	for i, idx := range targets {
		s.records[idx].Rating = batch[i].Rating
	}
	s.logger.Debug("ratings updated", "records", len(batch))
	return nil
}

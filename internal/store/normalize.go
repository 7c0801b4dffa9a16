package store

import (
	"slices"

	"github.com/roach88/cjtrainer/internal/record"
)

// Sort orders the records by (code, character). The sort is stable, so
// records sharing a key keep their load order.
func (s *Store) Sort() {
	slices.SortStableFunc(s.records, record.Compare)
}

// IsSorted reports whether the records are in (code, character) order.
func (s *Store) IsSorted() bool {
	return slices.IsSortedFunc(s.records, record.Compare)
}

// Dedup removes records that repeat the (code, character) of the record
// before them, keeping for each key the lowest rating seen. It returns the
// number of records removed.
//
// The records must already be sorted; duplicates that are not adjacent
// survive.
func (s *Store) Dedup() int {
	if len(s.records) < 2 {
		return 0
	}

	out := make([]record.Record, 0, len(s.records))
	for _, r := range s.records {
		last := len(out) - 1
		if last >= 0 && out[last].Key() == r.Key() {
			if r.Rating < out[last].Rating {
				out[last] = r
			}
			continue
		}
		out = append(out, r)
	}

	removed := len(s.records) - len(out)
	s.records = out
	return removed
}

// Normalize sorts and de-duplicates the records, returning how many were
// sorted and how many duplicates were dropped.
func (s *Store) Normalize() (sorted, removed int) {
	s.Sort()
	sorted = len(s.records)
	removed = s.Dedup()
	s.logger.Info("records normalized", "sorted", sorted, "removed", removed, "records", len(s.records))
	return sorted, removed
}

package store

import (
	"github.com/roach88/cjtrainer/internal/record"
)

// ScoreItems builds a batch of n records with equal quotas for the
// difficult, new and easy bands.
//
// Each of those bands contributes up to n/3 distinct records; a band short
// of its quota does not pass the shortfall on. Remaining slots are filled
// from the very easy band, then from any record not yet chosen. Only when
// the whole population is smaller than n are records repeated, drawn with
// replacement until the batch is full. The batch is shuffled.
func (s *Store) ScoreItems(n int) []record.Record {
	p := s.newPicker(n)
	quota := n / 3

	p.take(quota, inBand(record.Difficult))
	p.take(quota, inBand(record.New))
	p.take(quota, inBand(record.Easy))
	p.take(p.need(), inBand(record.VeryEasy))
	p.take(p.need(), anyRecord)
	// The tail grows by append; n may far exceed the population.
	for p.need() > 0 && len(s.records) > 0 {
		p.batch = append(p.batch, s.records[s.rng.Intn(len(s.records))])
	}

	return p.finish("score")
}

// SmartItems builds a batch of n records weighted toward new material:
// up to n/10 difficult records, up to 8n/10 new records, then easy records
// by rating 1, 2, 3 until full, then any record not yet chosen. Records are
// never repeated, so the batch is smaller than n only when the population
// is. The batch is shuffled.
func (s *Store) SmartItems(n int) []record.Record {
	p := s.newPicker(n)

	p.take(n/10, inBand(record.Difficult))
	// floor(8n/10) without overflowing n*8
	p.take(n/10*8+n%10*8/10, inBand(record.New))
	for rating := 1; rating <= record.EasyCeiling && p.need() > 0; rating++ {
		p.take(p.need(), ratedExactly(rating))
	}
	p.take(p.need(), anyRecord)

	return p.finish("smart")
}

// RandomItems draws n records uniformly with replacement.
func (s *Store) RandomItems(n int) []record.Record {
	if n <= 0 || len(s.records) == 0 {
		return []record.Record{}
	}
	out := make([]record.Record, 0, min(n, len(s.records)))
	for _i := 0; _i < n; _i++ {
		out = append(out, s.records[s.rng.Intn(len(s.records))])
	}
	return out
}

func inBand(b record.Band) func(record.Record) bool {
	return func(r record.Record) bool { return b.Contains(r.Rating) }
}

func ratedExactly(rating int) func(record.Record) bool {
	return func(r record.Record) bool { return r.Rating == rating }
}

func anyRecord(record.Record) bool { return true }

// picker accumulates one batch, tracking which store indices are taken.
type picker struct {
	s     *Store
	n     int
	taken []bool
	batch []record.Record
}

func (s *Store) newPicker(n int) *picker {
	n = max(n, 0)
	return &picker{
		s:     s,
		n:     n,
		taken: make([]bool, len(s.records)),
		batch: make([]record.Record, 0, min(n, len(s.records))),
	}
}

func (p *picker) need() int {
	return p.n - len(p.batch)
}

// take draws up to limit untaken records matching keep, never past n.
func (p *picker) take(limit int, keep func(record.Record) bool) int {
	k := min(limit, p.need())
	if k <= 0 {
		return 0
	}

	var pool []int
	for i, r := range p.s.records {
		if !p.taken[i] && keep(r) {
			pool = append(pool, i)
		}
	}

	chosen := p.s.sample(pool, k)
	for _, i := range chosen {
		p.taken[i] = true
		p.batch = append(p.batch, p.s.records[i])
	}
	return len(chosen)
}

func (p *picker) finish(strategy string) []record.Record {
	p.s.rng.Shuffle(len(p.batch), func(i, j int) {
		p.batch[i], p.batch[j] = p.batch[j], p.batch[i]
	})
	p.s.logger.Debug("batch selected", "strategy", strategy, "requested", p.n, "size", len(p.batch))
	return p.batch
}

// sample picks min(k, len(pool)) distinct entries of pool uniformly at
// random using a partial Fisher-Yates shuffle. pool is reordered.
func (s *Store) sample(pool []int, k int) []int {
	k = min(k, len(pool))
	for i := 0; i < k; i++ {
		j := i + s.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

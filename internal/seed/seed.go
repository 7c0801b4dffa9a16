// Package seed provides the built-in records written on first run, so the
// trainer is usable without any setup. The content lives in seed.cue, which
// also carries the schema every entry must satisfy.
package seed

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/cjtrainer/internal/record"
)

//go:embed seed.cue
var seedCUE []byte

type entry struct {
	Code   string `json:"code"`
	Char   string `json:"char"`
	Rating int    `json:"rating"`
}

// Records compiles the embedded seed document and returns its records in
// declaration order.
func Records() ([]record.Record, error) {
	return compile(seedCUE)
}

func compile(src []byte) ([]record.Record, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename("seed.cue"))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile seed: %w", err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("validate seed: %w", err)
	}

	var entries []entry
	if err := v.LookupPath(cue.ParsePath("records")).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	out := make([]record.Record, 0, len(entries))
	for _, e := range entries {
		out = append(out, record.Record{
			Code:      record.NormalizeCode(e.Code),
			Character: e.Char,
			Rating:    e.Rating,
		})
	}
	return out, nil
}

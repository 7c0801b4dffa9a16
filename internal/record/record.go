package record

import (
	"bufio"
	"cmp"
	"io"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxLineBytes is the longest storage line a scanner accepts.
const MaxLineBytes = 16 << 20

// Rating bounds. Ratings are persisted as signed 16-bit values.
const (
	MinRating = math.MinInt16
	MaxRating = math.MaxInt16
)

// Record pairs a character with its input code and a proficiency rating.
// All fields are values, so copying a Record never aliases another.
type Record struct {
	Character string `json:"character"`
	Code      string `json:"code"`
	Rating    int    `json:"rating"`
}

// Key identifies a record for sorting and de-duplication.
type Key struct {
	Code      string
	Character string
}

// Key returns the (code, character) identity of r.
func (r Record) Key() Key {
	return Key{Code: r.Code, Character: r.Character}
}

// Band returns the proficiency band of r.
func (r Record) Band() Band {
	return BandOf(r.Rating)
}

// String formats r as a storage line without the trailing newline.
func (r Record) String() string {
	return r.Code + "," + r.Character + "," + strconv.Itoa(r.Rating)
}

// Compare orders records by code, then character, byte-wise.
func Compare(a, b Record) int {
	if c := cmp.Compare(a.Code, b.Code); c != 0 {
		return c
	}
	return cmp.Compare(a.Character, b.Character)
}

// NormalizeCode trims s and lower-cases it.
func NormalizeCode(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// ClampRating limits v to [MinRating, MaxRating].
func ClampRating(v int) int {
	return min(max(v, MinRating), MaxRating)
}

// ParseLine parses one storage line.
//
// ok is false when the line has fewer than three comma-separated fields;
// such lines are noise and carry no error. Fields after the third are
// ignored. A rating that is not a decimal 16-bit integer is an error.
func ParseLine(line string) (rec Record, ok bool, err error) {
	parts := strings.Split(line, ",")
	if len(parts) < 3 {
		return Record{}, false, nil
	}

	raw := strings.TrimSpace(parts[2])
	rating, err := strconv.ParseInt(raw, 10, 16)
	if err != nil {
		return Record{}, false, fmt.Errorf("invalid rating %q: %w", raw, err)
	}

	return Record{
		Code:      NormalizeCode(parts[0]),
		Character: strings.TrimSpace(parts[1]),
		Rating:    int(rating),
	}, true, nil
}

// NewScanner returns a line scanner over a record file. Lines up to
// MaxLineBytes are read, so oversized noise lines are skipped by ParseLine
// instead of failing the scan.
func NewScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)
	return sc
}

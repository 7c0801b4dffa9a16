package quiz

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/cjtrainer/internal/record"
)

// Correct returns the rating after a correct first answer.
func Correct(rating int) int {
	return record.ClampRating(rating + 1)
}

// Missed returns the rating after a wrong first answer.
func Missed(rating int) int {
	if rating > 0 {
		return -1
	}
	return record.ClampRating(rating - 1)
}

// NormalizeAnswer trims the typed line, folds compatibility forms such as
// full-width letters from an IME, and lower-cases it.
func NormalizeAnswer(s string) string {
	return cases.Lower(language.Und).String(norm.NFKC.String(strings.TrimSpace(s)))
}

// Package record defines the flashcard record held by the trainer: a
// character, the input code that produces it and a proficiency rating.
//
// Ratings partition records into bands:
//
//	rating < 0       Difficult (previously missed)
//	rating == 0      New (never answered)
//	0 < rating <= 3  Easy
//	rating > 3       VeryEasy
//
// The on-disk form is one record per line, "code,character,rating", with no
// quoting. Codes are lower-cased on read so matching is case-insensitive.
package record

// Package quiz runs one interactive round over a batch of records: it shows
// each character, reads the typed code, grades it and adjusts the rating.
//
// A wrong answer prints the expected code and keeps asking for the same
// character until it is typed correctly. Only the first attempt counts
// toward the score and the rating.
//
// Rating rule:
//
//	correct:  rating + 1
//	wrong:    -1 when the rating was positive, otherwise rating - 1
//
// Ratings stay within record.MinRating..record.MaxRating.
package quiz

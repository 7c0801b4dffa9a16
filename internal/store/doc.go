// Package store holds the trainer's record set in memory and persists it to
// a flat text file.
//
// # Persistence
//
// The data file has one record per line, "code,character,rating". Load
// creates the file from the built-in seed when it is missing, so a fresh
// install needs no setup. Save writes to a temporary file in the same
// directory and renames it over the data file; the data file is never
// written in place, so a crash leaves either the old or the new content.
// Lines longer than record.MaxLineBytes fail the load.
//
// # Normalization
//
// Sort orders records by (code, character). Dedup collapses runs of equal
// (code, character) keys into one record carrying the lowest rating of the
// run. Dedup assumes sorted input and does not check it.
//
// # Selection
//
// ScoreItems and SmartItems build quiz batches by drawing without
// replacement from rating bands with per-band quotas, then shuffle the
// batch. RandomItems draws uniformly with replacement. Batches are copies;
// ratings changed on them reach the store only through Update.
//
// A Store has a single owner and is not safe for concurrent use.
package store

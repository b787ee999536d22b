// Package storage persists the reduced event dataset.
//
// The dataset file is the contract with downstream consumers: a single JSON
// array of canonical events, fully replaced on every successful run. Writes
// are atomic (temp file + rename) and an empty dataset is refused outright,
// so the published artifact is always a valid non-empty list or absent.
package storage

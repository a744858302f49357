// Package answers holds the Answer Context: the mapping from question key to
// collected value that every later stage of generation reads. A Builder
// accumulates values while questions are asked; Freeze turns it into an
// immutable Context that is safe to share across goroutines.
package answers

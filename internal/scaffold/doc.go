// Package scaffold materializes a template tree into a destination
// directory: files are filtered by the answers, transformed concurrently,
// staged, and moved into place only after every file succeeded.
package scaffold

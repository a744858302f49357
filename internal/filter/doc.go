// Package filter decides which template files are materialized.
//
// A Rule pairs a path pattern with a predicate over the answers. A file
// is included when no rule matches it, or when every matching rule's
// predicate holds. Rules never include a file that another matching rule
// excludes.
package filter

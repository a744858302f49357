// Package meta loads and validates template configuration files
// (meta.yaml, meta.yml, or meta.json) and compiles them into the
// questions, filter rules, and completion settings the generator runs.
// Every predicate is compiled and every referenced answer key is checked
// at load time, before any file is read from the template tree.
package meta

// Package pipeline runs the post-generation steps against a materialized
// project: dependency sorting, global tool installation, project install,
// lint fixing, and the closing message.
//
// Steps run strictly in order. Each step is gated by a predicate over the
// answers and may require earlier steps to have executed. The first
// failing step aborts the run; later steps stay pending.
package pipeline

// Package prompt resolves the ordered question list into an Answer Context.
// Questions are asked strictly in declaration order because a question's
// visibility rule may reference any earlier answer. The input mechanism is
// pluggable through Collector: TerminalCollector drives numbered menus on a
// reader/writer pair, StubCollector answers from a pre-supplied map.
package prompt

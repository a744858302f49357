// Package expr implements the closed predicate language used by question
// visibility rules, file filters, content directives, and completion-step
// gates.
//
// The grammar, lowest precedence first:
//
//	or         = and { "||" and }
//	and        = unary { "&&" unary }
//	unary      = "!" unary | comparison
//	comparison = operand [ ( "===" | "!==" | "==" | "!=" ) operand ]
//	operand    = identifier | string | "true" | "false" | "(" or ")"
//
// Identifiers name Answer Context keys. A comparison needs at least one
// identifier operand. Evaluation short-circuits left to right.
package expr

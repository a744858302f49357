package expr

import (
	"strconv"

	"github.com/skelgen-labs/skelgen/internal/answers"
)

// NodeKind tags the variant held by a Node.
type NodeKind int

const (
	NodeLiteral NodeKind = iota
	NodeIdent
	NodeCompare
	NodeAnd
	NodeOr
	NodeNot
)

// Node is one vertex of a parsed predicate.
type Node struct {
	Kind NodeKind

	// Value is set for NodeLiteral.
	Value answers.Value
	// Name is set for NodeIdent.
	Name string
	// Negate marks a NodeCompare as "!==".
	Negate bool

	// Left and Right are the operands of NodeCompare, NodeAnd, and NodeOr.
	// NodeNot keeps its operand in Left and may itself be a NodeCompare
	// operand, evaluating to a boolean.
	Left, Right *Node
}

// String renders the node in canonical form with explicit parentheses.
func (n *Node) String() string {
	switch n.Kind {
	case NodeLiteral:
		if n.Value.Kind() == answers.KindBool {
			return strconv.FormatBool(n.Value.BoolValue())
		}
		return strconv.Quote(n.Value.Str())
	case NodeIdent:
		return n.Name
	case NodeCompare:
		op := " === "
		if n.Negate {
			op = " !== "
		}
		return n.Left.String() + op + n.Right.String()
	case NodeAnd:
		return "(" + n.Left.String() + " && " + n.Right.String() + ")"
	case NodeOr:
		return "(" + n.Left.String() + " || " + n.Right.String() + ")"
	case NodeNot:
		if n.Left.Kind == NodeCompare {
			return "!(" + n.Left.String() + ")"
		}
		return "!" + n.Left.String()
	default:
		return "?"
	}
}

package expr

import (
	"slices"
	"strings"

	"github.com/skelgen-labs/skelgen/internal/answers"
)

// Program is a compiled predicate. It is immutable and safe for concurrent
// use.
type Program struct {
	src  string
	root *Node
}

// Compile parses src into a Program.
func Compile(src string) (*Program, error) {
	root, err := parse(strings.TrimSpace(src))
	if err != nil {
		return nil, err
	}
	return &Program{src: src, root: root}, nil
}

// MustCompile is like Compile but panics on error. Intended for package-level
// predicates with constant text.
func MustCompile(src string) *Program {
	p, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return p
}

// Eval compiles and evaluates src against ctx leniently.
func Eval(src string, ctx answers.Lookup) (bool, error) {
	p, err := Compile(src)
	if err != nil {
		return false, err
	}
	return p.Eval(ctx), nil
}

// Source returns the predicate text the program was compiled from.
func (p *Program) Source() string { return p.src }

// String returns the canonical form of the predicate.
func (p *Program) String() string { return p.root.String() }

// Identifiers returns the distinct keys the predicate references, in order
// of first appearance.
func (p *Program) Identifiers() []string {
	var ids []string
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if n.Kind == NodeIdent && !slices.Contains(ids, n.Name) {
			ids = append(ids, n.Name)
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(p.root)
	return ids
}

// Eval evaluates the predicate. An absent key is falsy and never equal to
// any value, matching the semantics of questions skipped by their own
// visibility rule.
func (p *Program) Eval(ctx answers.Lookup) bool {
	ok, _ := p.eval(p.root, ctx, false)
	return ok
}

// EvalStrict evaluates the predicate and fails with ErrUnknownKey on the
// first referenced key that ctx does not hold. Short-circuited operands are
// not inspected.
func (p *Program) EvalStrict(ctx answers.Lookup) (bool, error) {
	return p.eval(p.root, ctx, true)
}

func (p *Program) eval(n *Node, ctx answers.Lookup, strict bool) (bool, error) {
	switch n.Kind {
	case NodeLiteral:
		return n.Value.Truthy(), nil
	case NodeIdent:
		v, ok, err := p.resolve(n, ctx, strict)
		if err != nil || !ok {
			return false, err
		}
		return v.Truthy(), nil
	case NodeCompare:
		l, lok, err := p.resolve(n.Left, ctx, strict)
		if err != nil {
			return false, err
		}
		r, rok, err := p.resolve(n.Right, ctx, strict)
		if err != nil {
			return false, err
		}
		eq := lok && rok && l.Equal(r)
		return eq != n.Negate, nil
	case NodeAnd:
		l, err := p.eval(n.Left, ctx, strict)
		if err != nil || !l {
			return false, err
		}
		return p.eval(n.Right, ctx, strict)
	case NodeOr:
		l, err := p.eval(n.Left, ctx, strict)
		if err != nil || l {
			return l, err
		}
		return p.eval(n.Right, ctx, strict)
	case NodeNot:
		v, err := p.eval(n.Left, ctx, strict)
		if err != nil {
			return false, err
		}
		return !v, nil
	default:
		return false, syntaxError(p.src, 0, "unknown node kind %d", n.Kind)
	}
}

// resolve returns the value of a comparison operand. A negation always
// yields a boolean.
func (p *Program) resolve(n *Node, ctx answers.Lookup, strict bool) (answers.Value, bool, error) {
	switch n.Kind {
	case NodeLiteral:
		return n.Value, true, nil
	case NodeNot:
		v, err := p.eval(n, ctx, strict)
		if err != nil {
			return answers.Value{}, false, err
		}
		return answers.Bool(v), true, nil
	}
	var (
		v  answers.Value
		ok bool
	)
	if ctx != nil {
		v, ok = ctx.Lookup(n.Name)
	}
	if !ok && strict {
		return answers.Value{}, false, unknownKeyError(p.src, n.Name)
	}
	return v, ok, nil
}

package expr

import "github.com/skelgen-labs/skelgen/internal/answers"

type parser struct {
	src  string
	toks []token
	pos  int
}

func parse(src string) (*Node, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	if p.peek().kind == tokEOF {
		return nil, syntaxError(src, 0, "empty expression")
	}
	n, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, syntaxError(src, t.pos, "unexpected %s", t.kind)
	}
	return n, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) parseOr() (*Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Node{Kind: NodeOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (*Node, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		p.next()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &Node{Kind: NodeAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseComparison() (*Node, error) {
	start := p.peek()
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	op := p.peek()
	if op.kind != tokEq && op.kind != tokNeq {
		if !hasIdent(left) {
			return nil, syntaxError(p.src, start.pos, "bare literal is not a predicate")
		}
		return left, nil
	}
	p.next()
	right, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if !isComparable(left) || !isComparable(right) {
		return nil, syntaxError(p.src, op.pos, "comparison operands must be identifiers or literals")
	}
	if !hasIdent(left) && !hasIdent(right) {
		return nil, syntaxError(p.src, op.pos, "comparison between two literals")
	}
	return &Node{Kind: NodeCompare, Negate: op.kind == tokNeq, Left: left, Right: right}, nil
}

// parseUnary binds "!" to the operand that follows it, so "!a === b"
// compares the negation of a with b.
func (p *parser) parseUnary() (*Node, error) {
	if p.peek().kind == tokNot {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Node{Kind: NodeNot, Left: operand}, nil
	}
	return p.parseOperand()
}

// hasIdent reports whether n references at least one key.
func hasIdent(n *Node) bool {
	if n == nil {
		return false
	}
	return n.Kind == NodeIdent || hasIdent(n.Left) || hasIdent(n.Right)
}

func isComparable(n *Node) bool {
	return n.Kind == NodeLiteral || n.Kind == NodeIdent || n.Kind == NodeNot
}

func (p *parser) parseOperand() (*Node, error) {
	t := p.next()
	switch t.kind {
	case tokIdent:
		return &Node{Kind: NodeIdent, Name: t.text}, nil
	case tokString:
		return &Node{Kind: NodeLiteral, Value: answers.String(t.text)}, nil
	case tokTrue:
		return &Node{Kind: NodeLiteral, Value: answers.Bool(true)}, nil
	case tokFalse:
		return &Node{Kind: NodeLiteral, Value: answers.Bool(false)}, nil
	case tokLParen:
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, syntaxError(p.src, closing.pos, "expected ')' but found %s", closing.kind)
		}
		return inner, nil
	default:
		return nil, syntaxError(p.src, t.pos, "unexpected %s", t.kind)
	}
}

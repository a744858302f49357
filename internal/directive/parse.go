package directive

import (
	"fmt"
	"strings"

	"github.com/skelgen-labs/skelgen/internal/expr"
)

type nodeKind int

const (
	nodeText nodeKind = iota
	nodeInterp
	nodeBlock
)

type node struct {
	kind nodeKind
	seg  segment

	// block fields
	opener string // name the closing marker must repeat
	cond   *expr.Program
	negate bool
	then   []*node
	els    []*node
	inElse bool
}

// Template is a parsed template file.
type Template struct {
	path    string
	src     []byte
	root    []*node
	markers int
}

// Path returns the template path used in error messages.
func (t *Template) Path() string { return t.path }

// Markers returns the number of directive markers found in the file.
func (t *Template) Markers() int { return t.markers }

// Parse scans src and checks that every block is balanced and every
// directive is known. Errors are *TemplateError values.
func Parse(path string, src []byte) (*Template, error) {
	segs, badPos, ok := scan(src)
	if !ok {
		return nil, &TemplateError{Path: path, Line: lineAt(src, badPos), Msg: "unterminated marker"}
	}
	applyStandalone(src, segs)

	t := &Template{path: path, src: src}
	var stack []*node
	appendNode := func(n *node) {
		if len(stack) == 0 {
			t.root = append(t.root, n)
			return
		}
		top := stack[len(stack)-1]
		if top.inElse {
			top.els = append(top.els, n)
		} else {
			top.then = append(top.then, n)
		}
	}
	fail := func(s segment, err error, format string, args ...any) error {
		return &TemplateError{Path: path, Line: s.line, Msg: fmt.Sprintf(format, args...), Err: err}
	}

	for _, s := range segs {
		if s.kind != tagText {
			t.markers++
		}
		switch s.kind {
		case tagText, tagEscaped, tagComment:
			appendNode(&node{kind: nodeText, seg: s})

		case tagInterp, tagInterpRaw:
			appendNode(&node{kind: nodeInterp, seg: s})

		case tagOpen, tagInverse:
			n, err := openBlock(s)
			if err != nil {
				return nil, fail(s, err, "%s", blockMsg(s))
			}
			appendNode(n)
			stack = append(stack, n)

		case tagElse:
			if len(stack) == 0 {
				return nil, fail(s, nil, "{{else}} outside of a block")
			}
			top := stack[len(stack)-1]
			if top.inElse {
				return nil, fail(s, nil, "second {{else}} in block {{#%s}} opened on line %d", top.opener, top.seg.line)
			}
			top.inElse = true

		case tagClose:
			if len(stack) == 0 {
				return nil, fail(s, nil, "{{/%s}} closes nothing", s.name)
			}
			top := stack[len(stack)-1]
			if s.name != top.opener {
				return nil, fail(s, nil, "{{/%s}} does not match {{#%s}} opened on line %d", s.name, top.opener, top.seg.line)
			}
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return nil, fail(top.seg, nil, "block {{#%s}} is never closed", top.opener)
	}
	return t, nil
}

// openBlock compiles the condition of an opening marker.
func openBlock(s segment) (*node, error) {
	n := &node{kind: nodeBlock, seg: s, opener: s.name}

	if s.kind == tagInverse {
		if s.args != "" || !expr.IsIdentifier(s.name) {
			return nil, fmt.Errorf("inverted section needs a single key")
		}
		n.cond = expr.MustCompile(s.name)
		n.negate = true
		return n, nil
	}

	var err error
	switch s.name {
	case "if", "unless":
		if s.args == "" {
			return nil, fmt.Errorf("{{#%s}} needs a predicate", s.name)
		}
		n.cond, err = expr.Compile(s.args)
		n.negate = s.name == "unless"
	case "if_or":
		fields := strings.Fields(s.args)
		if len(fields) != 2 {
			return nil, fmt.Errorf("{{#if_or}} takes exactly two arguments")
		}
		n.cond, err = expr.Compile(fields[0] + " || " + fields[1])
	default:
		if s.args != "" {
			return nil, fmt.Errorf("unknown block helper %q", s.name)
		}
		if !expr.IsIdentifier(s.name) {
			return nil, fmt.Errorf("invalid section name %q", s.name)
		}
		n.cond = expr.MustCompile(s.name)
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

func blockMsg(s segment) string {
	lead := "#"
	if s.kind == tagInverse {
		lead = "^"
	}
	if s.args != "" {
		return fmt.Sprintf("in {{%s%s %s}}", lead, s.name, s.args)
	}
	return fmt.Sprintf("in {{%s%s}}", lead, s.name)
}

func lineAt(src []byte, pos int) int {
	return strings.Count(string(src[:pos]), "\n") + 1
}

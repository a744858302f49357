package directive

import (
	"bytes"

	"github.com/skelgen-labs/skelgen/internal/answers"
	"github.com/skelgen-labs/skelgen/internal/expr"
)

// Render resolves the template against ctx. Helper values take part in
// interpolation only; block conditions read answers alone. When no marker
// changes the output, the original source slice is returned.
func (t *Template) Render(ctx answers.Lookup, helpers map[string]string) []byte {
	r := renderer{src: t.src, ctx: ctx, helpers: helpers}
	var buf bytes.Buffer
	buf.Grow(len(t.src))
	r.nodes(&buf, t.root)
	if !r.changed {
		return t.src
	}
	return buf.Bytes()
}

type renderer struct {
	src     []byte
	ctx     answers.Lookup
	helpers map[string]string
	changed bool
}

func (r *renderer) nodes(buf *bytes.Buffer, list []*node) {
	for _, n := range list {
		switch n.kind {
		case nodeText:
			r.text(buf, n.seg)
		case nodeInterp:
			r.interp(buf, n.seg)
		case nodeBlock:
			r.changed = true
			keep := n.cond.Eval(r.ctx) != n.negate
			if keep {
				r.nodes(buf, n.then)
			} else {
				r.nodes(buf, n.els)
			}
		}
	}
}

func (r *renderer) text(buf *bytes.Buffer, s segment) {
	switch s.kind {
	case tagEscaped:
		r.changed = true
		buf.WriteString("{{")
	case tagComment:
		r.changed = true
	default:
		if s.end > s.start {
			buf.Write(r.src[s.start:s.end])
		}
	}
}

func (r *renderer) interp(buf *bytes.Buffer, s segment) {
	if expr.IsIdentifier(s.name) {
		if v, ok := r.ctx.Lookup(s.name); ok {
			r.changed = true
			buf.WriteString(v.String())
			return
		}
		if v, ok := r.helpers[s.name]; ok {
			r.changed = true
			buf.WriteString(v)
			return
		}
	}
	buf.Write(r.src[s.start:s.end])
}

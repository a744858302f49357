package directive

import (
	"bytes"
	"strings"
)

type tagKind int

const (
	tagText        tagKind = iota
	tagOpen                // {{#name args}}
	tagInverse             // {{^name}}
	tagClose               // {{/name}}
	tagElse                // {{else}} or {{^}}
	tagComment             // {{! ... }}
	tagInterp              // {{name}}
	tagInterpRaw           // {{{name}}}
	tagEscaped             // \{{
)

// segment is a span of the source: literal text or one marker.
type segment struct {
	kind  tagKind
	start int // byte offsets into the source
	end   int
	line  int

	name string // block or interpolation name
	args string // block arguments
}

// standalone reports whether the marker kind is removed together with its
// line when nothing else shares the line.
func (k tagKind) standalone() bool {
	switch k {
	case tagOpen, tagInverse, tagClose, tagElse, tagComment:
		return true
	}
	return false
}

// scan splits src into segments. ok is false when an opening marker is
// never terminated; pos then holds its offset.
func scan(src []byte) (segs []segment, badPos int, ok bool) {
	line := 1
	textStart := 0
	i := 0

	flush := func(end int) {
		if end > textStart {
			segs = append(segs, segment{kind: tagText, start: textStart, end: end, line: line})
			line += bytes.Count(src[textStart:end], []byte{'\n'})
		}
	}

	for i < len(src) {
		j := bytes.Index(src[i:], []byte("{{"))
		if j < 0 {
			break
		}
		at := i + j

		if at > 0 && src[at-1] == '\\' {
			flush(at - 1)
			segs = append(segs, segment{kind: tagEscaped, start: at - 1, end: at + 2, line: line})
			textStart = at + 2
			i = at + 2
			continue
		}

		seg, next, found := readTag(src, at)
		if !found {
			if isBlockLead(src, at) {
				flush(at)
				return segs, at, false
			}
			i = at + 2
			continue
		}

		flush(at)
		seg.line = line
		line += bytes.Count(src[at:next], []byte{'\n'})
		segs = append(segs, seg)
		textStart = next
		i = next
	}
	flush(len(src))
	return segs, 0, true
}

func isBlockLead(src []byte, at int) bool {
	if at+2 >= len(src) {
		return false
	}
	switch src[at+2] {
	case '#', '^', '/':
		return true
	}
	return false
}

// readTag parses the marker starting at src[at] ("{{"). It returns the
// segment and the offset just past the marker.
func readTag(src []byte, at int) (segment, int, bool) {
	if at+2 < len(src) && src[at+2] == '{' {
		end := bytes.Index(src[at+3:], []byte("}}}"))
		if end < 0 {
			return segment{}, 0, false
		}
		body := strings.TrimSpace(string(src[at+3 : at+3+end]))
		next := at + 3 + end + 3
		return segment{kind: tagInterpRaw, start: at, end: next, name: body}, next, true
	}

	end := bytes.Index(src[at+2:], []byte("}}"))
	if end < 0 {
		return segment{}, 0, false
	}
	body := string(src[at+2 : at+2+end])
	next := at + 2 + end + 2
	seg := segment{start: at, end: next}

	trimmed := strings.TrimSpace(body)
	switch {
	case strings.HasPrefix(body, "!"):
		seg.kind = tagComment
	case strings.HasPrefix(trimmed, "#"):
		seg.kind = tagOpen
		seg.name, seg.args = splitHead(trimmed[1:])
	case trimmed == "^":
		seg.kind = tagElse
	case strings.HasPrefix(trimmed, "^"):
		seg.kind = tagInverse
		seg.name, seg.args = splitHead(trimmed[1:])
	case strings.HasPrefix(trimmed, "/"):
		seg.kind = tagClose
		seg.name, seg.args = splitHead(trimmed[1:])
	case trimmed == "else":
		seg.kind = tagElse
	default:
		seg.kind = tagInterp
		seg.name = trimmed
	}
	return seg, next, true
}

func splitHead(s string) (name, args string) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " \t\r\n"); i >= 0 {
		return s[:i], strings.TrimSpace(s[i+1:])
	}
	return s, ""
}

// applyStandalone widens each standalone marker to cover its whole line
// and trims the neighbouring text segments to match.
func applyStandalone(src []byte, segs []segment) {
	for i := range segs {
		s := &segs[i]
		if !s.kind.standalone() {
			continue
		}

		lineStart := s.start
		for lineStart > 0 && isBlank(src[lineStart-1]) {
			lineStart--
		}
		if lineStart > 0 && src[lineStart-1] != '\n' {
			continue
		}

		lineEnd := s.end
		for lineEnd < len(src) && isBlank(src[lineEnd]) {
			lineEnd++
		}
		switch {
		case lineEnd == len(src):
		case src[lineEnd] == '\n':
			lineEnd++
		case src[lineEnd] == '\r' && lineEnd+1 < len(src) && src[lineEnd+1] == '\n':
			lineEnd += 2
		default:
			continue
		}

		if i > 0 && segs[i-1].kind == tagText && segs[i-1].end > lineStart {
			segs[i-1].end = lineStart
		}
		if i+1 < len(segs) && segs[i+1].kind == tagText && segs[i+1].start < lineEnd {
			segs[i+1].start = lineEnd
		}
		s.start, s.end = lineStart, lineEnd
	}
}

func isBlank(c byte) bool { return c == ' ' || c == '\t' }

package expr

import "strings"

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokTrue
	tokFalse
	tokEq
	tokNeq
	tokAnd
	tokOr
	tokNot
	tokLParen
	tokRParen
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "identifier"
	case tokString:
		return "string"
	case tokTrue, tokFalse:
		return "boolean"
	case tokEq:
		return "'==='"
	case tokNeq:
		return "'!=='"
	case tokAnd:
		return "'&&'"
	case tokOr:
		return "'||'"
	case tokNot:
		return "'!'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	default:
		return "token"
	}
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9') || c == '.' || c == '-'
}

// tokenize splits src into tokens. It rejects any character the grammar
// does not define.
func tokenize(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case c == '&':
			if !strings.HasPrefix(src[i:], "&&") {
				return nil, syntaxError(src, i, "unexpected '&' (use '&&')")
			}
			toks = append(toks, token{tokAnd, "&&", i})
			i += 2
		case c == '|':
			if !strings.HasPrefix(src[i:], "||") {
				return nil, syntaxError(src, i, "unexpected '|' (use '||')")
			}
			toks = append(toks, token{tokOr, "||", i})
			i += 2
		case c == '=':
			switch {
			case strings.HasPrefix(src[i:], "==="):
				toks = append(toks, token{tokEq, "===", i})
				i += 3
			case strings.HasPrefix(src[i:], "=="):
				toks = append(toks, token{tokEq, "==", i})
				i += 2
			default:
				return nil, syntaxError(src, i, "assignment is not supported")
			}
		case c == '!':
			switch {
			case strings.HasPrefix(src[i:], "!=="):
				toks = append(toks, token{tokNeq, "!==", i})
				i += 3
			case strings.HasPrefix(src[i:], "!="):
				toks = append(toks, token{tokNeq, "!=", i})
				i += 2
			default:
				toks = append(toks, token{tokNot, "!", i})
				i++
			}
		case c == '"' || c == '\'':
			s, next, err := lexString(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{tokString, s, i})
			i = next
		case isIdentStart(c):
			start := i
			for i < len(src) && isIdentPart(src[i]) {
				i++
			}
			word := src[start:i]
			switch word {
			case "true":
				toks = append(toks, token{tokTrue, word, start})
			case "false":
				toks = append(toks, token{tokFalse, word, start})
			default:
				toks = append(toks, token{tokIdent, word, start})
			}
		default:
			return nil, syntaxError(src, i, "unexpected character %q", c)
		}
	}
	toks = append(toks, token{tokEOF, "", len(src)})
	return toks, nil
}

// lexString reads a quoted literal starting at src[start]. Backslash escapes
// the next byte.
func lexString(src string, start int) (string, int, error) {
	quote := src[start]
	var b strings.Builder
	i := start + 1
	for i < len(src) {
		c := src[i]
		switch c {
		case '\\':
			if i+1 >= len(src) {
				return "", 0, syntaxError(src, i, "unterminated escape")
			}
			b.WriteByte(src[i+1])
			i += 2
		case quote:
			return b.String(), i + 1, nil
		default:
			b.WriteByte(c)
			i++
		}
	}
	return "", 0, syntaxError(src, start, "unterminated string")
}

// IsIdentifier reports whether s is a single well-formed answer key.
func IsIdentifier(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentPart(s[i]) {
			return false
		}
	}
	return s != "true" && s != "false"
}

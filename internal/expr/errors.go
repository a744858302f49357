package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidExpression is returned for predicates that use syntax outside
	// the grammar.
	ErrInvalidExpression = errors.New("invalid expression")

	// ErrUnknownKey is returned by strict evaluation when a predicate
	// references a key absent from the context.
	ErrUnknownKey = errors.New("unknown key")
)

func syntaxError(src string, pos int, format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d in %q", ErrInvalidExpression, fmt.Sprintf(format, args...), pos, src)
}

func unknownKeyError(src, key string) error {
	return fmt.Errorf("%w %q in %q", ErrUnknownKey, key, src)
}

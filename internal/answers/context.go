package answers

import (
	"maps"
	"slices"
)

// Lookup is the read-only view predicates are evaluated against.
type Lookup interface {
	Lookup(key string) (Value, bool)
}

// Context is a frozen set of answers. It is never modified after Freeze and
// may be read concurrently.
type Context struct {
	values map[string]Value
}

// Lookup returns the value stored under key.
func (c *Context) Lookup(key string) (Value, bool) {
	if c == nil {
		return Value{}, false
	}
	v, ok := c.values[key]
	return v, ok
}

// Has reports whether key is present.
func (c *Context) Has(key string) bool {
	_, ok := c.Lookup(key)
	return ok
}

// Get returns the value under key, or the zero Value when absent.
func (c *Context) Get(key string) Value {
	v, _ := c.Lookup(key)
	return v
}

// Truthy reports whether key is present and truthy.
func (c *Context) Truthy(key string) bool {
	v, ok := c.Lookup(key)
	return ok && v.Truthy()
}

// Len returns the number of keys.
func (c *Context) Len() int {
	if c == nil {
		return 0
	}
	return len(c.values)
}

// Keys returns all keys in sorted order.
func (c *Context) Keys() []string {
	if c == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(c.values))
}

// Map returns the answers as plain Go values, suitable for encoding.
func (c *Context) Map() map[string]any {
	out := make(map[string]any, c.Len())
	if c == nil {
		return out
	}
	for k, v := range c.values {
		out[k] = v.Interface()
	}
	return out
}

// Builder accumulates answers during collection. It is not safe for
// concurrent use.
type Builder struct {
	values map[string]Value
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{values: make(map[string]Value)}
}

// From returns a Builder seeded with every value of c.
func From(c *Context) *Builder {
	b := NewBuilder()
	if c != nil {
		maps.Copy(b.values, c.values)
	}
	return b
}

// Set stores v under key, replacing any previous value.
func (b *Builder) Set(key string, v Value) *Builder {
	b.values[key] = v
	return b
}

// SetIfAbsent stores v under key only if key has no value yet. It reports
// whether the value was stored.
func (b *Builder) SetIfAbsent(key string, v Value) bool {
	if _, ok := b.values[key]; ok {
		return false
	}
	b.values[key] = v
	return true
}

// Lookup implements Lookup over the values collected so far.
func (b *Builder) Lookup(key string) (Value, bool) {
	v, ok := b.values[key]
	return v, ok
}

// Freeze returns an immutable Context holding a copy of the collected values.
func (b *Builder) Freeze() *Context {
	return &Context{values: maps.Clone(b.values)}
}

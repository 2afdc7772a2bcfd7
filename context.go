// -*- tab-width:2 -*-

package prob

import (
	"fmt"

	count "github.com/jayalane/go-counter"
)

// Context is the shared cache for one calculation tree, mapping
// expression names to already-computed values. A name maps to the same
// value for the lifetime of the context, which is what makes repeated
// occurrences of one distribution inside an expression reuse the same
// samples. Not safe for concurrent use.
type Context struct {
	values map[string]Value
}

// NewContext returns a fresh, empty Context.
func NewContext() *Context {
	return &Context{values: make(map[string]Value)}
}

// Has checks whether the Context holds a value under name.
func (c *Context) Has(name string) bool {
	_, ok := c.values[name]

	return ok
}

// Get returns the value cached under name.
func (c *Context) Get(name string) (Value, error) {
	v, ok := c.values[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNameNotFound, name)
	}

	count.Incr("context_cache_hit")

	return v, nil
}

// Set caches a value under name.
func (c *Context) Set(name string, v Value) {
	c.values[name] = v
}

// Len returns the number of cached values.
func (c *Context) Len() int {
	return len(c.values)
}

package lint

import "sort"

// Context holds the names considered defined by cells already processed in
// the current notebook pass. It only grows during a pass; the engine creates
// a fresh Context at pass start and is the sole owner of the instance.
type Context struct {
	defined map[string]struct{}
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{defined: make(map[string]struct{})}
}

// Has reports whether name is already defined.
func (c *Context) Has(name string) bool {
	if c == nil {
		return false
	}
	_, ok := c.defined[name]
	return ok
}

// Add marks a single name as defined.
func (c *Context) Add(name string) {
	c.defined[name] = struct{}{}
}

// Merge marks every name in names as defined.
func (c *Context) Merge(names map[string]struct{}) {
	for n := range names {
		c.defined[n] = struct{}{}
	}
}

// Len returns the number of defined names.
func (c *Context) Len() int {
	if c == nil {
		return 0
	}
	return len(c.defined)
}

// Names returns the defined names in sorted order.
func (c *Context) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.defined))
	for n := range c.defined {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

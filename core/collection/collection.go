package collection

import "imgdiff/core/resource"

// Collection maps keynames to handles in insertion order.
type Collection struct {
	root    string
	keys    []string
	handles map[string]*resource.Handle
}

// New creates an empty collection for root.
func New(root string) *Collection {
	return &Collection{root: root, handles: make(map[string]*resource.Handle)}
}

// Root returns the locator the collection was hydrated from.
func (c *Collection) Root() string { return c.root }

// Set inserts h under its keyname. Replacing an existing key keeps the
// original position.
func (c *Collection) Set(h *resource.Handle) {
	key := h.Keyname()
	if _, exists := c.handles[key]; !exists {
		c.keys = append(c.keys, key)
	}
	c.handles[key] = h
}

// Get returns the handle stored under key.
func (c *Collection) Get(key string) (*resource.Handle, bool) {
	h, ok := c.handles[key]
	return h, ok
}

// Has reports whether key is present.
func (c *Collection) Has(key string) bool {
	_, ok := c.handles[key]
	return ok
}

// Len returns the number of keys.
func (c *Collection) Len() int { return len(c.keys) }

// Keys returns the keynames in insertion order.
func (c *Collection) Keys() []string {
	keys := make([]string, len(c.keys))
	copy(keys, c.keys)
	return keys
}

// Handles returns the handles in insertion order.
func (c *Collection) Handles() []*resource.Handle {
	handles := make([]*resource.Handle, 0, len(c.keys))
	for _, key := range c.keys {
		handles = append(handles, c.handles[key])
	}
	return handles
}

package object

import "slices"

// Collection is an ordered, optionally capacity-bounded list of shapes.
//
// Removal during a pass is mark-then-compact: callers flag shapes with
// MarkDestroyed while iterating forward and call Compact once the pass is done,
// so indices stay stable for the whole pass.
type Collection struct {
	items []Shape
	limit int
}

// NewCollection creates a collection holding at most limit shapes. A limit <= 0 means unbounded.
func NewCollection(limit int) *Collection {
	return &Collection{limit: limit}
}

// Add appends a shape. It returns false and drops the shape when the collection is full.
func (c *Collection) Add(s Shape) bool {
	if c.limit > 0 && len(c.items) >= c.limit {
		return false
	}
	c.items = append(c.items, s)
	return true
}

// Len returns the number of shapes, including ones flagged but not yet compacted.
func (c *Collection) Len() int {
	return len(c.items)
}

// Live returns the number of shapes not flagged for removal.
func (c *Collection) Live() int {
	n := 0
	for i := range c.items {
		if !c.items[i].destroyed {
			n++
		}
	}
	return n
}

// At returns a pointer to the i-th shape. The pointer is valid until the next Add, RemoveAt or Compact.
func (c *Collection) At(i int) *Shape {
	return &c.items[i]
}

// Find returns the shape with the given ID, or nil.
func (c *Collection) Find(id uint64) *Shape {
	for i := range c.items {
		if c.items[i].ID == id {
			return &c.items[i]
		}
	}
	return nil
}

// All returns the backing slice. Callers must not keep it across mutations.
func (c *Collection) All() []Shape {
	return c.items
}

// RemoveAt removes exactly the i-th shape, shifting later shapes down by one.
func (c *Collection) RemoveAt(i int) {
	if i < 0 || i >= len(c.items) {
		return
	}
	c.items = slices.Delete(c.items, i, i+1)
}

// Compact drops every flagged shape in one pass, preserving order.
// removed, if non-nil, is called for each dropped shape. Returns the number dropped.
func (c *Collection) Compact(removed func(Shape)) int {
	kept := c.items[:0] // reuse backing array
	dropped := 0
	for _, s := range c.items {
		if s.destroyed {
			dropped++
			if removed != nil {
				removed(s)
			}
			continue
		}
		kept = append(kept, s)
	}
	clear(c.items[len(kept):])
	c.items = kept
	return dropped
}

// Reset empties the collection, keeping its capacity.
func (c *Collection) Reset() {
	clear(c.items)
	c.items = c.items[:0]
}

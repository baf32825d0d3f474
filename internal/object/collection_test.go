package object

import "testing"

func ids(c *Collection) []uint64 {
	out := make([]uint64, 0, c.Len())
	for _, s := range c.All() {
		out = append(out, s.ID)
	}
	return out
}

func equalIDs(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCollectionRemoveAt(t *testing.T) {
	c := NewCollection(0)
	for id := uint64(1); id <= 4; id++ {
		c.Add(Shape{ID: id})
	}

	c.RemoveAt(1)
	if got := ids(c); !equalIDs(got, []uint64{1, 3, 4}) {
		t.Fatalf("after RemoveAt(1) = %v, want [1 3 4]", got)
	}

	c.RemoveAt(10)
	c.RemoveAt(-1)
	if c.Len() != 3 {
		t.Fatalf("out of range RemoveAt changed length to %d", c.Len())
	}
}

func TestCollectionCompactKeepsOrder(t *testing.T) {
	c := NewCollection(0)
	for id := uint64(1); id <= 5; id++ {
		c.Add(Shape{ID: id})
	}
	// Flag adjacent shapes while walking forward; nothing is skipped.
	for i := 0; i < c.Len(); i++ {
		if s := c.At(i); s.ID == 2 || s.ID == 3 {
			s.MarkDestroyed()
		}
	}
	if c.Live() != 3 {
		t.Fatalf("Live = %d, want 3", c.Live())
	}

	var removed []uint64
	n := c.Compact(func(s Shape) { removed = append(removed, s.ID) })
	if n != 2 || !equalIDs(removed, []uint64{2, 3}) {
		t.Fatalf("Compact removed %d %v, want 2 [2 3]", n, removed)
	}
	if got := ids(c); !equalIDs(got, []uint64{1, 4, 5}) {
		t.Fatalf("after Compact = %v, want [1 4 5]", got)
	}
}

func TestCollectionLimit(t *testing.T) {
	c := NewCollection(2)
	if !c.Add(Shape{ID: 1}) || !c.Add(Shape{ID: 2}) {
		t.Fatal("Add rejected below the limit")
	}
	if c.Add(Shape{ID: 3}) {
		t.Fatal("Add accepted above the limit")
	}
	if c.Find(2) == nil || c.Find(3) != nil {
		t.Fatal("Find returned the wrong shapes")
	}

	c.Reset()
	if c.Len() != 0 || !c.Add(Shape{ID: 4}) {
		t.Fatal("Reset did not empty the collection")
	}
}

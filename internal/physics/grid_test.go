package physics

import (
	"slices"
	"testing"
)

func TestSpatialGridNearbySorted(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	g.Insert(55, 55, 3)
	g.Insert(45, 45, 1)
	g.Insert(50, 50, 2)
	g.Insert(95, 95, 4)

	got := g.Nearby(50, 50)
	want := []int{1, 2, 3}
	if !slices.Equal(got, want) {
		t.Fatalf("Nearby = %v, want %v", got, want)
	}
}

func TestSpatialGridClampsOutside(t *testing.T) {
	g := NewSpatialGrid(100, 100, 36)
	// An enemy spawning just beyond the left edge must still see a projectile near that edge.
	g.Insert(20, 50, 7)

	got := g.Nearby(-30, 50)
	if !slices.Contains(got, 7) {
		t.Fatalf("Nearby(-30, 50) = %v, want it to contain 7", got)
	}
}

func TestSpatialGridClear(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	g.Insert(10, 10, 0)
	g.Clear()
	if got := g.Nearby(10, 10); len(got) != 0 {
		t.Fatalf("Nearby after Clear = %v, want empty", got)
	}
}

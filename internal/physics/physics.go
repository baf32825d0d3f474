// Package physics provides collision detection and distance utilities.
package physics

import "math"

// CollisionTolerance is how close two circle edges must come before they count as touching.
// A gap smaller than this is a hit, so circles collide slightly before tangency.
const CollisionTolerance = 1.0

// Circle is anything with a centre and a radius.
type Circle interface {
	Center() (x, y float64)
	Size() float64
}

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// CirclesTouch reports whether the gap between two circle edges is below CollisionTolerance.
func CirclesTouch(x1, y1, r1, x2, y2, r2 float64) bool {
	return Distance(x1, y1, x2, y2)-r1-r2 < CollisionTolerance
}

// Collide reports whether two circles touch. Symmetric in its arguments.
func Collide(a, b Circle) bool {
	ax, ay := a.Center()
	bx, by := b.Center()
	return CirclesTouch(ax, ay, a.Size(), bx, by, b.Size())
}

// OutOfBounds reports whether a circle lies entirely outside the w x h rectangle at the origin.
func OutOfBounds(x, y, r, w, h float64) bool {
	return x+r < 0 || x-r > w || y+r < 0 || y-r > h
}

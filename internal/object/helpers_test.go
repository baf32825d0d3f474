package object

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// scriptedRand replays a fixed sequence of values, then repeats the last one.
type scriptedRand struct {
	values []float64
	i      int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.values) == 0 {
		return 0
	}
	if r.i >= len(r.values) {
		return r.values[len(r.values)-1]
	}
	v := r.values[r.i]
	r.i++
	return v
}

type circleCall struct {
	x, y, r, alpha float64
	c              colorful.Color
}

// recordingSurface captures draw calls.
type recordingSurface struct {
	w, h    float64
	fades   []float64
	circles []circleCall
}

func (s *recordingSurface) Size() (float64, float64) { return s.w, s.h }
func (s *recordingSurface) Fade(a float64)            { s.fades = append(s.fades, a) }
func (s *recordingSurface) FillCircle(x, y, r float64, c colorful.Color, a float64) {
	s.circles = append(s.circles, circleCall{x: x, y: y, r: r, alpha: a, c: c})
}

// sliceSpawner collects spawned shapes, accepting at most max (0 = unlimited).
type sliceSpawner struct {
	shapes []Shape
	max    int
}

func (s *sliceSpawner) Spawn(sh Shape) bool {
	if s.max > 0 && len(s.shapes) >= s.max {
		return false
	}
	s.shapes = append(s.shapes, sh)
	return true
}

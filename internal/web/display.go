package web

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/circlestrike/internal/draw"
)

// Op kinds.
const (
	OpFade   = "f"
	OpCircle = "c"
)

// Op is one recorded drawing call. The browser replays ops in order on a 2D canvas.
type Op struct {
	Kind  string  `json:"k"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	R     float64 `json:"r,omitempty"`
	Color string  `json:"c,omitempty"`
	Alpha float64 `json:"a"`
}

// DisplayList is a Surface that records the frame instead of rasterizing it.
type DisplayList struct {
	width, height float64
	ops           []Op
}

var _ draw.Surface = (*DisplayList)(nil)

func NewDisplayList(width, height float64) *DisplayList {
	return &DisplayList{width: width, height: height}
}

func (d *DisplayList) Size() (float64, float64) {
	return d.width, d.height
}

func (d *DisplayList) Fade(alpha float64) {
	d.ops = append(d.ops, Op{Kind: OpFade, Alpha: round2(alpha)})
}

func (d *DisplayList) FillCircle(x, y, radius float64, c colorful.Color, alpha float64) {
	if alpha <= 0 || radius <= 0 {
		return
	}
	d.ops = append(d.ops, Op{
		Kind:  OpCircle,
		X:     round2(x),
		Y:     round2(y),
		R:     round2(radius),
		Color: c.Clamped().Hex(),
		Alpha: round2(alpha),
	})
}

// Ops returns the operations recorded since the last Reset.
func (d *DisplayList) Ops() []Op {
	return d.ops
}

// Reset starts a new frame, reusing the backing array.
func (d *DisplayList) Reset() {
	d.ops = d.ops[:0]
}

// round2 keeps the wire payload small.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

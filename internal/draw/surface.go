package draw

import colorful "github.com/lucasb-eyer/go-colorful"

// Surface is the 2D drawing target the simulation paints onto each tick.
// Coordinates are logical playfield units, not terminal cells or screen pixels.
type Surface interface {
	// Size returns the logical playfield dimensions.
	Size() (width, height float64)

	// Fade paints black over the whole surface at the given opacity.
	// Values below 1 leave a fading trail of the previous frames.
	Fade(alpha float64)

	// FillCircle draws a filled circle blended over the existing content at opacity alpha.
	FillCircle(x, y, radius float64, c colorful.Color, alpha float64)
}

// Black is the background colour every surface fades towards.
var Black = colorful.Color{R: 0, G: 0, B: 0}

// Discard is a Surface that draws nothing. Useful for headless simulation.
type Discard struct {
	Width, Height float64
}

func (d Discard) Size() (float64, float64) {
	return d.Width, d.Height
}

func (Discard) Fade(float64) {}

func (Discard) FillCircle(float64, float64, float64, colorful.Color, float64) {}

var _ Surface = Discard{}

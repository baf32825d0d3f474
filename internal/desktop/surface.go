package desktop

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/circlestrike/internal/draw"
)

// ImageSurface draws the simulation onto an ebiten image that is never cleared,
// so Fade leaves a trail of earlier frames.
type ImageSurface struct {
	img *ebiten.Image
}

var _ draw.Surface = (*ImageSurface)(nil)

func NewImageSurface(img *ebiten.Image) *ImageSurface {
	return &ImageSurface{img: img}
}

func (s *ImageSurface) Size() (float64, float64) {
	b := s.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s *ImageSurface) Fade(alpha float64) {
	w, h := s.Size()
	vector.DrawFilledRect(s.img, 0, 0, float32(w), float32(h), nrgba(draw.Black, alpha), false)
}

func (s *ImageSurface) FillCircle(x, y, radius float64, c colorful.Color, alpha float64) {
	if alpha <= 0 || radius <= 0 {
		return
	}
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(radius), nrgba(c, alpha), true)
}

// nrgba converts c to a non-premultiplied colour with the given opacity.
func nrgba(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(min(max(alpha, 0), 1)*255 + 0.5)}
}

package object

import colorful "github.com/lucasb-eyer/go-colorful"

const (
	// Friction is the per-tick velocity multiplier applied to particles.
	Friction = 0.99

	// AlphaDecay is how much opacity a particle loses per tick.
	AlphaDecay = 0.01

	// alphaEpsilon absorbs float drift so a fresh particle reaches exactly 0 after 1/AlphaDecay ticks.
	alphaEpsilon = 1e-9
)

// NewParticle creates a fully opaque particle.
func NewParticle(x, y, radius float64, c colorful.Color, v Vector) Shape {
	return Shape{
		Kind:     KindParticle,
		X:        x,
		Y:        y,
		Radius:   radius,
		Color:    c,
		Velocity: v,
		Alpha:    1,
	}
}

// Faded returns true once a particle is fully transparent and can be removed.
func (s *Shape) Faded() bool {
	return s.Alpha <= 0
}

// decay applies friction, moves the particle, then fades it.
func decay(s *Shape) {
	s.Velocity.X *= Friction
	s.Velocity.Y *= Friction
	s.X += s.Velocity.X
	s.Y += s.Velocity.Y

	s.Alpha -= AlphaDecay
	if s.Alpha < alphaEpsilon {
		s.Alpha = 0
	}
}

package object

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Enemy radius range: uniform in [EnemyMinRadius, EnemyMaxRadius).
const (
	EnemyMinRadius = 4.0
	EnemyMaxRadius = 30.0
)

// Enemy colours share saturation and lightness; only the hue is random.
const (
	enemySaturation = 0.5
	enemyLightness  = 0.5
)

// NewEnemy creates an enemy at (x, y) moving at unit speed towards (targetX, targetY).
func NewEnemy(x, y, radius float64, c colorful.Color, targetX, targetY float64) Shape {
	angle := math.Atan2(targetY-y, targetX-x)
	return Shape{
		Kind:   KindEnemy,
		X:      x,
		Y:      y,
		Radius: radius,
		Color:  c,
		Velocity: Vector{
			X: math.Cos(angle),
			Y: math.Sin(angle),
		},
		Alpha: 1,
	}
}

// NewEnemyAtEdge creates an enemy just outside a random edge of the w x h playfield,
// aimed at its centre.
func NewEnemyAtEdge(rng Rand, w, h float64) Shape {
	radius := rng.Float64()*(EnemyMaxRadius-EnemyMinRadius) + EnemyMinRadius

	var x, y float64
	if rng.Float64() < 0.5 {
		// Left or right edge
		if rng.Float64() < 0.5 {
			x = -radius
		} else {
			x = w + radius
		}
		y = rng.Float64() * h
	} else {
		// Top or bottom edge
		x = rng.Float64() * w
		if rng.Float64() < 0.5 {
			y = -radius
		} else {
			y = h + radius
		}
	}

	c := colorful.Hsl(rng.Float64()*360, enemySaturation, enemyLightness)
	return NewEnemy(x, y, radius, c, w/2, h/2)
}

package object

import "math"

// ProjectileSpeed is how far a projectile travels per tick.
const ProjectileSpeed = 4.0

// ProjectileRadius is the size of a projectile.
const ProjectileRadius = 5.0

// NewProjectile creates a projectile at (x, y) heading towards (targetX, targetY).
// A target equal to the origin fires along the positive x axis.
func NewProjectile(x, y, targetX, targetY float64) Shape {
	angle := math.Atan2(targetY-y, targetX-x)
	return Shape{
		Kind:   KindProjectile,
		X:      x,
		Y:      y,
		Radius: ProjectileRadius,
		Color:  White,
		Velocity: Vector{
			X: math.Cos(angle) * ProjectileSpeed,
			Y: math.Sin(angle) * ProjectileSpeed,
		},
		Alpha: 1,
	}
}

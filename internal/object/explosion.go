package object

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	particleMaxRadius = 2.0
	particleMaxSpeed  = 6.0
)

// ExplosionSize returns how many particles a hit on an enemy of the given radius produces.
func ExplosionSize(radius float64) int {
	if radius <= 0 {
		return 0
	}
	return int(math.Floor(2 * radius))
}

// SpawnExplosion bursts particles of colour c out of (x, y), sized by the struck enemy's radius.
// Each velocity axis is (U(-0.5,0.5) * U(0,6)), which biases speeds towards zero.
// Returns the number of particles the spawner accepted.
func SpawnExplosion(x, y, radius float64, c colorful.Color, rng Rand, spawner Spawner) int {
	if spawner == nil {
		return 0
	}

	count := ExplosionSize(radius)
	spawned := 0
	for i := 0; i < count; i++ {
		size := rng.Float64() * particleMaxRadius
		v := Vector{
			X: (rng.Float64() - 0.5) * (rng.Float64() * particleMaxSpeed),
			Y: (rng.Float64() - 0.5) * (rng.Float64() * particleMaxSpeed),
		}
		if !spawner.Spawn(NewParticle(x, y, size, c, v)) {
			break
		}
		spawned++
	}
	return spawned
}

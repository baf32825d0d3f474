// Package object defines the circular entities of the playfield and how they move, spawn and explode.
package object

import (
	"math/rand/v2"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/circlestrike/internal/draw"
	"github.com/tomz197/circlestrike/internal/physics"
)

// Kind discriminates the entity variants sharing the Shape record.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindProjectile
	KindEnemy
	KindParticle
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindProjectile:
		return "projectile"
	case KindEnemy:
		return "enemy"
	case KindParticle:
		return "particle"
	default:
		return "unknown"
	}
}

// Vector is a 2D velocity in playfield units per tick.
type Vector struct {
	X, Y float64
}

// Shape is a drawable circle. All entity kinds share this record and differ only in
// their defaults and in the update policy selected by Kind.
type Shape struct {
	ID       uint64
	Kind     Kind
	X, Y     float64        // Centre position
	Radius   float64        // Collision/draw radius
	Color    colorful.Color // Fill colour
	Velocity Vector         // Zero for static shapes
	Alpha    float64        // Opacity in [0,1]; only particles decay it

	destroyed bool
}

// White is the colour of the player and its projectiles.
var White = colorful.Color{R: 1, G: 1, B: 1}

// Rand is the random source entities draw from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// NewRand returns a seeded source. A zero seed picks a random one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Spawner accepts newly created shapes. It reports false when the shape was dropped.
type Spawner interface {
	Spawn(s Shape) bool
}

// updaters holds the per-kind update policy.
var updaters = [...]func(*Shape){
	KindPlayer:     integrate,
	KindProjectile: integrate,
	KindEnemy:      integrate,
	KindParticle:   decay,
}

// Center returns the shape's centre position (implements physics.Circle).
func (s *Shape) Center() (float64, float64) {
	return s.X, s.Y
}

// Size returns the shape's radius (implements physics.Circle).
func (s *Shape) Size() float64 {
	return s.Radius
}

// Draw paints the shape with its current opacity.
func (s *Shape) Draw(surf draw.Surface) {
	surf.FillCircle(s.X, s.Y, s.Radius, s.Color, s.Alpha)
}

// Update advances the shape by one tick using its kind's policy.
func (s *Shape) Update() {
	if int(s.Kind) < len(updaters) {
		updaters[s.Kind](s)
	}
}

// Step draws the shape from its pre-update state and then advances it.
func (s *Shape) Step(surf draw.Surface) {
	s.Draw(surf)
	s.Update()
}

// MarkDestroyed flags the shape for removal when its collection is next compacted.
func (s *Shape) MarkDestroyed() {
	s.destroyed = true
}

// IsDestroyed returns true if the shape is flagged for removal.
func (s *Shape) IsDestroyed() bool {
	return s.destroyed
}

// OutOfBounds returns true once the whole circle has left the w x h playfield.
func (s *Shape) OutOfBounds(w, h float64) bool {
	return physics.OutOfBounds(s.X, s.Y, s.Radius, w, h)
}

// integrate moves the shape by its velocity.
func integrate(s *Shape) {
	s.X += s.Velocity.X
	s.Y += s.Velocity.Y
}

var _ physics.Circle = (*Shape)(nil)

package object

import "testing"

func TestExplosionUsesEnemyRadiusAndColor(t *testing.T) {
	sink := &sliceSpawner{}
	enemy := NewEnemy(0, 0, 12.7, White, 1, 0)

	n := SpawnExplosion(5, 6, enemy.Radius, enemy.Color, NewRand(9), sink)
	if n != 25 || len(sink.shapes) != 25 {
		t.Fatalf("spawned %d particles, want floor(2*12.7) = 25", n)
	}
	for _, p := range sink.shapes {
		if p.Kind != KindParticle || p.X != 5 || p.Y != 6 || p.Alpha != 1 {
			t.Fatalf("bad particle %+v", p)
		}
		if p.Radius < 0 || p.Radius >= 2 {
			t.Fatalf("particle radius %v out of [0, 2)", p.Radius)
		}
		if p.Velocity.X < -3 || p.Velocity.X > 3 || p.Velocity.Y < -3 || p.Velocity.Y > 3 {
			t.Fatalf("particle velocity %+v out of range", p.Velocity)
		}
		if p.Color != enemy.Color {
			t.Fatalf("particle colour %v, want enemy colour", p.Color)
		}
	}
}

func TestExplosionStopsWhenSpawnerIsFull(t *testing.T) {
	sink := &sliceSpawner{max: 3}
	if n := SpawnExplosion(0, 0, 20, White, NewRand(1), sink); n != 3 {
		t.Fatalf("spawned %d, want 3", n)
	}
}

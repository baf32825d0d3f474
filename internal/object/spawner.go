package object

import "time"

// SpawnContext carries what the enemy spawner needs from the frame that drives it.
type SpawnContext struct {
	Width, Height float64 // Playfield size
	Count         int     // Enemies currently alive
	Rand          Rand
	Spawner       Spawner
}

// EnemySpawner keeps enemies arriving at a fixed period, up to a population cap.
// It has no clock of its own: the frame loop feeds it elapsed time.
type EnemySpawner struct {
	interval time.Duration
	limit    int
	elapsed  time.Duration
}

// NewEnemySpawner creates a spawner that attempts one spawn per interval while
// fewer than limit enemies are alive.
func NewEnemySpawner(interval time.Duration, limit int) *EnemySpawner {
	if interval <= 0 {
		interval = time.Second
	}
	if limit < 0 {
		limit = 0
	}
	return &EnemySpawner{
		interval: interval,
		limit:    limit,
	}
}

// Advance accumulates dt and makes one spawn attempt for every full interval elapsed.
// An attempt is skipped when the population is at the cap. Returns how many enemies spawned.
func (s *EnemySpawner) Advance(dt time.Duration, ctx SpawnContext) int {
	if dt > 0 {
		s.elapsed += dt
	}

	spawned := 0
	count := ctx.Count
	for s.elapsed >= s.interval {
		s.elapsed -= s.interval

		if count >= s.limit || ctx.Spawner == nil {
			continue
		}
		if ctx.Spawner.Spawn(NewEnemyAtEdge(ctx.Rand, ctx.Width, ctx.Height)) {
			count++
			spawned++
		}
	}
	return spawned
}

// Reset cancels any partially elapsed period.
func (s *EnemySpawner) Reset() {
	s.elapsed = 0
}

// Limit returns the population cap.
func (s *EnemySpawner) Limit() int {
	return s.limit
}

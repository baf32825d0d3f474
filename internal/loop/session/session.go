// Package session runs one player's game: the frame loop, its state machine and the
// entity collections it owns.
package session

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/circlestrike/internal/draw"
	"github.com/tomz197/circlestrike/internal/loop/config"
	"github.com/tomz197/circlestrike/internal/object"
	"github.com/tomz197/circlestrike/internal/physics"
	"github.com/tomz197/circlestrike/internal/score"
)

// collisionGridCellSize must be >= the largest projectile-enemy collision distance:
// max enemy radius + projectile radius + the collision tolerance.
const collisionGridCellSize = object.EnemyMaxRadius + object.ProjectileRadius + physics.CollisionTolerance

// Options configures a Session.
type Options struct {
	Width, Height float64        // Playfield size; defaults to the config view size
	Rand          object.Rand    // Random source; defaults to a randomly seeded one
	Score         *score.Tracker // Shared tracker; a new one is created when nil
	Logger        *log.Logger    // Defaults to a discarding logger
}

// Session owns the player, the three entity collections, the spawner and the score.
// It is not safe for concurrent use: Fire, Tick and the state transitions must be
// called from the goroutine that drives the frame loop.
type Session struct {
	state         State
	width, height float64

	player      object.Shape
	projectiles *object.Collection
	enemies     *object.Collection
	particles   *object.Collection

	spawner *object.EnemySpawner
	tweens  object.Tweens
	grid    *physics.SpatialGrid

	score  *score.Tracker
	rng    object.Rand
	logger *log.Logger

	nextID     uint64
	ticks      uint64
	gameOverFn []func(Result)
}

// New creates a session in the NotStarted state.
func New(opts Options) *Session {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = config.ViewWidth, config.ViewHeight
	}
	if opts.Rand == nil {
		opts.Rand = object.NewRand(0)
	}
	if opts.Score == nil {
		opts.Score = score.NewTracker()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	s := &Session{
		state:       StateNotStarted,
		width:       opts.Width,
		height:      opts.Height,
		projectiles: object.NewCollection(config.MaxProjectiles),
		enemies:     object.NewCollection(config.EnemyLimit),
		particles:   object.NewCollection(config.MaxParticles),
		spawner:     object.NewEnemySpawner(config.SpawnInterval, config.EnemyLimit),
		grid:        physics.NewSpatialGrid(opts.Width, opts.Height, collisionGridCellSize),
		score:       opts.Score,
		rng:         opts.Rand,
		logger:      opts.Logger,
	}
	s.player = s.newPlayer()
	return s
}

// OnGameOver registers fn to be called when a game ends.
func (s *Session) OnGameOver(fn func(Result)) {
	if fn != nil {
		s.gameOverFn = append(s.gameOverFn, fn)
	}
}

// Start begins the first game. It returns false unless the session has not started yet.
func (s *Session) Start() bool {
	if s.state != StateNotStarted {
		return false
	}
	s.begin()
	return true
}

// Restart begins a new game after a game over. It returns false in any other state.
func (s *Session) Restart() bool {
	if s.state != StateGameOver {
		return false
	}
	s.begin()
	return true
}

// begin is the Running-entry sequence shared by Start and Restart.
func (s *Session) begin() {
	s.projectiles.Reset()
	s.enemies.Reset()
	s.particles.Reset()
	s.tweens.Reset()
	s.spawner.Reset()
	s.score.Reset()
	s.player = s.newPlayer()
	s.ticks = 0
	s.state = StateRunning
	s.logger.Debug("game started", "width", s.width, "height", s.height)
}

// Stop ends the running game as if the player had been hit.
func (s *Session) Stop() {
	if s.state == StateRunning {
		s.gameOver()
	}
}

// Fire launches a projectile from the player towards (x, y).
// Returns false when the game is not running or the projectile cap is reached.
func (s *Session) Fire(x, y float64) bool {
	if s.state != StateRunning {
		return false
	}
	p := object.NewProjectile(s.player.X, s.player.Y, x, y)
	p.ID = s.allocID()
	return s.projectiles.Add(p)
}

// Tick runs one frame: fade, player, particles, projectiles, spawning, enemies.
// dt is the time since the previous tick; it drives the spawner and the shrink animation.
// Entity motion is per tick. Does nothing unless the game is running.
func (s *Session) Tick(dt time.Duration, surf draw.Surface) {
	if s.state != StateRunning {
		return
	}
	s.ticks++

	surf.Fade(config.OverlayAlpha)
	s.player.Step(surf)

	s.stepParticles(surf)
	s.stepProjectiles(surf)

	s.spawner.Advance(dt, object.SpawnContext{
		Width:   s.width,
		Height:  s.height,
		Count:   s.enemies.Len(),
		Rand:    s.rng,
		Spawner: enemySpawner{s},
	})
	s.tweens.Advance(dt, s.applyRadius)

	s.stepEnemies(surf)
}

// stepParticles removes faded particles and advances the rest.
func (s *Session) stepParticles(surf draw.Surface) {
	for i := 0; i < s.particles.Len(); i++ {
		p := s.particles.At(i)
		if p.Faded() {
			p.MarkDestroyed()
			continue
		}
		p.Step(surf)
	}
	s.particles.Compact(nil)
}

// stepProjectiles advances projectiles and drops the ones that left the playfield.
func (s *Session) stepProjectiles(surf draw.Surface) {
	for i := 0; i < s.projectiles.Len(); i++ {
		p := s.projectiles.At(i)
		p.Step(surf)
		if p.OutOfBounds(s.width, s.height) {
			p.MarkDestroyed()
		}
	}
	s.projectiles.Compact(nil)
}

// stepEnemies advances every enemy and resolves its collisions with the player,
// the playfield bounds and the projectiles, in that order. An enemy touching the
// player ends the game and no later enemy is processed.
func (s *Session) stepEnemies(surf draw.Surface) {
	s.grid.Clear()
	for i, p := range s.projectiles.All() {
		s.grid.Insert(p.X, p.Y, i)
	}

	over := false
	for i := 0; i < s.enemies.Len(); i++ {
		e := s.enemies.At(i)
		e.Step(surf)

		if physics.Collide(&s.player, e) {
			over = true
			break
		}

		if e.OutOfBounds(s.width, s.height) {
			e.MarkDestroyed()
			continue
		}

		for _, j := range s.grid.Nearby(e.X, e.Y) {
			p := s.projectiles.At(j)
			if p.IsDestroyed() || !physics.Collide(p, e) {
				continue
			}
			if s.hit(e, p) {
				break
			}
		}
	}

	s.projectiles.Compact(nil)
	s.enemies.Compact(func(e object.Shape) {
		s.tweens.Cancel(e.ID)
	})

	if over {
		s.gameOver()
	}
}

// hit resolves a projectile striking an enemy. It returns true if the enemy was destroyed.
func (s *Session) hit(e, p *object.Shape) bool {
	object.SpawnExplosion(p.X, p.Y, e.Radius, e.Color, s.rng, particleSpawner{s})
	p.MarkDestroyed()

	radius := e.Radius
	if to, ok := s.tweens.Pending(e.ID); ok {
		radius = to
	}

	if radius-config.ShrinkAmount > config.MinEnemyRadius {
		s.tweens.Start(e.ID, e.Radius, radius-config.ShrinkAmount, config.ShrinkDuration)
		s.score.Add(config.ScoreShrink)
		return false
	}

	e.MarkDestroyed()
	s.score.Add(config.ScoreKill)
	return true
}

// gameOver stops ticking and cancels the spawner.
func (s *Session) gameOver() {
	s.state = StateGameOver
	s.spawner.Reset()
	s.tweens.Reset()

	res := Result{Score: s.score.Score(), High: s.score.High(), Ticks: s.ticks}
	s.logger.Info("game over", "score", res.Score, "high", res.High, "ticks", res.Ticks)
	for _, fn := range s.gameOverFn {
		fn(res)
	}
}

// applyRadius sets an enemy's radius from a running tween.
func (s *Session) applyRadius(id uint64, radius float64) bool {
	e := s.enemies.Find(id)
	if e == nil || e.IsDestroyed() {
		return false
	}
	e.Radius = radius
	return true
}

func (s *Session) newPlayer() object.Shape {
	p := object.NewPlayer(s.width/2, s.height/2)
	p.ID = s.allocID()
	return p
}

func (s *Session) allocID() uint64 {
	s.nextID++
	return s.nextID
}

// State returns the current phase.
func (s *Session) State() State {
	return s.state
}

// Score returns the session's score tracker.
func (s *Session) Score() *score.Tracker {
	return s.score
}

// Size returns the playfield dimensions.
func (s *Session) Size() (float64, float64) {
	return s.width, s.height
}

// Player returns the player circle.
func (s *Session) Player() object.Shape {
	return s.player
}

// Enemies returns the live enemies. The slice is only valid until the next Tick.
func (s *Session) Enemies() []object.Shape {
	return s.enemies.All()
}

// Projectiles returns the live projectiles. The slice is only valid until the next Tick.
func (s *Session) Projectiles() []object.Shape {
	return s.projectiles.All()
}

// Particles returns the live particles. The slice is only valid until the next Tick.
func (s *Session) Particles() []object.Shape {
	return s.particles.All()
}

// Ticks returns how many frames the current game has run.
func (s *Session) Ticks() uint64 {
	return s.ticks
}

// enemySpawner and particleSpawner assign IDs and route new shapes to their collection.
type enemySpawner struct{ s *Session }

func (sp enemySpawner) Spawn(sh object.Shape) bool {
	sh.ID = sp.s.allocID()
	return sp.s.enemies.Add(sh)
}

type particleSpawner struct{ s *Session }

func (sp particleSpawner) Spawn(sh object.Shape) bool {
	sh.ID = sp.s.allocID()
	return sp.s.particles.Add(sh)
}

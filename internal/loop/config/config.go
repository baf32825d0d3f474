// Package config centralizes all tunable game parameters.
package config

import "time"

// View resolution - the playfield in logical units.
// Actual rendering scales to fit the terminal or window.
const (
	ViewWidth  = 640
	ViewHeight = 360
)

// Max render resolution in terminal cells. Larger terminals get a centred, bordered canvas.
const (
	MaxTermWidth  = 200
	MaxTermHeight = 60
)

// Scoring
const (
	ScoreShrink = 100 // Enemy hit and shrunk
	ScoreKill   = 250 // Enemy hit and removed
)

// Enemies
const (
	EnemyLimit     = 10                     // No spawn while this many enemies are alive
	SpawnInterval  = time.Second            // One spawn attempt per interval
	ShrinkAmount   = 10.0                   // Radius lost per hit
	MinEnemyRadius = 5.0                    // A hit that would leave the radius at or below this kills
	ShrinkDuration = 500 * time.Millisecond // Length of the shrink animation
)

// Rendering
const (
	// OverlayAlpha is the opacity of the black layer painted at the start of every
	// tick; below 1 it leaves motion trails.
	OverlayAlpha = 0.3
)

// Capacity caps keep a long session bounded.
const (
	MaxProjectiles = 256
	MaxParticles   = 2048
	MaxUsernameLen = 16 // Maximum display length for player usernames
)

// Leaderboard
const (
	LeaderboardSize = 5
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
	ShutdownDisplay        = time.Duration(ShutdownDisplaySeconds * float64(time.Second))
)

// Idle terminal players are warned, then disconnected.
const (
	InactivityWarn       = 90 * time.Second
	InactivityDisconnect = 120 * time.Second
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS

	// MaxFrameDelta caps the time one tick may feed the spawner after a stall.
	MaxFrameDelta = 100 * time.Millisecond
)

package client

import (
	"time"

	"github.com/tomz197/circlestrike/internal/input"
)

// View is the screen a terminal player is looking at.
type View int

const (
	ViewStart    View = iota // Title screen
	ViewPlaying              // Active gameplay
	ViewGameOver             // Enemy reached the player, show summary
	ViewShutdown             // Server is shutting down
)

// viewState is the per-connection state that lives outside the game session.
type viewState struct {
	input      input.Input
	view       View
	rank       int           // Leaderboard rank of the last finished game, 0 if unranked
	running    bool          // Client loop running
	delta      time.Duration // Time since the previous frame
	lastInput  time.Time
	idle       bool      // Showing the inactivity warning
	shutdownAt time.Time // Set once the hub announces a shutdown

	// What the previous frame drew; a change forces a full clear.
	drawnView View
	drawnIdle bool
}

func newViewState(now time.Time) *viewState {
	return &viewState{
		view:      ViewStart,
		running:   true,
		lastInput: now,
	}
}

// touch records player activity, clearing any inactivity warning.
func (s *viewState) touch(now time.Time, pressed bool) {
	if pressed {
		s.lastInput = now
		s.idle = false
	}
}

// idleFor is how long the player has not pressed anything.
func (s *viewState) idleFor(now time.Time) time.Duration {
	return now.Sub(s.lastInput)
}

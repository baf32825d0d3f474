package session

// State is the phase of a game session.
type State int

const (
	StateNotStarted State = iota // Waiting for the first start
	StateRunning                 // Ticking
	StateGameOver                // An enemy reached the player
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Result summarizes a finished game.
type Result struct {
	Score int
	High  int
	Ticks uint64 // Frames the game lasted
}

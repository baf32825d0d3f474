package server

import (
	"cmp"
	"slices"
)

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
	clientID int // Used for deterministic tie-break when scores are equal
}

// Snapshot is an immutable view of the hub for rendering.
type Snapshot struct {
	Players   int             // Connected clients
	TopScores []TopScoreEntry // Top N scores for leaderboard display
}

// leaderboard keeps every client's best finished game, including clients that left.
type leaderboard struct {
	best map[int]TopScoreEntry
	size int
}

func newLeaderboard(size int) *leaderboard {
	return &leaderboard{
		best: make(map[int]TopScoreEntry),
		size: size,
	}
}

// record stores score for the client if it beats the client's previous best.
// It returns the client's 1-based rank when the entry made the top list, otherwise 0.
func (l *leaderboard) record(clientID int, username string, score int) int {
	prev, ok := l.best[clientID]
	if ok && prev.Score >= score {
		return 0
	}
	l.best[clientID] = TopScoreEntry{Username: username, Score: score, clientID: clientID}

	for i, e := range l.top() {
		if e.clientID == clientID {
			return i + 1
		}
	}
	return 0
}

// top returns the best entries, highest score first; earlier clients win ties.
func (l *leaderboard) top() []TopScoreEntry {
	entries := make([]TopScoreEntry, 0, len(l.best))
	for _, e := range l.best {
		if e.Score > 0 {
			entries = append(entries, e)
		}
	}
	slices.SortFunc(entries, func(a, b TopScoreEntry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.clientID, b.clientID)
	})
	if len(entries) > l.size {
		entries = entries[:l.size]
	}
	return entries
}

// Package score keeps a session's running score and the best score seen so far.
package score

import "sync"

// Change describes a score update delivered to listeners.
type Change struct {
	Score int
	High  int
	Delta int // Points added; 0 on Reset
}

// Tracker accumulates points. Safe for concurrent use.
type Tracker struct {
	mu        sync.Mutex
	score     int
	high      int
	listeners []func(Change)
}

// NewTracker creates a tracker starting at zero.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Add increases the score by amount and raises the high score if it was beaten.
// Non-positive amounts are ignored.
func (t *Tracker) Add(amount int) {
	if amount <= 0 {
		return
	}

	t.mu.Lock()
	t.score += amount
	if t.score > t.high {
		t.high = t.score
	}
	c := Change{Score: t.score, High: t.high, Delta: amount}
	listeners := t.listeners
	t.mu.Unlock()

	notify(listeners, c)
}

// Reset zeroes the score for a new game. The high score is kept.
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.score = 0
	c := Change{Score: 0, High: t.high}
	listeners := t.listeners
	t.mu.Unlock()

	notify(listeners, c)
}

// Score returns the current score.
func (t *Tracker) Score() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.score
}

// High returns the best score since the tracker was created.
func (t *Tracker) High() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.high
}

// OnChange registers fn to be called after every Add and Reset.
// Listeners run on the caller's goroutine, outside the tracker's lock.
func (t *Tracker) OnChange(fn func(Change)) {
	if fn == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners[:len(t.listeners):len(t.listeners)], fn)
}

func notify(listeners []func(Change), c Change) {
	for _, fn := range listeners {
		fn(c)
	}
}

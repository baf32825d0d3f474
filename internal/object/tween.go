package object

import "time"

// Tween linearly interpolates a value (an enemy radius) from From to To over Duration.
type Tween struct {
	Target   uint64 // Shape ID being animated
	From, To float64
	Duration time.Duration
	elapsed  time.Duration
}

// Value returns the interpolated value at the tween's current progress.
func (t *Tween) Value() float64 {
	if t.Duration <= 0 || t.elapsed >= t.Duration {
		return t.To
	}
	p := float64(t.elapsed) / float64(t.Duration)
	return t.From + (t.To-t.From)*p
}

// Done returns true once the tween reached its end value.
func (t *Tween) Done() bool {
	return t.elapsed >= t.Duration
}

// Tweens runs at most one radius tween per shape.
type Tweens struct {
	items []Tween
}

// Start animates target from its current value to to. A tween already running on
// the same target is replaced, continuing from the given current value.
func (ts *Tweens) Start(target uint64, from, to float64, d time.Duration) {
	ts.Cancel(target)
	ts.items = append(ts.items, Tween{Target: target, From: from, To: to, Duration: d})
}

// Pending returns the end value of the tween running on target, if any.
func (ts *Tweens) Pending(target uint64) (float64, bool) {
	for i := range ts.items {
		if ts.items[i].Target == target {
			return ts.items[i].To, true
		}
	}
	return 0, false
}

// Advance moves every tween forward by dt and hands the new value to apply.
// apply returns false when the target no longer exists; that tween is dropped.
// Finished tweens are dropped after their final value is applied.
func (ts *Tweens) Advance(dt time.Duration, apply func(target uint64, value float64) bool) {
	kept := ts.items[:0]
	for _, t := range ts.items {
		t.elapsed += dt
		if !apply(t.Target, t.Value()) {
			continue
		}
		if !t.Done() {
			kept = append(kept, t)
		}
	}
	ts.items = kept
}

// Cancel stops the tween running on target without applying its end value.
func (ts *Tweens) Cancel(target uint64) {
	for i := range ts.items {
		if ts.items[i].Target == target {
			ts.items = append(ts.items[:i], ts.items[i+1:]...)
			return
		}
	}
}

// Len returns the number of running tweens.
func (ts *Tweens) Len() int {
	return len(ts.items)
}

// Reset cancels all tweens.
func (ts *Tweens) Reset() {
	ts.items = ts.items[:0]
}

package object

import (
	"testing"
	"time"
)

func TestTweenLinear(t *testing.T) {
	var ts Tweens
	ts.Start(7, 16, 6, 500*time.Millisecond)

	if to, ok := ts.Pending(7); !ok || to != 6 {
		t.Fatalf("Pending = %v, %v, want 6, true", to, ok)
	}

	var got float64
	apply := func(id uint64, v float64) bool {
		got = v
		return true
	}

	ts.Advance(250*time.Millisecond, apply)
	if got != 11 {
		t.Fatalf("value at half time = %v, want 11", got)
	}

	ts.Advance(250*time.Millisecond, apply)
	if got != 6 {
		t.Fatalf("final value = %v, want 6", got)
	}
	if ts.Len() != 0 {
		t.Fatalf("finished tween still running")
	}
}

func TestTweenDroppedWhenTargetGone(t *testing.T) {
	var ts Tweens
	ts.Start(1, 20, 10, time.Second)
	ts.Start(2, 20, 10, time.Second)

	ts.Advance(100*time.Millisecond, func(id uint64, v float64) bool { return id != 1 })
	if _, ok := ts.Pending(1); ok {
		t.Fatal("tween on a removed target kept running")
	}
	if _, ok := ts.Pending(2); !ok {
		t.Fatal("tween on a live target was dropped")
	}

	ts.Cancel(2)
	if ts.Len() != 0 {
		t.Fatalf("Len after Cancel = %d, want 0", ts.Len())
	}
}

package server

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/circlestrike/internal/loop/session"
)

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestLeaderboardOrdering(t *testing.T) {
	l := newLeaderboard(3)

	if rank := l.record(1, "ann", 500); rank != 1 {
		t.Fatalf("first entry rank = %d, want 1", rank)
	}
	l.record(2, "bob", 700)
	l.record(3, "cy", 500)
	l.record(4, "dee", 100)

	// A worse game does not replace a client's best.
	if rank := l.record(2, "bob", 50); rank != 0 {
		t.Fatalf("worse game rank = %d, want 0", rank)
	}

	top := l.top()
	want := []string{"bob", "ann", "cy"}
	if len(top) != len(want) {
		t.Fatalf("top has %d entries, want %d", len(top), len(want))
	}
	for i, name := range want {
		if top[i].Username != name {
			t.Errorf("rank %d = %s, want %s", i+1, top[i].Username, name)
		}
	}

	if rank := l.record(4, "dee", 100); rank != 0 {
		t.Fatalf("repeat score rank = %d, want 0", rank)
	}
}

func TestLeaderboardSkipsZeroScores(t *testing.T) {
	l := newLeaderboard(5)
	if rank := l.record(1, "ann", 0); rank != 0 {
		t.Fatalf("zero score rank = %d, want 0", rank)
	}
	if len(l.top()) != 0 {
		t.Fatal("zero score listed")
	}
}

func TestDisplayName(t *testing.T) {
	if got := displayName("averyveryverylongusername"); got != "averyveryverylon" {
		t.Errorf("displayName truncated to %q", got)
	}
	if got := displayName(""); !strings.HasPrefix(got, "guest-") || len(got) != len("guest-")+8 {
		t.Errorf("guest name = %q", got)
	}
}

func TestServerRegistersAndRanks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewServer(nil)
	go s.Run(ctx)

	a := s.RegisterClient("ann")
	b := s.RegisterClient("bob")
	waitFor(t, func() bool { return s.GetSnapshot().Players == 2 })

	s.ReportResult(a.ID, session.Result{Score: 350})
	s.ReportResult(b.ID, session.Result{Score: 600})

	select {
	case ev := <-b.EventsCh:
		if ev.Type != EventRanked || ev.Rank != 1 {
			t.Fatalf("bob event = %+v, want ranked #1", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no ranking event")
	}

	waitFor(t, func() bool { return len(s.GetSnapshot().TopScores) == 2 })
	top := s.GetSnapshot().TopScores
	if top[0].Username != "bob" || top[1].Username != "ann" {
		t.Fatalf("leaderboard = %+v", top)
	}

	s.UnregisterClient(a.ID)
	waitFor(t, func() bool { return s.GetSnapshot().Players == 1 })
	if _, ok := <-a.EventsCh; ok {
		// ann was ranked #2 before leaving; drain it and expect the close next.
		if _, ok := <-a.EventsCh; ok {
			t.Fatal("events channel still open after unregister")
		}
	}
}

func TestShutdownNotifiesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewServer(nil)
	go s.Run(ctx)

	h := s.RegisterClient("ann")
	waitFor(t, func() bool { return s.GetSnapshot().Players == 1 })

	go func() {
		for ev := range h.EventsCh {
			if ev.Type == EventServerShutdown {
				s.UnregisterClient(h.ID)
			}
		}
	}()

	done := make(chan struct{})
	go func() {
		s.Shutdown(5 * time.Second)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Shutdown did not return after the client left")
	}
}

func TestShutdownWithoutClientsReturnsImmediately(t *testing.T) {
	s := NewServer(nil)
	start := time.Now()
	s.Shutdown(time.Second)
	if time.Since(start) > 500*time.Millisecond {
		t.Fatal("Shutdown waited with nobody connected")
	}
	// A second call must not block or panic either.
	s.Shutdown(time.Second)
}

func TestLeaveQueuedBehindJoinIsApplied(t *testing.T) {
	for i := 0; i < 100; i++ {
		s := NewServer(nil)
		h := s.RegisterClient("ann")
		s.UnregisterClient(h.ID)

		ctx, cancel := context.WithCancel(context.Background())
		go s.Run(ctx)

		select {
		case _, ok := <-h.EventsCh:
			if ok {
				cancel()
				t.Fatalf("run %d: unexpected event before close", i)
			}
		case <-time.After(2 * time.Second):
			cancel()
			t.Fatalf("run %d: client still registered after leaving", i)
		}
		waitFor(t, func() bool { return s.GetSnapshot().Players == 0 })
		cancel()
	}
}

func TestRegistrationAfterRunReturnsDoesNotBlock(t *testing.T) {
	s := NewServer(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Run(ctx)

	done := make(chan *ClientHandle)
	go func() {
		// More than the channel buffer holds.
		for i := 0; i < 100; i++ {
			s.UnregisterClient(i)
		}
		done <- s.RegisterClient("late")
	}()

	select {
	case h := <-done:
		if _, ok := <-h.EventsCh; ok {
			t.Fatal("late client got an open events channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("registration blocked after the hub stopped")
	}
}

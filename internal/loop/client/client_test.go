package client

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tomz197/circlestrike/internal/input"
	"github.com/tomz197/circlestrike/internal/loop/config"
	"github.com/tomz197/circlestrike/internal/loop/server"
	"github.com/tomz197/circlestrike/internal/loop/session"
)

// fakeServer is an in-memory GameServer.
type fakeServer struct {
	mu       sync.Mutex
	handle   *server.ClientHandle
	results  []session.Result
	snapshot server.Snapshot
	left     bool
}

func (f *fakeServer) RegisterClient(username string) *server.ClientHandle {
	f.handle = &server.ClientHandle{ID: 1, Username: username, EventsCh: make(chan server.ClientEvent, 4)}
	return f.handle
}

func (f *fakeServer) UnregisterClient(int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.left = true
}

func (f *fakeServer) ReportResult(_ int, res session.Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, res)
}

func (f *fakeServer) GetSnapshot() *server.Snapshot {
	return &f.snapshot
}

func newTestClient(t *testing.T) (*Client, *fakeServer, *bytes.Buffer) {
	t.Helper()
	fs := &fakeServer{snapshot: server.Snapshot{Players: 3}}
	out := &bytes.Buffer{}
	c := NewClient(fs, bufio.NewReader(strings.NewReader("")), out, ClientOptions{
		Username:     "ann",
		Seed:         7,
		TermSizeFunc: func() (int, int, error) { return 100, 40, nil },
	})
	return c, fs, out
}

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		w, h                   int
		rw, rh, offCol, offRow int
	}{
		{80, 24, 80, 24, 0, 0},
		{config.MaxTermWidth + 20, config.MaxTermHeight + 10, config.MaxTermWidth, config.MaxTermHeight, 10, 5},
	}
	for _, tt := range tests {
		rw, rh, oc, or := clampTermSize(tt.w, tt.h)
		if rw != tt.rw || rh != tt.rh || oc != tt.offCol || or != tt.offRow {
			t.Errorf("clampTermSize(%d, %d) = %d %d %d %d, want %d %d %d %d",
				tt.w, tt.h, rw, rh, oc, or, tt.rw, tt.rh, tt.offCol, tt.offRow)
		}
	}
}

func TestStartOnSpaceAndFireOnClick(t *testing.T) {
	c, _, _ := newTestClient(t)

	c.update(time.Now())
	if c.state.view != ViewStart {
		t.Fatalf("started without input")
	}

	c.state.input = input.Input{Space: true}
	c.update(time.Now())
	if c.state.view != ViewPlaying || c.game.State() != session.StateRunning {
		t.Fatalf("view %v session %v after SPACE", c.state.view, c.game.State())
	}

	c.state.input = input.Input{Clicks: []input.Click{{Col: 100, Row: 20}}}
	c.update(time.Now())
	if n := len(c.game.Projectiles()); n != 1 {
		t.Fatalf("projectiles = %d after a click, want 1", n)
	}
}

func TestGameOverReportsAndShowsSummary(t *testing.T) {
	c, fs, out := newTestClient(t)
	c.state.input = input.Input{Enter: true}
	c.update(time.Now())

	c.game.Score().Add(config.ScoreKill)
	c.game.Stop()
	c.state.input = input.Input{}
	c.update(time.Now())

	if c.state.view != ViewGameOver {
		t.Fatalf("view = %v, want game over", c.state.view)
	}
	if len(fs.results) != 1 || fs.results[0].Score != config.ScoreKill {
		t.Fatalf("reported results = %+v", fs.results)
	}

	fs.snapshot.TopScores = []server.TopScoreEntry{{Username: "ann", Score: config.ScoreKill}}
	if err := c.drawFrame(); err != nil {
		t.Fatalf("drawFrame: %v", err)
	}
	for _, want := range []string{"G A M E   O V E R", "Leaderboard", "1. ann"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("game over screen is missing %q", want)
		}
	}

	c.state.input = input.Input{Space: true}
	c.update(time.Now())
	if c.state.view != ViewPlaying || c.game.Score().Score() != 0 {
		t.Fatalf("restart failed: view %v score %d", c.state.view, c.game.Score().Score())
	}
	if c.game.Score().High() != config.ScoreKill {
		t.Fatalf("high score = %d, want %d", c.game.Score().High(), config.ScoreKill)
	}
}

func TestPlayingHUD(t *testing.T) {
	c, _, out := newTestClient(t)
	c.state.input = input.Input{Space: true}
	c.update(time.Now())

	if err := c.drawFrame(); err != nil {
		t.Fatalf("drawFrame: %v", err)
	}
	for _, want := range []string{"Score", "High", "Players: 3"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("HUD is missing %q", want)
		}
	}
}

func TestServerEvents(t *testing.T) {
	c, fs, _ := newTestClient(t)

	fs.handle.EventsCh <- server.ClientEvent{Type: server.EventRanked, Rank: 2}
	fs.handle.EventsCh <- server.ClientEvent{Type: server.EventServerShutdown}
	c.processServerEvents()

	if c.state.rank != 2 {
		t.Errorf("rank = %d, want 2", c.state.rank)
	}
	if c.state.view != ViewShutdown {
		t.Errorf("view = %v, want shutdown", c.state.view)
	}

	close(fs.handle.EventsCh)
	c.processServerEvents()
	if c.state.running {
		t.Error("client kept running after the hub closed its channel")
	}
}

func TestLeaderboardLinesHaveFixedWidth(t *testing.T) {
	lines := leaderboardLines([]server.TopScoreEntry{
		{Username: "bob", Score: 600},
		{Username: "ann", Score: 350},
	}, "", styles{})
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	if len(lines[0]) != len(lines[1]) || !strings.HasPrefix(lines[0], "1. bob ") || !strings.HasSuffix(lines[1], " 350") {
		t.Fatalf("lines = %q", lines)
	}
}

func TestInactivityWarnsThenDisconnects(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })
	c := NewClient(&fakeServer{}, bufio.NewReader(pr), &bytes.Buffer{}, ClientOptions{
		TermSizeFunc: func() (int, int, error) { return 80, 24, nil },
	})
	start := c.state.lastInput

	c.poll(start.Add(config.InactivityWarn - time.Second))
	if c.state.idle {
		t.Fatal("warned too early")
	}
	c.poll(start.Add(config.InactivityWarn + time.Second))
	if !c.state.idle || !c.state.running {
		t.Fatalf("idle %v running %v after the warning threshold", c.state.idle, c.state.running)
	}
	c.poll(start.Add(config.InactivityDisconnect + time.Second))
	if c.state.running {
		t.Fatal("inactive player was not disconnected")
	}
}

func TestShutdownCountdownStopsClient(t *testing.T) {
	c, fs, _ := newTestClient(t)
	fs.handle.EventsCh <- server.ClientEvent{Type: server.EventServerShutdown}
	c.processServerEvents()

	c.update(time.Now())
	if !c.state.running {
		t.Fatal("stopped before the countdown ended")
	}
	c.update(c.state.shutdownAt.Add(time.Millisecond))
	if c.state.running {
		t.Fatal("still running after the countdown")
	}
}

package web

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/circlestrike/internal/loop/config"
	"github.com/tomz197/circlestrike/internal/loop/server"
	"github.com/tomz197/circlestrike/internal/loop/session"
	"github.com/tomz197/circlestrike/internal/object"
)

// idleFrameEvery is how many ticks pass between HUD-only frames while no game is running.
const idleFrameEvery = 30

// sender is the write half of a Conn.
type sender interface {
	Send(msg any) error
}

// player drives one browser's session. All fields are owned by the Run goroutine.
type player struct {
	out     sender
	hub     server.GameServer
	handle  *server.ClientHandle
	game    *session.Session
	display *DisplayList
	logger  *log.Logger

	over       *session.Result
	shutdownAt time.Time
	idleTicks  int
}

func newPlayer(out sender, hub server.GameServer, handle *server.ClientHandle, seed uint64, logger *log.Logger) *player {
	p := &player{
		out:     out,
		hub:     hub,
		handle:  handle,
		display: NewDisplayList(config.ViewWidth, config.ViewHeight),
		logger:  logger,
	}
	p.game = session.New(session.Options{
		Rand:   object.NewRand(seed),
		Logger: logger.With("user", handle.Username),
	})
	p.game.OnGameOver(func(res session.Result) {
		hub.ReportResult(handle.ID, res)
		p.over = &res
	})
	return p
}

// Run ticks the session every frame until the browser leaves, the hub closes the
// player's event channel, the shutdown countdown ends or ctx is cancelled.
func (p *player) Run(ctx context.Context, inbox <-chan ClientMessage, frame time.Duration) error {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-inbox:
			if !ok {
				return nil
			}
			p.handleMessage(msg)
		case ev, ok := <-p.handle.EventsCh:
			if !ok {
				return nil
			}
			if err := p.handleEvent(ev, time.Now()); err != nil {
				return err
			}
		case now := <-ticker.C:
			dt := min(now.Sub(last), config.MaxFrameDelta)
			last = now
			if !p.shutdownAt.IsZero() && now.After(p.shutdownAt) {
				return nil
			}
			if err := p.tick(dt); err != nil {
				return err
			}
		}
	}
}

func (p *player) handleMessage(msg ClientMessage) {
	switch msg.Type {
	case MsgStart:
		if !p.shutdownAt.IsZero() {
			return
		}
		switch p.game.State() {
		case session.StateNotStarted:
			p.game.Start()
		case session.StateGameOver:
			p.game.Restart()
		}
	case MsgClick:
		p.game.Fire(msg.X, msg.Y)
	}
}

func (p *player) handleEvent(ev server.ClientEvent, now time.Time) error {
	switch ev.Type {
	case server.EventRanked:
		return p.out.Send(RankedMsg{
			Type: MsgRanked,
			Rank: ev.Rank,
			Top:  p.leaderboard(),
		})
	case server.EventServerShutdown:
		p.game.Stop()
		if err := p.flushGameOver(); err != nil {
			return err
		}
		p.shutdownAt = now.Add(config.ShutdownDisplay)
		return p.out.Send(ShutdownMsg{Type: MsgShutdown, Seconds: config.ShutdownDisplaySeconds})
	}
	return nil
}

// tick advances the session and sends the frame. Idle sessions only send a
// HUD frame now and then so the browser can show the player count.
func (p *player) tick(dt time.Duration) error {
	running := p.game.State() == session.StateRunning
	if !running {
		p.idleTicks++
		if p.idleTicks%idleFrameEvery != 1 {
			return nil
		}
	}

	p.display.Reset()
	p.game.Tick(dt, p.display)

	score := p.game.Score()
	if err := p.out.Send(FrameMsg{
		Type:    MsgFrame,
		State:   p.game.State().String(),
		Score:   score.Score(),
		High:    score.High(),
		Players: p.hub.GetSnapshot().Players,
		Ops:     p.display.Ops(),
	}); err != nil {
		return err
	}
	if running {
		p.idleTicks = 0
	}
	return p.flushGameOver()
}

// flushGameOver sends the summary of a game that ended since the last call.
func (p *player) flushGameOver() error {
	if p.over == nil {
		return nil
	}
	res := *p.over
	p.over = nil
	return p.out.Send(GameOverMsg{
		Type:  MsgGameOver,
		Score: res.Score,
		High:  res.High,
		Top:   p.leaderboard(),
	})
}

func (p *player) leaderboard() []LeaderEntry {
	top := p.hub.GetSnapshot().TopScores
	entries := make([]LeaderEntry, len(top))
	for i, e := range top {
		entries[i] = LeaderEntry{Name: e.Username, Score: e.Score}
	}
	return entries
}

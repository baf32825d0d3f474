// Package client runs one terminal player: it reads keys and mouse clicks, drives the
// player's game session and renders it with a HUD.
package client

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/circlestrike/internal/draw"
	"github.com/tomz197/circlestrike/internal/input"
	"github.com/tomz197/circlestrike/internal/loop/config"
	"github.com/tomz197/circlestrike/internal/loop/server"
	"github.com/tomz197/circlestrike/internal/loop/session"
	"github.com/tomz197/circlestrike/internal/object"
)

// Client handles rendering and input for a single terminal connection.
type Client struct {
	hub    server.GameServer
	handle *server.ClientHandle
	state  *viewState
	game   *session.Session

	canvas   *draw.Canvas
	frame    *draw.FrameBuffer
	out      io.Writer
	keys     *input.Stream
	termSize draw.TermSizeFunc
	styles   styles
	logger   *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Seed         uint64      // Random seed for the session; 0 picks one
	Logger       *log.Logger // Defaults to the global charmbracelet logger
}

// NewClient registers with the hub and prepares a session sized to the terminal.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	handle := gs.RegisterClient(opts.Username)
	logger := opts.Logger.With("user", handle.Username)

	c := &Client{
		hub:      gs,
		handle:   handle,
		state:    newViewState(time.Now()),
		out:      w,
		keys:     input.StartStream(r),
		termSize: opts.TermSizeFunc,
		styles:   newStyles(w),
		logger:   logger,
	}

	c.game = session.New(session.Options{
		Width:  config.ViewWidth,
		Height: config.ViewHeight,
		Rand:   object.NewRand(opts.Seed),
		Logger: logger,
	})
	c.game.OnGameOver(func(res session.Result) {
		gs.ReportResult(handle.ID, res)
	})

	termWidth, termHeight, _ := c.termSize()
	width, height, offCol, offRow := clampTermSize(termWidth, termHeight)
	c.canvas = draw.NewScaledCanvas(width, height, config.ViewWidth, config.ViewHeight)
	c.canvas.SetOffset(offCol, offRow)
	c.frame = draw.NewFrameBuffer(w, offCol, offRow)
	return c
}

// Run drives the client at the target frame rate until the player quits, goes
// idle for too long, or the hub goes away.
func (c *Client) Run() error {
	if err := draw.EnterGameMode(c.out); err != nil {
		return fmt.Errorf("enter game mode: %w", err)
	}
	defer draw.LeaveGameMode(c.out)
	defer c.hub.UnregisterClient(c.handle.ID)

	ticker := time.NewTicker(config.ClientTargetFrameTime)
	defer ticker.Stop()

	last := time.Now()
	for c.state.running {
		now := time.Now()
		c.state.delta = now.Sub(last)
		last = now

		c.poll(now)
		c.processServerEvents()
		c.updateScreen()
		c.update(now)

		if err := c.drawFrame(); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}
		<-ticker.C
	}
	return nil
}

// poll reads pending input and applies quit and inactivity rules.
func (c *Client) poll(now time.Time) {
	c.state.input = input.ReadInput(c.keys)
	c.state.touch(now, len(c.state.input.Pressed) > 0 || len(c.state.input.Clicks) > 0)

	switch idle := c.state.idleFor(now); {
	case idle > config.InactivityDisconnect:
		c.logger.Info("disconnecting inactive player", "idle", idle.Round(time.Second))
		c.state.running = false
	case idle > config.InactivityWarn:
		c.state.idle = true
	}

	if c.state.input.Quit {
		c.state.running = false
	}
}

// processServerEvents drains events the hub has sent to this client.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				c.state.running = false
				return
			}
			switch event.Type {
			case server.EventRanked:
				c.state.rank = event.Rank
			case server.EventServerShutdown:
				c.game.Stop()
				c.state.view = ViewShutdown
				c.state.shutdownAt = time.Now().Add(config.ShutdownDisplay)
			}
		default:
			return
		}
	}
}

// updateScreen follows terminal resizes. When the render area moves, the
// terminal is cleared to drop stale borders and pixels outside it.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSize()
	if err != nil {
		return
	}
	width, height, offCol, offRow := clampTermSize(termWidth, termHeight)

	if width != c.canvas.TerminalWidth() || height != c.canvas.TerminalHeight() ||
		offCol != c.canvas.OffsetCol() || offRow != c.canvas.OffsetRow() {
		c.frame.Clear()
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(width, height)
	c.canvas.SetOffset(offCol, offRow)
	c.frame.SetOffset(offCol, offRow)
}

// clampTermSize caps the render area at the maximum resolution and centres it.
func clampTermSize(termWidth, termHeight int) (width, height, offCol, offRow int) {
	width = min(termWidth, config.MaxTermWidth)
	height = min(termHeight, config.MaxTermHeight)
	return width, height, (termWidth - width) / 2, (termHeight - height) / 2
}

// update advances the current view.
func (c *Client) update(now time.Time) {
	in := c.state.input

	switch c.state.view {
	case ViewStart:
		if in.Space || in.Enter || len(in.Clicks) > 0 {
			c.startGame()
		}

	case ViewPlaying:
		for _, click := range in.Clicks {
			x, y := c.canvas.TerminalToLogical(click.Col, click.Row)
			c.game.Fire(x, y)
		}
		c.game.Tick(min(c.state.delta, config.MaxFrameDelta), c.canvas)
		if c.game.State() == session.StateGameOver {
			c.state.view = ViewGameOver
		}

	case ViewGameOver:
		if in.Space || in.Enter {
			c.startGame()
		}

	case ViewShutdown:
		if now.After(c.state.shutdownAt) {
			c.state.running = false
		}
	}
}

// startGame starts or restarts the session on a clean canvas.
func (c *Client) startGame() {
	switch c.game.State() {
	case session.StateNotStarted:
		c.game.Start()
	case session.StateGameOver:
		c.game.Restart()
	default:
		return
	}

	c.state.rank = 0
	c.canvas.Clear()
	c.state.view = ViewPlaying
}

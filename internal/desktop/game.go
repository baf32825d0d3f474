// Package desktop runs the game in a native window with ebiten.
package desktop

import (
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/circlestrike/internal/draw"
	"github.com/tomz197/circlestrike/internal/loop/config"
	"github.com/tomz197/circlestrike/internal/loop/server"
	"github.com/tomz197/circlestrike/internal/loop/session"
	"github.com/tomz197/circlestrike/internal/object"
)

const (
	glyphWidth  = 7
	lineHeight  = 16
	hudMarginPx = 8
)

var (
	hudColor    = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	accentColor = nrgba(colorful.Hsl(190, 0.9, 0.65), 1)
)

// Options configures a Game.
type Options struct {
	Username string
	Seed     uint64 // 0 picks a random seed
	Logger   *log.Logger
}

// frameInput is what the player did since the previous Update.
type frameInput struct {
	start  bool
	quit   bool
	clicks [][2]float64
}

// Game implements ebiten.Game around a single session.
type Game struct {
	hub    server.GameServer
	handle *server.ClientHandle
	game   *session.Session
	logger *log.Logger

	trail   *ebiten.Image
	surface draw.Surface

	last       time.Time
	rank       int
	lastResult *session.Result
	shutdownAt time.Time
	hubGone    bool
}

var _ ebiten.Game = (*Game)(nil)

// NewGame registers with hub and prepares a session. Call Close when the window exits.
func NewGame(hub server.GameServer, opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	handle := hub.RegisterClient(opts.Username)

	g := &Game{
		hub:    hub,
		handle: handle,
		logger: opts.Logger,
	}
	g.game = session.New(session.Options{
		Rand:   object.NewRand(opts.Seed),
		Logger: opts.Logger.With("user", handle.Username),
	})
	g.game.OnGameOver(func(res session.Result) {
		hub.ReportResult(handle.ID, res)
		g.lastResult = &res
		g.rank = 0
	})
	return g
}

// Close leaves the hub.
func (g *Game) Close() {
	g.hub.UnregisterClient(g.handle.ID)
}

func (g *Game) Update() error {
	if g.trail == nil {
		g.trail = ebiten.NewImage(config.ViewWidth, config.ViewHeight)
		g.surface = NewImageSurface(g.trail)
		g.last = time.Now()
	}

	now := time.Now()
	dt := min(now.Sub(g.last), config.MaxFrameDelta)
	g.last = now

	return g.step(readInput(), dt, now)
}

// readInput polls ebiten for this frame's keys and clicks. The layout is the
// playfield size, so cursor positions are already playfield coordinates.
func readInput() frameInput {
	in := frameInput{
		start: inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		quit:  inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		in.clicks = append(in.clicks, [2]float64{float64(x), float64(y)})
	}
	return in
}

// step applies one frame of input and advances the session.
func (g *Game) step(in frameInput, dt time.Duration, now time.Time) error {
	g.processServerEvents(now)
	if in.quit || g.hubGone {
		return ebiten.Termination
	}
	if !g.shutdownAt.IsZero() && now.After(g.shutdownAt) {
		return ebiten.Termination
	}

	if in.start && g.shutdownAt.IsZero() {
		switch g.game.State() {
		case session.StateNotStarted:
			g.game.Start()
		case session.StateGameOver:
			g.game.Restart()
		}
	}
	for _, c := range in.clicks {
		g.game.Fire(c[0], c[1])
	}

	g.game.Tick(dt, g.surface)
	return nil
}

func (g *Game) processServerEvents(now time.Time) {
	for {
		select {
		case ev, ok := <-g.handle.EventsCh:
			if !ok {
				g.hubGone = true
				return
			}
			switch ev.Type {
			case server.EventRanked:
				g.rank = ev.Rank
			case server.EventServerShutdown:
				g.game.Stop()
				g.shutdownAt = now.Add(config.ShutdownDisplay)
				g.logger.Info("server shutting down")
			}
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.trail != nil {
		screen.DrawImage(g.trail, nil)
	}

	score := g.game.Score()
	hud := fmt.Sprintf("Score: %d  High: %d  Players: %d", score.Score(), score.High(), g.hub.GetSnapshot().Players)
	text.Draw(screen, hud, basicfont.Face7x13, hudMarginPx, lineHeight, hudColor)

	lines := g.overlayLines(time.Now())
	y := (config.ViewHeight - len(lines)*lineHeight) / 2
	for i, line := range lines {
		x := (config.ViewWidth - len(line)*glyphWidth) / 2
		clr := color.Color(hudColor)
		if i == 0 {
			clr = accentColor
		}
		text.Draw(screen, line, basicfont.Face7x13, x, y+i*lineHeight, clr)
	}
}

// overlayLines is the centred text for the current view; empty while playing.
func (g *Game) overlayLines(now time.Time) []string {
	if !g.shutdownAt.IsZero() {
		left := max(int(g.shutdownAt.Sub(now).Seconds()+0.999), 0)
		return []string{"SERVER SHUTTING DOWN", fmt.Sprintf("Closing in %ds", left)}
	}

	switch g.game.State() {
	case session.StateNotStarted:
		return []string{"C I R C L E S T R I K E", "", "Click to shoot", "Press SPACE to start"}
	case session.StateGameOver:
		lines := []string{"G A M E   O V E R", ""}
		if g.lastResult != nil {
			lines = append(lines, fmt.Sprintf("Score %d   Best %d", g.lastResult.Score, g.lastResult.High))
		}
		if g.rank > 0 {
			lines = append(lines, fmt.Sprintf("You placed #%d", g.rank))
		}
		if top := g.hub.GetSnapshot().TopScores; len(top) > 0 {
			lines = append(lines, "", "Leaderboard")
			for i, e := range top {
				lines = append(lines, fmt.Sprintf("%d. %-16s %6d", i+1, e.Username, e.Score))
			}
		}
		return append(lines, "", "Press SPACE to play again")
	}
	return nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ViewWidth, config.ViewHeight
}

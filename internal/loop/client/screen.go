package client

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/tomz197/circlestrike/internal/loop/config"
	"github.com/tomz197/circlestrike/internal/loop/server"
)

// styles are bound to the client's writer so colour output does not depend on
// the server process's own terminal.
type styles struct {
	hud    lipgloss.Style
	value  lipgloss.Style
	modal  lipgloss.Style
	title  lipgloss.Style
	dim    lipgloss.Style
	accent lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w, termenv.WithProfile(termenv.TrueColor))
	accent := lipgloss.Color(colorful.Hsl(190, 0.5, 0.5).Hex())
	gold := lipgloss.Color(colorful.Hsl(45, 0.9, 0.6).Hex())

	return styles{
		hud:   r.NewStyle().Foreground(lipgloss.Color("#bbbbbb")),
		value: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")),
		modal: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center),
		title:  r.NewStyle().Bold(true).Foreground(accent),
		dim:    r.NewStyle().Foreground(lipgloss.Color("#777777")),
		accent: r.NewStyle().Bold(true).Foreground(gold),
	}
}

// drawFrame renders the canvas, then overlays the UI for the current view.
func (c *Client) drawFrame() error {
	// On view or inactivity transitions, do a full terminal clear
	// so UI elements from the previous view don't persist on screen.
	if c.state.view != c.state.drawnView || c.state.idle != c.state.drawnIdle {
		c.frame.Clear()
		c.canvas.ForceRedraw()
		c.state.drawnView = c.state.view
		c.state.drawnIdle = c.state.idle
	}

	// Render canvas to terminal
	if err := c.canvas.Render(c.frame); err != nil {
		return err
	}

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.frame)

	// Draw UI overlay
	c.drawUI(c.hub.GetSnapshot())

	return c.frame.Flush()
}

// drawUI draws the UI overlay.
func (c *Client) drawUI(snapshot *server.Snapshot) {
	if c.state.view == ViewShutdown {
		c.drawShutdownScreen()
		return
	}

	if c.state.idle {
		c.drawInactivityScreen()
		return
	}

	switch c.state.view {
	case ViewPlaying:
		c.drawPlayingHUD(snapshot)
	case ViewStart:
		c.drawStartScreen()
	case ViewGameOver:
		c.drawGameOverScreen(snapshot)
	}
}

// writeText writes a single line at a canvas position and marks the cells under it
// so the canvas paints over the text once it is gone.
func (c *Client) writeText(col, row int, s string) {
	if col < 1 {
		col = 1
	}
	c.frame.TextAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, lipgloss.Width(s))
}

// drawModal draws a bordered box centred on the canvas.
func (c *Client) drawModal(lines ...string) {
	box := c.styles.modal.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
	rows := strings.Split(box, "\n")
	width := lipgloss.Width(box)

	col := (c.canvas.TerminalWidth()-width)/2 + 1
	row := (c.canvas.TerminalHeight()-len(rows))/2 + 1
	if row < 1 {
		row = 1
	}
	for i, line := range rows {
		c.writeText(col, row+i, line)
	}
}

// blink returns s or blank padding of the same width, alternating every 600ms.
func blink(s string) string {
	if time.Now().UnixMilli()/600%2 == 0 {
		return s
	}
	return strings.Repeat(" ", lipgloss.Width(s))
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen() {
	remaining := int((config.InactivityDisconnect - c.state.idleFor(time.Now())).Seconds())
	c.drawModal(
		c.styles.title.Render("INACTIVITY WARNING"),
		"",
		"You have been inactive for too long.",
		fmt.Sprintf("You will be disconnected in %d seconds.", remaining),
		"",
		c.styles.dim.Render("Press any key to continue"),
	)
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen() {
	// ASCII art title (figlet "small" font)
	titleArt := strings.Join([]string{
		`  ___ ___ ___  ___ _    ___   ___ _____ ___ ___ _  _____ `,
		` / __|_ _| _ \/ __| |  | __| / __|_   _| _ \_ _| |/ / __|`,
		`| (__ | ||   / (__| |__| _|  \__ \ | | |   /| || ' <| _| `,
		` \___|___|_|_\\___|____|___| |___/ |_| |_|_\___|_|\_\___|`,
	}, "\n")

	c.drawModal(
		c.styles.title.Render(titleArt),
		"",
		"~ Shoot the circles before they reach you ~",
		"",
		c.styles.value.Render("Controls"),
		"Click  . . . . . Shoot",
		"SPACE  . . . . . Start",
		"Q  . . . . . . .  Quit",
		"",
		c.styles.accent.Render(blink(">>  Click or press SPACE to start  <<")),
	)
}

// drawPlayingHUD draws the in-game HUD.
func (c *Client) drawPlayingHUD(snapshot *server.Snapshot) {
	score := c.game.Score()

	left := c.styles.hud.Render("Score ") + c.styles.value.Render(fmt.Sprintf("%-8d", score.Score())) +
		c.styles.hud.Render("  High ") + c.styles.value.Render(fmt.Sprintf("%-8d", score.High()))
	c.writeText(2, 1, left)

	players := c.styles.hud.Render(fmt.Sprintf("Players: %-4d", snapshot.Players))
	c.writeText(c.canvas.TerminalWidth()-lipgloss.Width(players), 1, players)
}

// drawGameOverScreen draws the game over summary with the leaderboard.
func (c *Client) drawGameOverScreen(snapshot *server.Snapshot) {
	score := c.game.Score()
	lines := []string{
		c.styles.title.Render("G A M E   O V E R"),
		"",
		"Score " + c.styles.value.Render(fmt.Sprint(score.Score())),
		"Best  " + c.styles.value.Render(fmt.Sprint(score.High())),
	}

	if c.state.rank > 0 {
		lines = append(lines, "", c.styles.accent.Render(fmt.Sprintf("You placed #%d on the leaderboard!", c.state.rank)))
	}

	if len(snapshot.TopScores) > 0 {
		lines = append(lines, "", c.styles.value.Render("Leaderboard"))
		lines = append(lines, leaderboardLines(snapshot.TopScores, c.handle.Username, c.styles)...)
	}

	lines = append(lines,
		"",
		c.styles.accent.Render(blink(">>  Press SPACE to Restart  <<")),
		c.styles.dim.Render("Q to quit"),
	)
	c.drawModal(lines...)
}

// leaderboardLines formats entries as "1. name ....... 1234", highlighting own entries.
func leaderboardLines(entries []server.TopScoreEntry, self string, st styles) []string {
	const width = 28
	out := make([]string, 0, len(entries))
	for i, e := range entries {
		prefix := fmt.Sprintf("%d. %s ", i+1, e.Username)
		suffix := fmt.Sprintf(" %d", e.Score)
		dots := width - len([]rune(prefix)) - len(suffix)
		if dots < 1 {
			dots = 1
		}
		line := prefix + strings.Repeat(".", dots) + suffix
		if e.Username == self {
			line = st.accent.Render(line)
		}
		out = append(out, line)
	}
	return out
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen() {
	remaining := max(int(time.Until(c.state.shutdownAt).Seconds())+1, 0)
	c.drawModal(
		c.styles.title.Render("SERVER SHUTTING DOWN"),
		"",
		"The server is restarting for maintenance.",
		"Please reconnect in a moment.",
		"",
		fmt.Sprintf("Disconnecting in %d seconds...", remaining),
		"",
		c.styles.dim.Render("Press Q to disconnect now"),
	)
}

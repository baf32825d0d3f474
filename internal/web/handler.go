// Package web serves the game to browsers. Each WebSocket gets its own session,
// simulated on the server; frames go out as display lists the page replays on a canvas.
package web

import (
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tomz197/circlestrike/internal/loop/config"
	"github.com/tomz197/circlestrike/internal/loop/server"
)

// Options configures a Handler.
type Options struct {
	MaxPlayers int           // Concurrent sockets allowed; 0 means unlimited
	FrameTime  time.Duration // Tick interval; defaults to the client frame time
	Seed       uint64        // Session seed; 0 picks a random one per player
	Logger     *log.Logger
}

// Handler upgrades requests to WebSockets and runs a game per connection.
type Handler struct {
	hub      server.GameServer
	opts     Options
	upgrader websocket.Upgrader
	active   atomic.Int64
}

func NewHandler(hub server.GameServer, opts Options) *Handler {
	if opts.FrameTime <= 0 {
		opts.FrameTime = config.ClientTargetFrameTime
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Handler{
		hub:  hub,
		opts: opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:    1024,
			WriteBufferSize:   4096,
			EnableCompression: true,
			// The page is served from the same host; any origin may play.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Active returns the number of connected players.
func (h *Handler) Active() int {
	return int(h.active.Load())
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.opts.Logger.Warn("ws upgrade error", "err", err)
		return
	}

	// Check limits after upgrade so the page can show the reason
	if n := h.active.Add(1); h.opts.MaxPlayers > 0 && n > int64(h.opts.MaxPlayers) {
		h.active.Add(-1)
		sendErrorAndClose(ws, "Server full. Please try again later.")
		return
	}
	defer h.active.Add(-1)

	ws.EnableWriteCompression(true)
	conn := NewConn(ws)
	defer conn.Close()

	handle := h.hub.RegisterClient(r.URL.Query().Get("name"))
	defer h.hub.UnregisterClient(handle.ID)

	logger := h.opts.Logger.With("conn", conn.ID)
	logger.Info("player connected", "user", handle.Username, "remote", r.RemoteAddr)

	if err := conn.Send(WelcomeMsg{
		Type:   MsgWelcome,
		ID:     conn.ID,
		Name:   handle.Username,
		Width:  config.ViewWidth,
		Height: config.ViewHeight,
	}); err != nil {
		logger.Warn("welcome failed", "err", err)
		return
	}

	inbox := make(chan ClientMessage, 64)
	go conn.ReadLoop(inbox, logger)

	p := newPlayer(conn, h.hub, handle, h.opts.Seed, logger)
	if err := p.Run(r.Context(), inbox, h.opts.FrameTime); err != nil {
		logger.Debug("player loop ended", "err", err)
	}
	logger.Info("player disconnected", "user", handle.Username)
}

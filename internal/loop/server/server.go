// Package server is the hub shared by all connected players: it tracks who is
// connected, keeps the leaderboard and announces shutdowns. Every player runs
// their own game session; the hub never touches gameplay.
package server

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tomz197/circlestrike/internal/loop/config"
	"github.com/tomz197/circlestrike/internal/loop/session"
)

// GameServer is what a frontend needs from the hub. Frontends depend on this
// rather than on *Server so tests can substitute an in-memory fake.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	ReportResult(clientID int, res session.Result)
	GetSnapshot() *Snapshot
}

// ClientHandle represents a client's connection to the hub.
type ClientHandle struct {
	ID       int
	Username string           // Display name for this client
	EventsCh chan ClientEvent // Closed by the hub when the client unregisters
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventRanked ClientEventType = iota
	EventServerShutdown
)

// ClientEvent is sent from the hub to a single client.
type ClientEvent struct {
	Type ClientEventType
	Rank int // For EventRanked: 1-based leaderboard position
}

// membership is a join (handle set) or a leave (handle nil). Joins and leaves
// share one channel so the hub applies them in the order they were made.
type membership struct {
	handle *ClientHandle
	id     int
}

type clientResult struct {
	clientID int
	result   session.Result
}

// Server owns the client registry and leaderboard. Mutations are serialized
// through Run; readers use the published Snapshot.
type Server struct {
	memberCh chan membership
	resultCh chan clientResult
	done     chan struct{} // Closed when Run returns

	mu       sync.RWMutex
	clients  map[int]*ClientHandle
	draining chan struct{} // Non-nil once Shutdown started; closed when the last client leaves

	nextID   atomic.Int64
	snapshot atomic.Pointer[Snapshot]
	board    *leaderboard
	logger   *log.Logger
}

var _ GameServer = (*Server)(nil)

// NewServer creates a hub. A nil logger discards output.
func NewServer(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		memberCh: make(chan membership, 32),
		resultCh: make(chan clientResult, 64),
		done:     make(chan struct{}),
		clients:  make(map[int]*ClientHandle),
		board:    newLeaderboard(config.LeaderboardSize),
		logger:   logger,
	}
	s.snapshot.Store(&Snapshot{})
	return s
}

// Run applies joins, leaves and results until ctx is cancelled, publishing a
// fresh snapshot after each one. Call it once.
func (s *Server) Run(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			return
		case m := <-s.memberCh:
			if m.handle != nil {
				s.join(m.handle)
			} else {
				s.leave(m.id)
			}
		case r := <-s.resultCh:
			s.recordResult(r)
		}
		s.publish()
	}
}

func (s *Server) join(h *ClientHandle) {
	s.mu.Lock()
	s.clients[h.ID] = h
	s.mu.Unlock()
	s.logger.Info("player joined", "id", h.ID, "user", h.Username)
}

func (s *Server) leave(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.clients[id]
	if !ok {
		return
	}
	close(h.EventsCh)
	delete(s.clients, id)
	s.logger.Info("player left", "id", id, "user", h.Username)

	if s.draining != nil && len(s.clients) == 0 {
		select {
		case <-s.draining:
		default:
			close(s.draining)
		}
	}
}

// recordResult updates the leaderboard and tells the client if it placed.
func (s *Server) recordResult(r clientResult) {
	s.mu.RLock()
	h, ok := s.clients[r.clientID]
	s.mu.RUnlock()
	if !ok {
		return
	}

	rank := s.board.record(h.ID, h.Username, r.result.Score)
	s.logger.Debug("game finished", "user", h.Username, "score", r.result.Score, "rank", rank)
	if rank > 0 {
		notify(h, ClientEvent{Type: EventRanked, Rank: rank})
	}
}

func (s *Server) publish() {
	s.mu.RLock()
	players := len(s.clients)
	s.mu.RUnlock()

	s.snapshot.Store(&Snapshot{
		Players:   players,
		TopScores: s.board.top(),
	})
}

// notify delivers ev unless the client's queue is full.
func notify(h *ClientHandle, ev ClientEvent) {
	select {
	case h.EventsCh <- ev:
	default:
	}
}

// Shutdown tells every client the server is going away and blocks until they
// have all unregistered or timeout passes. Cancel Run's context afterwards.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.Lock()
	if s.draining == nil {
		s.draining = make(chan struct{})
		if len(s.clients) == 0 {
			close(s.draining)
		}
	}
	drained := s.draining
	for _, h := range s.clients {
		notify(h, ClientEvent{Type: EventServerShutdown})
	}
	s.mu.Unlock()

	select {
	case <-drained:
	case <-time.After(timeout):
		s.logger.Warn("shutdown timed out with players still connected")
	}
}

// RegisterClient adds a client under its display name and returns its handle.
// Anonymous clients get a generated guest name. Once Run has returned the
// handle comes back with its event channel already closed.
func (s *Server) RegisterClient(username string) *ClientHandle {
	h := &ClientHandle{
		ID:       int(s.nextID.Add(1)),
		Username: displayName(username),
		EventsCh: make(chan ClientEvent, 16),
	}
	select {
	case s.memberCh <- membership{handle: h}:
	case <-s.done:
		close(h.EventsCh)
	}
	return h
}

// UnregisterClient removes a client and closes its event channel. It is a
// no-op once Run has returned.
func (s *Server) UnregisterClient(clientID int) {
	select {
	case s.memberCh <- membership{id: clientID}:
	case <-s.done:
	}
}

// ReportResult submits a finished game for the leaderboard. Results are dropped
// rather than blocking a frame loop when the hub is backed up.
func (s *Server) ReportResult(clientID int, res session.Result) {
	select {
	case s.resultCh <- clientResult{clientID: clientID, result: res}:
	default:
		s.logger.Warn("dropping game result, hub busy", "id", clientID, "score", res.Score)
	}
}

// GetSnapshot returns the latest published hub state.
func (s *Server) GetSnapshot() *Snapshot {
	return s.snapshot.Load()
}

// displayName trims a username to the display limit, or invents one for guests.
func displayName(username string) string {
	if username == "" {
		return "guest-" + uuid.NewString()[:8]
	}
	r := []rune(username)
	if len(r) > config.MaxUsernameLen {
		r = r[:config.MaxUsernameLen]
	}
	return string(r)
}

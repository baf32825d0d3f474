package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/circlestrike/internal/config"
	"github.com/tomz197/circlestrike/internal/loop/client"
	"github.com/tomz197/circlestrike/internal/loop/server"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"

	hubDrainTimeout = 15 * time.Second
	sshCloseTimeout = 5 * time.Second
)

func main() {
	logger := config.NewLogger(os.Stderr, "ssh")
	if err := run(logger); err != nil {
		logger.Error("ssh server failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *log.Logger) error {
	addr := net.JoinHostPort(config.GetEnv("SSH_HOST", defaultHost), config.GetEnv("SSH_PORT", defaultPort))
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("ssh config", "addr", addr, "hostKeyPath", hostKeyPath)

	// One hub shared by every SSH session
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	hub := server.NewServer(logger.WithPrefix("hub"))
	go hub.Run(hubCtx)

	opts := []ssh.Option{
		wish.WithAddress(addr),
		wish.WithMiddleware(
			gameMiddleware(hub, logger),
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Clicks are tiny writes; don't let Nagle batch them
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("create ssh server: %w", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		serveErr <- s.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-sig:
	}

	// Tell players first, then stop accepting and close what is left
	logger.Info("shutting down, notifying players")
	hub.Shutdown(hubDrainTimeout)
	stopHub()

	ctx, cancel := context.WithTimeout(context.Background(), sshCloseTimeout)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// gameMiddleware runs a terminal client for every session with a PTY.
func gameMiddleware(hub server.GameServer, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}
			logger.Info("new game session", "user", sess.User(), "term", pty.Term,
				"width", pty.Window.Width, "height", pty.Window.Height)

			size := &windowSize{width: pty.Window.Width, height: pty.Window.Height}
			go func() {
				for win := range winCh {
					size.set(win.Width, win.Height)
				}
			}()

			c := client.NewClient(hub, bufio.NewReader(sess), sess, client.ClientOptions{
				TermSizeFunc: size.get,
				Username:     sess.User(),
				Logger:       logger,
			})
			if err := c.Run(); err != nil {
				logger.Error("game error", "user", sess.User(), "err", err)
			}

			logger.Info("session ended", "user", sess.User())
			next(sess)
		}
	}
}

// windowSize follows the PTY size reported by window-change requests.
type windowSize struct {
	mu            sync.RWMutex
	width, height int
}

func (w *windowSize) set(width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.width, w.height = width, height
}

func (w *windowSize) get() (int, int, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.width, w.height, nil
}

package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tomz197/circlestrike/internal/config"
	"github.com/tomz197/circlestrike/internal/loop/server"
	"github.com/tomz197/circlestrike/internal/web"
)

const (
	defaultHost       = "0.0.0.0"
	defaultPort       = "8080"
	defaultMaxPlayers = 64
)

//go:embed index.html
var htmlPage string

func main() {
	logger := config.NewLogger(os.Stderr, "web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	maxPlayers := config.GetEnvInt("WEB_MAX_PLAYERS", defaultMaxPlayers)

	ctx, cancelHub := context.WithCancel(context.Background())
	hub := server.NewServer(logger.WithPrefix("hub"))
	go hub.Run(ctx)

	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})
	mux.Handle("/ws", web.NewHandler(hub, web.Options{
		MaxPlayers: int(maxPlayers),
		Seed:       uint64(config.GetEnvInt("GAME_SEED", 0)),
		Logger:     logger,
	}))

	srv := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting web server", "addr", "http://"+srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	hub.Shutdown(15 * time.Second)

	// Hijacked websocket handlers outlive srv.Shutdown; they may still
	// unregister after this, which the stopped hub ignores.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	cancelHub()
	if err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

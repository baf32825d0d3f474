package main

import (
	"bufio"
	"context"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/circlestrike/internal/config"
	"github.com/tomz197/circlestrike/internal/loop/client"
	"github.com/tomz197/circlestrike/internal/loop/server"
)

func main() {
	// The screen belongs to the game; logs go to stderr.
	logger := config.NewLogger(os.Stderr, "game")

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("failed to enable raw mode", "err", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	gameServer := server.NewServer(logger)
	go gameServer.Run(ctx)

	c := client.NewClient(gameServer, bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Username: os.Getenv("USER"),
		Seed:     uint64(config.GetEnvInt("GAME_SEED", 0)),
		Logger:   logger,
	})
	runErr := c.Run()

	cancel()
	_ = term.Restore(fd, oldState)

	if runErr != nil {
		logger.Error("game error", "err", runErr)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/circlestrike/internal/config"
	"github.com/tomz197/circlestrike/internal/desktop"
	lconfig "github.com/tomz197/circlestrike/internal/loop/config"
	"github.com/tomz197/circlestrike/internal/loop/server"
)

func main() {
	logger := config.NewLogger(os.Stderr, "desktop")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := server.NewServer(logger.WithPrefix("hub"))
	go hub.Run(ctx)

	game := desktop.NewGame(hub, desktop.Options{
		Username: os.Getenv("USER"),
		Seed:     uint64(config.GetEnvInt("GAME_SEED", 0)),
		Logger:   logger,
	})
	defer game.Close()

	ebiten.SetWindowSize(lconfig.ViewWidth*2, lconfig.ViewHeight*2)
	ebiten.SetWindowTitle("circlestrike")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(lconfig.ClientTargetFPS)

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("game error", "err", err)
		os.Exit(1)
	}
}

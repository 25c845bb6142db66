package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/jlkiri/snake-game/pkg/canvas"
	"github.com/jlkiri/snake-game/pkg/config"
	"github.com/jlkiri/snake-game/pkg/game"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	sess := game.NewSession(cfg, game.WithLogger(logger))

	ebiten.SetWindowSize(cfg.CanvasWidth, cfg.CanvasHeight)
	ebiten.SetWindowTitle("Snake")
	if err := ebiten.RunGame(canvas.New(sess, cfg.TickInterval)); err != nil {
		logger.Error("game exited", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/jlkiri/snake-game/pkg/config"
	"github.com/jlkiri/snake-game/pkg/game"
	"github.com/jlkiri/snake-game/pkg/input"
	"github.com/jlkiri/snake-game/pkg/renderer"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	recordDir := flag.String("record", "", "directory to record game snapshots to")
	logPath := flag.String("log", "", "log file; the terminal is used for drawing")
	flag.Parse()

	if err := run(*configPath, *recordDir, *logPath); err != nil {
		fmt.Fprintln(os.Stderr, "snake:", err)
		os.Exit(1)
	}
}

func run(configPath, recordDir, logPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logOut := io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug}))

	sess := game.NewSession(cfg, game.WithLogger(logger))
	render := renderer.NewTerminalRenderer(os.Stdout, sess.Grid())
	render.HideCursor()
	defer render.ShowCursor()
	sess.Subscribe(render.Render)

	if recordDir != "" {
		rec, err := game.NewRecorder(recordDir, sess.ID, logger)
		if err != nil {
			return err
		}
		defer rec.Close()
		sess.Subscribe(rec.Record)
		logger.Info("recording", "path", rec.Path())
	}

	keys := input.NewKeyboardHandler()
	if err := keys.Start(); err != nil {
		return fmt.Errorf("failed to open keyboard: %w", err)
	}
	defer keys.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := sess.Run(ctx, keys.Commands()); err != nil && ctx.Err() == nil {
		return err
	}
	fmt.Println("\n  Thanks for playing!")
	return nil
}

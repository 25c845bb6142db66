package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/jlkiri/snake-game/pkg/config"
	"github.com/jlkiri/snake-game/pkg/game"
	"github.com/jlkiri/snake-game/pkg/renderer"
)

// Longest pause between two frames, so idle stretches in a trace are skipped.
const maxFrameGap = time.Second

func main() {
	dir := flag.String("dir", "records", "directory holding recorded traces")
	file := flag.String("file", "", "trace to play; the newest trace in -dir when empty")
	list := flag.Bool("list", false, "list traces and exit")
	configPath := flag.String("config", "", "YAML config the game was played with")
	speed := flag.Float64("speed", 1, "playback speed multiplier")
	flag.Parse()

	if err := run(*dir, *file, *list, *configPath, *speed); err != nil {
		fmt.Fprintln(os.Stderr, "replay:", err)
		os.Exit(1)
	}
}

func run(dir, file string, list bool, configPath string, speed float64) error {
	if speed <= 0 {
		return fmt.Errorf("speed must be positive, got %v", speed)
	}

	if list || file == "" {
		traces, err := game.ListTraces(dir)
		if err != nil {
			return err
		}
		if list {
			for _, t := range traces {
				fmt.Printf("%s  session %s  %d bytes  %s\n",
					t.Name, t.SessionID, t.Size, t.Time.Format("2006-01-02 15:04:05"))
			}
			return nil
		}
		if len(traces) == 0 {
			return fmt.Errorf("no recordings found in %s", dir)
		}
		file = traces[0].Path
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open trace: %w", err)
	}
	defer f.Close()

	frames, err := game.ReadTrace(f)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	grid := game.NewGrid(cfg.Cols, cfg.Rows, cfg.CanvasWidth, cfg.CanvasHeight)
	render := renderer.NewTerminalRenderer(os.Stdout, grid)
	render.HideCursor()
	defer render.ShowCursor()

	for i, fr := range frames {
		if i > 0 {
			gap := min(fr.Time.Sub(frames[i-1].Time), maxFrameGap)
			select {
			case <-time.After(time.Duration(float64(gap) / speed)):
			case <-ctx.Done():
				return nil
			}
		}
		render.Render(fr.State)
	}
	fmt.Printf("\n  %d frames from %s\n", len(frames), file)
	return nil
}

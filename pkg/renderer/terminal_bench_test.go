package renderer

import (
	"io"
	"testing"

	"github.com/jlkiri/snake-game/pkg/config"
	"github.com/jlkiri/snake-game/pkg/game"
)

func benchState(grid game.Grid, length int) game.GameState {
	body := make([]game.Point, length)
	for i := range body {
		body[i] = grid.ToPixel(i%grid.Cols, i/grid.Cols)
	}
	return game.GameState{Body: body, Food: grid.ToPixel(grid.Cols-1, grid.Rows-1)}
}

// BenchmarkFrame measures building one frame into the reused buffer
func BenchmarkFrame(b *testing.B) {
	grid := game.NewGrid(config.Cols, config.Rows, config.CanvasWidth, config.CanvasHeight)
	r := NewTerminalRenderer(io.Discard, grid)
	st := benchState(grid, 120)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.Frame(st)
	}
}

// BenchmarkRender includes the screen clear and the write
func BenchmarkRender(b *testing.B) {
	grid := game.NewGrid(config.Cols, config.Rows, config.CanvasWidth, config.CanvasHeight)
	r := NewTerminalRenderer(io.Discard, grid)
	st := benchState(grid, 120)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Render(st)
	}
}

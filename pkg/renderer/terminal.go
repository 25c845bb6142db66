package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jlkiri/snake-game/pkg/config"
	"github.com/jlkiri/snake-game/pkg/game"
)

// Glyphs, two columns per cell so cells come out roughly square
const (
	GlyphEmpty = "  "
	GlyphSnake = "[]"
	GlyphFood  = "<>"
)

// GameOverText is shown in place of the board once the snake collides.
const GameOverText = "Press Enter to restart"

// Cell types for the board
const (
	cellEmpty = iota
	cellSnake
	cellFood
)

// TerminalRenderer draws snapshots as text frames.
type TerminalRenderer struct {
	out   io.Writer
	grid  game.Grid
	board [][]int

	cells  [3]string
	frame  lipgloss.Style
	header lipgloss.Style
	help   lipgloss.Style
	banner lipgloss.Style

	buffer strings.Builder
	over   bool
}

// NewTerminalRenderer creates a renderer writing to out. Colors are dropped
// when out is not a terminal.
func NewTerminalRenderer(out io.Writer, grid game.Grid) *TerminalRenderer {
	lr := lipgloss.NewRenderer(out)
	bg := lipgloss.Color(config.ColorBackground)

	// Pre-allocate board to reduce GC pressure
	board := make([][]int, grid.Rows)
	for i := range board {
		board[i] = make([]int, grid.Cols)
	}

	r := &TerminalRenderer{
		out:   out,
		grid:  grid,
		board: board,
		frame: lr.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(config.ColorFood)),
		header: lr.NewStyle().Bold(true).Foreground(lipgloss.Color(config.ColorSnake)),
		help:   lr.NewStyle().Faint(true),
		banner: lr.NewStyle().Bold(true).Foreground(lipgloss.Color(config.ColorText)).Background(bg),
	}
	r.cells[cellEmpty] = lr.NewStyle().Background(bg).Render(GlyphEmpty)
	r.cells[cellSnake] = lr.NewStyle().Background(lipgloss.Color(config.ColorSnake)).
		Foreground(lipgloss.Color(config.ColorSnake)).Render(GlyphSnake)
	r.cells[cellFood] = lr.NewStyle().Background(lipgloss.Color(config.ColorFoodGlow)).
		Foreground(lipgloss.Color(config.ColorFood)).Bold(true).Render(GlyphFood)
	return r
}

// clearScreen clears the terminal using ANSI escape codes
func (r *TerminalRenderer) clearScreen() {
	fmt.Fprint(r.out, "\033[H\033[2J\033[3J")
}

// ShowCursor shows the cursor (call on exit)
func (r *TerminalRenderer) ShowCursor() {
	fmt.Fprint(r.out, "\033[?25h")
}

// HideCursor hides the cursor (call on start)
func (r *TerminalRenderer) HideCursor() {
	fmt.Fprint(r.out, "\033[?25l")
}

// Render draws st. After a collided frame, further collided frames are not
// drawn until a fresh game arrives. Render matches game.Subscriber.
func (r *TerminalRenderer) Render(st game.GameState) {
	if st.Collided && r.over {
		return
	}
	r.over = st.Collided

	r.clearScreen()
	fmt.Fprint(r.out, r.Frame(st))
}

// Frame returns the full text for st without touching the screen.
func (r *TerminalRenderer) Frame(st game.GameState) string {
	r.buffer.Reset()

	r.buffer.WriteString(r.header.Render(fmt.Sprintf("  SNAKE  length %d", len(st.Body))))
	r.buffer.WriteString("\n")

	if st.Collided {
		r.buffer.WriteString(r.frame.Render(r.gameOver()))
	} else {
		r.buffer.WriteString(r.frame.Render(r.boardText(st)))
	}
	r.buffer.WriteString("\n")

	switch {
	case st.Collided:
		r.buffer.WriteString(r.help.Render("  Enter to restart, Q to quit"))
	case st.Paused:
		r.buffer.WriteString(r.help.Render("  PAUSED - press P to continue"))
	default:
		r.buffer.WriteString(r.help.Render("  WASD or arrow keys to move, P to pause, Q to quit"))
	}
	r.buffer.WriteString("\n")
	return r.buffer.String()
}

func (r *TerminalRenderer) boardText(st game.GameState) string {
	for y := range r.board {
		for x := range r.board[y] {
			r.board[y][x] = cellEmpty
		}
	}

	for _, p := range st.Body {
		r.mark(p, cellSnake)
	}
	r.mark(st.Food, cellFood)

	var b strings.Builder
	for y, row := range r.board {
		for _, cell := range row {
			b.WriteString(r.cells[cell])
		}
		if y < len(r.board)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (r *TerminalRenderer) mark(p game.Point, cell int) {
	col, row := r.grid.ToCell(p)
	if row < 0 || row >= len(r.board) || col < 0 || col >= len(r.board[row]) {
		return
	}
	r.board[row][col] = cell
}

func (r *TerminalRenderer) gameOver() string {
	width := r.grid.Cols * len(GlyphEmpty)
	return lipgloss.Place(width, r.grid.Rows, lipgloss.Center, lipgloss.Center, r.banner.Render(GameOverText))
}

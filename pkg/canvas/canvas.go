// Package canvas draws a session onto an ebiten window, the desktop and
// wasm counterpart of the browser canvas.
package canvas

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/jlkiri/snake-game/pkg/config"
	"github.com/jlkiri/snake-game/pkg/game"
)

// Binding ties an ebiten key to a game command
type Binding struct {
	Key     ebiten.Key
	Command game.Command
}

// Bindings mirrors the terminal key map: letter and arrow for each direction.
var Bindings = []Binding{
	{ebiten.KeyW, game.Command{Kind: game.CmdDirection, Dir: game.Up}},
	{ebiten.KeyArrowUp, game.Command{Kind: game.CmdDirection, Dir: game.Up}},
	{ebiten.KeyS, game.Command{Kind: game.CmdDirection, Dir: game.Down}},
	{ebiten.KeyArrowDown, game.Command{Kind: game.CmdDirection, Dir: game.Down}},
	{ebiten.KeyA, game.Command{Kind: game.CmdDirection, Dir: game.Left}},
	{ebiten.KeyArrowLeft, game.Command{Kind: game.CmdDirection, Dir: game.Left}},
	{ebiten.KeyD, game.Command{Kind: game.CmdDirection, Dir: game.Right}},
	{ebiten.KeyArrowRight, game.Command{Kind: game.CmdDirection, Dir: game.Right}},
	{ebiten.KeyEnter, game.Command{Kind: game.CmdRestart}},
	{ebiten.KeyP, game.Command{Kind: game.CmdPause}},
	{ebiten.KeySpace, game.Command{Kind: game.CmdPause}},
	{ebiten.KeyQ, game.Command{Kind: game.CmdQuit}},
	{ebiten.KeyEscape, game.Command{Kind: game.CmdQuit}},
}

// PollKeys returns the commands for keys pressed since the last frame.
func PollKeys() []game.Command {
	var cmds []game.Command
	for _, b := range Bindings {
		if inpututil.IsKeyJustPressed(b.Key) {
			cmds = append(cmds, b.Command)
		}
	}
	return cmds
}

// Canvas implements ebiten.Game. Ebiten's fixed-rate Update drives the
// session, so no ticker or extra goroutine is involved.
type Canvas struct {
	session *game.Session
	grid    game.Grid
	tick    time.Duration
	elapsed time.Duration
	state   game.GameState

	background color.Color
	snake      color.Color
	food       color.Color
	glow       color.Color
	text       color.Color
}

// New wraps session. The session is started on the first Update.
func New(session *game.Session, tick time.Duration) *Canvas {
	c := &Canvas{
		session:    session,
		grid:       session.Grid(),
		tick:       tick,
		state:      session.Snapshot(),
		background: hexColor(config.ColorBackground),
		snake:      hexColor(config.ColorSnake),
		food:       hexColor(config.ColorFood),
		glow:       hexColor(config.ColorFoodGlow),
		text:       hexColor(config.ColorText),
	}
	session.Subscribe(func(st game.GameState) { c.state = st })
	return c
}

// Update handles input and advances the game by whole ticks.
func (c *Canvas) Update() error {
	if !c.session.Running() && !c.state.Collided {
		c.session.Start()
	}

	for _, cmd := range PollKeys() {
		if c.session.Handle(cmd) {
			return ebiten.Termination
		}
	}

	c.elapsed += time.Second / time.Duration(ebiten.TPS())
	for c.elapsed >= c.tick {
		c.elapsed -= c.tick
		c.session.Tick()
	}
	return nil
}

// Draw paints the board, or the restart prompt once the snake has collided.
func (c *Canvas) Draw(screen *ebiten.Image) {
	screen.Fill(c.background)

	if c.state.Collided {
		ebitenutil.DebugPrintAt(screen, "Press Enter to restart", c.grid.ToPixelX(7), c.grid.ToPixelY(15))
		return
	}

	w, h := float32(c.grid.ScaleX), float32(c.grid.ScaleY)
	for _, p := range c.state.Body {
		vector.DrawFilledRect(screen, float32(p.X), float32(p.Y), w, h, c.snake, false)
	}

	// Food gets a soft halo so it stands out from the body
	fx, fy := float32(c.state.Food.X), float32(c.state.Food.Y)
	vector.DrawFilledRect(screen, fx-w/4, fy-h/4, w*1.5, h*1.5, withAlpha(c.glow, 0x50), true)
	vector.DrawFilledRect(screen, fx, fy, w, h, c.food, false)

	if c.state.Paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED", c.grid.ToPixelX(1), c.grid.ToPixelY(1))
	}
}

// Layout keeps the logical canvas size regardless of the window size.
func (c *Canvas) Layout(outsideWidth, outsideHeight int) (int, int) {
	return c.grid.Width, c.grid.Height
}

func hexColor(s string) color.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.White
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func withAlpha(c color.Color, a uint8) color.Color {
	r, g, b, _ := c.RGBA()
	// Premultiplied, as color.RGBA expects
	scale := uint32(a)
	return color.RGBA{
		R: uint8((r >> 8) * scale / 0xff),
		G: uint8((g >> 8) * scale / 0xff),
		B: uint8((b >> 8) * scale / 0xff),
		A: a,
	}
}

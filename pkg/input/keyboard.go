package input

import (
	"sync"

	"github.com/eiannone/keyboard"

	"github.com/jlkiri/snake-game/pkg/game"
)

// KeyboardHandler handles keyboard input
type KeyboardHandler struct {
	inputChan chan KeyInput
	done      chan struct{}
	stopOnce  sync.Once
}

// KeyInput represents a keyboard input event
type KeyInput struct {
	Char rune
	Key  keyboard.Key
}

// NewKeyboardHandler creates a new keyboard input handler
func NewKeyboardHandler() *KeyboardHandler {
	return &KeyboardHandler{
		inputChan: make(chan KeyInput),
		done:      make(chan struct{}),
	}
}

// Start puts the terminal in raw mode and begins listening for keys
func (h *KeyboardHandler) Start() error {
	if err := keyboard.Open(); err != nil {
		return err
	}

	go func() {
		defer close(h.inputChan)
		for {
			char, key, err := keyboard.GetKey()
			if err != nil {
				return
			}
			select {
			case h.inputChan <- KeyInput{Char: char, Key: key}:
			case <-h.done:
				return
			}
		}
	}()

	return nil
}

// Stop restores the terminal. Later calls do nothing.
func (h *KeyboardHandler) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
		keyboard.Close()
	})
}

// GetInputChan returns the input channel. It is closed when the reader stops.
func (h *KeyboardHandler) GetInputChan() <-chan KeyInput {
	return h.inputChan
}

// Commands translates raw keys into game commands until the input channel
// closes. Unbound keys are dropped.
func (h *KeyboardHandler) Commands() <-chan game.Command {
	out := make(chan game.Command)
	go func() {
		defer close(out)
		for in := range h.inputChan {
			if cmd, ok := ParseCommand(in); ok {
				select {
				case out <- cmd:
				case <-h.done:
					return
				}
			}
		}
	}()
	return out
}

// ParseCommand maps a key to a command
func ParseCommand(input KeyInput) (game.Command, bool) {
	if dir, ok := ParseDirection(input); ok {
		return game.Command{Kind: game.CmdDirection, Dir: dir}, true
	}
	switch {
	case IsQuit(input):
		return game.Command{Kind: game.CmdQuit}, true
	case IsRestart(input):
		return game.Command{Kind: game.CmdRestart}, true
	case IsPause(input):
		return game.Command{Kind: game.CmdPause}, true
	}
	return game.Command{}, false
}

// ParseDirection parses a key input into a direction
func ParseDirection(input KeyInput) (dir game.Direction, isValid bool) {
	// Handle arrow keys
	switch input.Key {
	case keyboard.KeyArrowUp:
		return game.Up, true
	case keyboard.KeyArrowDown:
		return game.Down, true
	case keyboard.KeyArrowLeft:
		return game.Left, true
	case keyboard.KeyArrowRight:
		return game.Right, true
	}

	// Handle WASD keys
	switch input.Char {
	case 'w', 'W':
		return game.Up, true
	case 's', 'S':
		return game.Down, true
	case 'a', 'A':
		return game.Left, true
	case 'd', 'D':
		return game.Right, true
	}

	return game.Direction{}, false
}

// IsQuit checks if the input is a quit command
func IsQuit(input KeyInput) bool {
	return input.Char == 'q' || input.Char == 'Q' ||
		input.Key == keyboard.KeyEsc || input.Key == keyboard.KeyCtrlC
}

// IsRestart checks if the input is a restart command
func IsRestart(input KeyInput) bool {
	return input.Key == keyboard.KeyEnter
}

// IsPause checks if the input is a pause command
func IsPause(input KeyInput) bool {
	return input.Char == 'p' || input.Char == 'P' || input.Char == ' ' || input.Key == keyboard.KeySpace
}

// ParseKeyName maps a key name, as terminal UI libraries report it
// ("up", "w", "enter", "ctrl+c"), to a command
func ParseKeyName(name string) (game.Command, bool) {
	switch name {
	case "w", "W", "up":
		return game.Command{Kind: game.CmdDirection, Dir: game.Up}, true
	case "s", "S", "down":
		return game.Command{Kind: game.CmdDirection, Dir: game.Down}, true
	case "a", "A", "left":
		return game.Command{Kind: game.CmdDirection, Dir: game.Left}, true
	case "d", "D", "right":
		return game.Command{Kind: game.CmdDirection, Dir: game.Right}, true
	case "enter":
		return game.Command{Kind: game.CmdRestart}, true
	case "p", "P", " ", "space":
		return game.Command{Kind: game.CmdPause}, true
	case "q", "Q", "esc", "ctrl+c":
		return game.Command{Kind: game.CmdQuit}, true
	}
	return game.Command{}, false
}

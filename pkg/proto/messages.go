package proto

import (
	"github.com/jlkiri/snake-game/pkg/game"
)

// Server message types
const (
	TypeConfig = "config"
	TypeState  = "state"
)

// Client actions
const (
	ActionUp      = "up"
	ActionDown    = "down"
	ActionLeft    = "left"
	ActionRight   = "right"
	ActionRestart = "restart"
	ActionPause   = "pause"
)

// ServerMessage is sent to clients: one config frame on connect, then a
// state frame after every change.
type ServerMessage struct {
	Type    string           `json:"type"`
	Session string           `json:"session,omitempty"`
	Config  *game.GameConfig `json:"config,omitempty"`
	State   *game.GameState  `json:"state,omitempty"`
}

// ClientMessage carries one player action.
type ClientMessage struct {
	Action string `json:"action"`
}

// NewConfigMessage wraps the board description.
func NewConfigMessage(sessionID string, cfg game.GameConfig) ServerMessage {
	return ServerMessage{Type: TypeConfig, Session: sessionID, Config: &cfg}
}

// NewStateMessage wraps a snapshot.
func NewStateMessage(st game.GameState) ServerMessage {
	return ServerMessage{Type: TypeState, State: &st}
}

// ToCommand maps a client action to a session command. Unknown actions,
// including quit, are not accepted from the network.
func ToCommand(action string) (game.Command, bool) {
	switch action {
	case ActionUp:
		return game.Command{Kind: game.CmdDirection, Dir: game.Up}, true
	case ActionDown:
		return game.Command{Kind: game.CmdDirection, Dir: game.Down}, true
	case ActionLeft:
		return game.Command{Kind: game.CmdDirection, Dir: game.Left}, true
	case ActionRight:
		return game.Command{Kind: game.CmdDirection, Dir: game.Right}, true
	case ActionRestart:
		return game.Command{Kind: game.CmdRestart}, true
	case ActionPause:
		return game.Command{Kind: game.CmdPause}, true
	}
	return game.Command{}, false
}

// FromCommand is the inverse of ToCommand.
func FromCommand(cmd game.Command) (string, bool) {
	switch cmd.Kind {
	case game.CmdDirection:
		switch cmd.Dir {
		case game.Up:
			return ActionUp, true
		case game.Down:
			return ActionDown, true
		case game.Left:
			return ActionLeft, true
		case game.Right:
			return ActionRight, true
		}
	case game.CmdRestart:
		return ActionRestart, true
	case game.CmdPause:
		return ActionPause, true
	}
	return "", false
}

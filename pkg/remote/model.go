package remote

import (
	"bytes"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"

	"github.com/jlkiri/snake-game/pkg/game"
	"github.com/jlkiri/snake-game/pkg/input"
	"github.com/jlkiri/snake-game/pkg/proto"
	"github.com/jlkiri/snake-game/pkg/renderer"
)

type serverMsg proto.ServerMessage

type closedMsg struct{ err error }

type sendErrMsg struct{ err error }

// Model is the bubbletea program for a remote game.
type Model struct {
	client   *Client
	renderer *renderer.TerminalRenderer
	session  string
	state    game.GameState
	err      error
}

// NewModel wraps a connected client.
func NewModel(client *Client) Model {
	return Model{client: client}
}

// Err reports why the program stopped, if it was not the player quitting.
func (m Model) Err() error {
	return m.err
}

// State returns the last snapshot received.
func (m Model) State() game.GameState {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return waitForMessage(m.client)
}

func waitForMessage(c *Client) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-c.Messages()
		if !ok {
			return closedMsg{err: c.Err()}
		}
		return serverMsg(msg)
	}
}

func send(c *Client, cmd game.Command) tea.Cmd {
	return func() tea.Msg {
		if err := c.Send(cmd); err != nil {
			return sendErrMsg{err: err}
		}
		return nil
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, ok := input.ParseKeyName(msg.String())
		if !ok {
			return m, nil
		}
		if cmd.Kind == game.CmdQuit {
			return m, tea.Quit
		}
		return m, send(m.client, cmd)
	case serverMsg:
		switch msg.Type {
		case proto.TypeConfig:
			if msg.Config != nil {
				grid := game.NewGrid(msg.Config.Cols, msg.Config.Rows, msg.Config.Width, msg.Config.Height)
				// Frames are returned from View, never written directly
				m.renderer = renderer.NewTerminalRenderer(&bytes.Buffer{}, grid)
				m.session = msg.Session
			}
		case proto.TypeState:
			if msg.State != nil {
				m.state = *msg.State
			}
		}
		return m, waitForMessage(m.client)
	case closedMsg:
		if msg.err != nil && !websocket.IsCloseError(msg.err, websocket.CloseNormalClosure) {
			m.err = msg.err
		}
		return m, tea.Quit
	case sendErrMsg:
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	if m.renderer == nil {
		return "connecting...\n"
	}
	return m.renderer.Frame(m.state) + "  session " + m.session + "\n"
}

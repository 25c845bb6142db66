// Package remote plays a game hosted by the web server from a terminal.
package remote

import (
	"context"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/jlkiri/snake-game/pkg/game"
	"github.com/jlkiri/snake-game/pkg/proto"
)

// Client is a websocket connection to the game server.
type Client struct {
	conn     *websocket.Conn
	incoming chan proto.ServerMessage
	writeMu  sync.Mutex

	done      chan struct{}
	closeOnce sync.Once
	stopped   chan struct{}

	errMu sync.Mutex
	err   error
}

// Dial connects to a /ws endpoint, e.g. ws://localhost:8080/ws.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}

	c := &Client{
		conn:     conn,
		incoming: make(chan proto.ServerMessage, 16),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// Messages yields server frames; it is closed when the connection ends.
func (c *Client) Messages() <-chan proto.ServerMessage {
	return c.incoming
}

// Err returns the error that ended the connection, once Messages is closed.
func (c *Client) Err() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.err
}

// Send forwards a command. Commands with no wire form, such as quit, are
// dropped.
func (c *Client) Send(cmd game.Command) error {
	action, ok := proto.FromCommand(cmd)
	if !ok {
		return nil
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteJSON(proto.ClientMessage{Action: action}); err != nil {
		return fmt.Errorf("failed to send %s: %w", action, err)
	}
	return nil
}

// Close ends the connection. Messages is closed even if nobody is reading it.
func (c *Client) Close() error {
	c.closeOnce.Do(func() { close(c.done) })

	c.writeMu.Lock()
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
	c.writeMu.Unlock()
	return c.conn.Close()
}

func (c *Client) readLoop() {
	defer close(c.stopped)
	defer close(c.incoming)
	for {
		var msg proto.ServerMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			c.errMu.Lock()
			c.err = err
			c.errMu.Unlock()
			return
		}
		select {
		case c.incoming <- msg:
		case <-c.done:
			return
		}
	}
}

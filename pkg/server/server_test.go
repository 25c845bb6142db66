package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlkiri/snake-game/pkg/config"
	"github.com/jlkiri/snake-game/pkg/game"
	"github.com/jlkiri/snake-game/pkg/proto"
)

func newTestServer(t *testing.T, tick time.Duration) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.TickInterval = tick
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv := New(cfg, logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) proto.ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg proto.ServerMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestServesCanvasPage(t *testing.T) {
	ts := newTestServer(t, time.Hour)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "<canvas")
}

func TestWebSocketHandshake(t *testing.T) {
	ts := newTestServer(t, time.Hour)
	conn := dial(t, ts)

	msg := readMessage(t, conn)
	require.Equal(t, proto.TypeConfig, msg.Type)
	require.NotNil(t, msg.Config)
	assert.NotEmpty(t, msg.Session)
	assert.Equal(t, 30, msg.Config.Cols)
	assert.Equal(t, 20, msg.Config.CellWidth)

	msg = readMessage(t, conn)
	require.Equal(t, proto.TypeState, msg.Type)
	require.NotNil(t, msg.State)
	assert.Len(t, msg.State.Body, 6)
	assert.Equal(t, game.Right, msg.State.Direction)
}

func TestWebSocketActionChangesDirection(t *testing.T) {
	ts := newTestServer(t, time.Hour) // no ticks during the test
	conn := dial(t, ts)
	readMessage(t, conn) // config
	readMessage(t, conn) // initial state

	require.NoError(t, conn.WriteJSON(proto.ClientMessage{Action: "bogus"}))
	require.NoError(t, conn.WriteJSON(proto.ClientMessage{Action: proto.ActionLeft}))
	require.NoError(t, conn.WriteJSON(proto.ClientMessage{Action: proto.ActionDown}))

	// Unknown actions are dropped; the reversal and the turn each produce a state
	msg := readMessage(t, conn)
	assert.Equal(t, game.Right, msg.State.Direction, "reversal rejected")
	msg = readMessage(t, conn)
	assert.Equal(t, game.Down, msg.State.Direction)
}

func TestWebSocketTicks(t *testing.T) {
	ts := newTestServer(t, 5*time.Millisecond)
	conn := dial(t, ts)
	readMessage(t, conn)
	first := readMessage(t, conn)

	next := readMessage(t, conn)
	assert.NotEqual(t, first.State.Head(), next.State.Head())
}

func TestSessionsAreIndependent(t *testing.T) {
	ts := newTestServer(t, time.Hour)
	a := dial(t, ts)
	b := dial(t, ts)

	ca := readMessage(t, a)
	cb := readMessage(t, b)
	assert.NotEqual(t, ca.Session, cb.Session)
}

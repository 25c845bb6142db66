package server

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/jlkiri/snake-game/pkg/config"
	"github.com/jlkiri/snake-game/pkg/game"
	"github.com/jlkiri/snake-game/pkg/proto"
)

//go:embed static
var staticFiles embed.FS

// Server plays one independent game per websocket connection and serves the
// browser canvas that draws it.
type Server struct {
	cfg      config.Config
	log      *slog.Logger
	upgrader websocket.Upgrader
	options  []game.SessionOption
}

// New creates a server. Extra session options are applied to every game and
// are shared between connections, so they must not carry per-game state such
// as a FoodSpawner.
func New(cfg config.Config, logger *slog.Logger, opts ...game.SessionOption) *Server {
	return &Server{
		cfg: cfg,
		log: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for development
			},
		},
		options: append([]game.SessionOption{game.WithLogger(logger)}, opts...),
	}
}

// Handler routes / to the static page and /ws to the game socket.
func (s *Server) Handler() http.Handler {
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err) // embedded path is fixed at compile time
	}

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.FS(static)))
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	sess := game.NewSession(s.cfg, s.options...)
	log := s.log.With("session", sess.ID, "remote", r.RemoteAddr)
	log.Info("client connected")

	// Mutex to protect concurrent writes to the WebSocket connection
	var writeMu sync.Mutex
	safeWriteJSON := func(v any) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(v)
	}

	if err := safeWriteJSON(proto.NewConfigMessage(sess.ID, sess.Config())); err != nil {
		log.Warn("failed to send config", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	var writeErr error
	sess.Subscribe(func(st game.GameState) {
		if writeErr != nil {
			return
		}
		if err := safeWriteJSON(proto.NewStateMessage(st)); err != nil {
			writeErr = err
			cancel()
		}
	})

	commands := make(chan game.Command)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return readCommands(ctx, conn, commands, log)
	})
	g.Go(func() error {
		return sess.Run(ctx, commands)
	})
	g.Go(func() error {
		// Unblocks the reader once anything else has stopped
		<-ctx.Done()
		return conn.Close()
	})

	err = g.Wait()
	switch {
	case writeErr != nil:
		log.Warn("client write failed", "error", writeErr)
	case err == nil, errors.Is(err, context.Canceled),
		websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
		log.Info("client disconnected")
	default:
		log.Warn("client connection ended", "error", err)
	}
}

func readCommands(ctx context.Context, conn *websocket.Conn, commands chan<- game.Command, log *slog.Logger) error {
	for {
		var msg proto.ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return err
		}

		cmd, ok := proto.ToCommand(msg.Action)
		if !ok {
			log.Debug("ignoring unknown action", "action", msg.Action)
			continue
		}
		select {
		case commands <- cmd:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

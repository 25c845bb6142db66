package game

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jlkiri/snake-game/pkg/config"
)

// CommandKind is a player intent, independent of the input device.
type CommandKind int

const (
	CmdDirection CommandKind = iota + 1
	CmdRestart
	CmdPause
	CmdQuit
)

// Command is fed to a Session by an input handler.
type Command struct {
	Kind CommandKind
	Dir  Direction
}

// Session owns one game at a time: its store, its move timer and the
// observers that follow it across restarts. A Session is not safe for
// concurrent use; drive it from one goroutine via Run, or call Tick and
// Handle from a single frame loop.
type Session struct {
	ID string

	grid    Grid
	tick    time.Duration
	spawner *FoodSpawner
	log     *slog.Logger

	store     *Store
	storeSub  *Subscription
	observers []Subscriber
	last      GameState

	running bool
	paused  bool
	ticker  *time.Ticker
	looping bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSpawner replaces the clock-seeded food spawner.
func WithSpawner(spawner *FoodSpawner) SessionOption {
	return func(s *Session) { s.spawner = spawner }
}

// WithLogger sets the logger. The default discards.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) { s.log = logger }
}

// NewSession builds a session for cfg. The game does not move until Start
// or Run is called.
func NewSession(cfg config.Config, opts ...SessionOption) *Session {
	grid := NewGrid(cfg.Cols, cfg.Rows, cfg.CanvasWidth, cfg.CanvasHeight)
	s := &Session{
		ID:   uuid.NewString(),
		grid: grid,
		tick: cfg.TickInterval,
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.spawner == nil {
		s.spawner = NewFoodSpawner(grid)
	}
	s.log = s.log.With("session", s.ID)
	s.attach(NewStore(grid, s.spawner))
	return s
}

// Grid returns the session geometry.
func (s *Session) Grid() Grid {
	return s.grid
}

// Config describes the board and tick rate for clients.
func (s *Session) Config() GameConfig {
	c := s.grid.Config()
	c.TickInterval = int(s.tick.Milliseconds())
	return c
}

// Subscribe adds an observer. Observers survive restarts.
func (s *Session) Subscribe(fn Subscriber) {
	s.observers = append(s.observers, fn)
}

// Snapshot returns the most recent state.
func (s *Session) Snapshot() GameState {
	return s.last
}

// Running reports whether moves are being accepted.
func (s *Session) Running() bool {
	return s.running
}

// Start begins accepting moves and publishes the current state.
func (s *Session) Start() {
	s.running = true
	s.startTicker()
	s.log.Debug("session started")
	s.publish(s.last)
}

// Stop halts moves. The current game stays as it is.
func (s *Session) Stop() {
	s.running = false
	s.stopTicker()
}

// Restart discards the current game and starts a fresh one.
func (s *Session) Restart() {
	if s.storeSub != nil {
		s.store.Unsubscribe(s.storeSub)
	}
	s.attach(NewStore(s.grid, s.spawner))
	s.paused = false
	s.log.Debug("session restarted")
	s.Start()
}

// Tick dispatches one MOVE unless the game is stopped, paused or over.
func (s *Session) Tick() {
	if !s.running || s.paused || s.last.Collided {
		return
	}
	s.store.Dispatch(MoveAction())
}

// Handle applies a command and reports whether the player asked to quit.
// Restart is only honoured once the snake has collided; direction and pause
// input is ignored from then on.
func (s *Session) Handle(cmd Command) (quit bool) {
	switch cmd.Kind {
	case CmdQuit:
		return true
	case CmdRestart:
		if s.last.Collided {
			s.Restart()
		}
	case CmdDirection:
		if s.running && !s.last.Collided {
			s.store.Dispatch(ChangeDir(cmd.Dir))
		}
	case CmdPause:
		if s.running && !s.last.Collided {
			s.paused = !s.paused
			s.last.Paused = s.paused
			s.publish(s.last)
		}
	}
	return false
}

// Run starts the session and serves ticks and commands until ctx is done,
// commands is closed, or a quit command arrives.
func (s *Session) Run(ctx context.Context, commands <-chan Command) error {
	s.looping = true
	defer func() { s.looping = false }()

	s.Start()
	defer s.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd, ok := <-commands:
			if !ok {
				return nil
			}
			if s.Handle(cmd) {
				return nil
			}
		case <-s.tickChan():
			s.Tick()
		}
	}
}

func (s *Session) attach(store *Store) {
	s.store = store
	s.last = store.Snapshot()
	s.storeSub = store.Subscribe(s.onChange)
}

func (s *Session) onChange(st GameState) {
	st.Paused = s.paused
	s.last = st

	if st.Collided {
		s.stopTicker()
		s.store.Unsubscribe(s.storeSub)
		s.storeSub = nil
		s.log.Debug("snake collided", "head", st.Head(), "length", len(st.Body))
	} else if st.AteFood {
		s.log.Debug("food eaten", "length", len(st.Body), "food", st.Food)
	}
	s.publish(st)
}

func (s *Session) publish(st GameState) {
	for _, fn := range s.observers {
		fn(st)
	}
}

// The ticker only exists while Run owns the loop; frame-driven callers tick
// themselves.
func (s *Session) startTicker() {
	if !s.looping || s.ticker != nil {
		return
	}
	s.ticker = time.NewTicker(s.tick)
}

func (s *Session) stopTicker() {
	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	s.ticker = nil
}

func (s *Session) tickChan() <-chan time.Time {
	if s.ticker == nil {
		return nil
	}
	return s.ticker.C
}

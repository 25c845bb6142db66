package game

import "github.com/jlkiri/snake-game/pkg/config"

// Subscriber receives a snapshot after every dispatch.
type Subscriber func(GameState)

// Subscription identifies a registered subscriber for Unsubscribe.
type Subscription struct {
	fn Subscriber
}

// state is the store's working copy; body is mutated in place by MOVE.
type state struct {
	body      *Body
	direction Direction
	food      Point
	collided  bool
	ateFood   bool
}

// Store holds one game's state, reduces actions into it and notifies
// subscribers synchronously, in subscription order.
type Store struct {
	grid        Grid
	spawner     *FoodSpawner
	state       state
	subscribers []*Subscription
}

// InitialBody returns the starting snake: config.StartLength cells on
// config.StartRow, tail at column 0.
func InitialBody(grid Grid) []Point {
	points := make([]Point, config.StartLength)
	for i := range points {
		points[i] = grid.ToPixel(i, config.StartRow)
	}
	return points
}

// NewStore creates a store holding a fresh game heading right.
func NewStore(grid Grid, spawner *FoodSpawner) *Store {
	return NewStoreWithState(grid, spawner, GameState{
		Body:      InitialBody(grid),
		Direction: Right,
		Food:      spawner.Spawn(),
	})
}

// NewStoreWithState creates a store from an arbitrary starting snapshot.
func NewStoreWithState(grid Grid, spawner *FoodSpawner, initial GameState) *Store {
	return &Store{
		grid:    grid,
		spawner: spawner,
		state: state{
			body:      NewBody(initial.Body...),
			direction: initial.Direction,
			food:      initial.Food,
			collided:  initial.Collided,
		},
	}
}

// Dispatch reduces action into the state, then notifies every subscriber.
func (s *Store) Dispatch(action Action) {
	s.state = s.reduce(s.state, action)

	snapshot := s.Snapshot()
	subscribers := append([]*Subscription(nil), s.subscribers...)
	for _, sub := range subscribers {
		sub.fn(snapshot)
	}
}

func (s *Store) reduce(st state, action Action) state {
	switch action.Type {
	case ActionChangeDir:
		st.direction = SameOrOpposite(st.direction, action.Payload)
		return st
	case ActionMove:
		step := NextSnake(s.grid, st.body, st.food, s.grid.Move(st.direction))
		st.collided = step.Collided
		st.ateFood = step.AteFood
		if step.AteFood {
			st.food = s.spawner.Spawn()
		}
		return st
	default:
		return st
	}
}

// Subscribe registers fn and returns the handle that removes it.
func (s *Store) Subscribe(fn Subscriber) *Subscription {
	sub := &Subscription{fn: fn}
	s.subscribers = append(s.subscribers, sub)
	return sub
}

// Unsubscribe removes sub. It is safe to call from inside a notification;
// the current round still completes with the subscribers it started with.
func (s *Store) Unsubscribe(sub *Subscription) {
	kept := s.subscribers[:0:0]
	for _, other := range s.subscribers {
		if other != sub {
			kept = append(kept, other)
		}
	}
	s.subscribers = kept
}

// Snapshot copies the current state.
func (s *Store) Snapshot() GameState {
	return GameState{
		Body:      s.state.body.Points(),
		Direction: s.state.direction,
		Food:      s.state.food,
		Collided:  s.state.collided,
		AteFood:   s.state.ateFood,
	}
}

// Grid returns the geometry the store moves on.
func (s *Store) Grid() Grid {
	return s.grid
}

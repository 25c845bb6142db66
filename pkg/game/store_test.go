package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, initial GameState) *Store {
	t.Helper()
	g := testGrid()
	return NewStoreWithState(g, NewFoodSpawnerWithRand(g, rand.New(rand.NewPCG(3, 4))), initial)
}

func TestNewStoreInitialState(t *testing.T) {
	g := testGrid()
	s := NewStore(g, NewFoodSpawnerWithRand(g, rand.New(rand.NewPCG(1, 1))))
	st := s.Snapshot()

	assert.Equal(t, cells([2]int{0, 10}, [2]int{1, 10}, [2]int{2, 10}, [2]int{3, 10}, [2]int{4, 10}, [2]int{5, 10}), st.Body)
	assert.Equal(t, Right, st.Direction)
	assert.False(t, st.Collided)
	assert.Zero(t, st.Food.X%c)
	assert.Zero(t, st.Food.Y%c)
}

func TestStoreMoveEndToEnd(t *testing.T) {
	s := newTestStore(t, GameState{
		Body:      InitialBody(testGrid()),
		Direction: Right,
		Food:      Point{X: 20 * c, Y: 20 * c},
	})

	s.Dispatch(MoveAction())
	st := s.Snapshot()

	require.Len(t, st.Body, 6)
	assert.Equal(t, Point{X: 6 * c, Y: 10 * c}, st.Head())
	assert.NotContains(t, st.Body, Point{X: 0, Y: 10 * c})
	assert.False(t, st.Collided)
	assert.False(t, st.AteFood)
	assert.Equal(t, Point{X: 20 * c, Y: 20 * c}, st.Food, "food is kept when not eaten")
}

func TestStoreMoveEatsAndRespawns(t *testing.T) {
	food := Point{X: 6 * c, Y: 10 * c}
	s := newTestStore(t, GameState{Body: InitialBody(testGrid()), Direction: Right, Food: food})

	// Same seed as newTestStore: the first spawn is the new food
	g := testGrid()
	expected := NewFoodSpawnerWithRand(g, rand.New(rand.NewPCG(3, 4))).Spawn()

	s.Dispatch(MoveAction())
	st := s.Snapshot()

	assert.True(t, st.AteFood)
	assert.Len(t, st.Body, 7)
	assert.Equal(t, food, st.Head())
	assert.Equal(t, expected, st.Food)
}

func TestStoreChangeDir(t *testing.T) {
	s := newTestStore(t, GameState{Body: InitialBody(testGrid()), Direction: Right})

	s.Dispatch(ChangeDir(Left))
	assert.Equal(t, Right, s.Snapshot().Direction, "reversal is rejected")

	s.Dispatch(ChangeDir(Right))
	assert.Equal(t, Right, s.Snapshot().Direction)

	s.Dispatch(ChangeDir(Up))
	assert.Equal(t, Up, s.Snapshot().Direction)

	before := s.Snapshot()
	s.Dispatch(ChangeDir(Down))
	after := s.Snapshot()
	assert.Equal(t, Up, after.Direction)
	assert.Equal(t, before.Body, after.Body, "direction changes never move the snake")
}

func TestStoreUnknownActionIsNoop(t *testing.T) {
	s := newTestStore(t, GameState{Body: InitialBody(testGrid()), Direction: Down, Food: Point{X: c}})
	before := s.Snapshot()

	calls := 0
	s.Subscribe(func(GameState) { calls++ })
	s.Dispatch(Action{Type: ActionType(99), Payload: Up})

	assert.Equal(t, before, s.Snapshot())
	assert.Equal(t, 1, calls, "subscribers hear about every dispatch")
}

func TestStoreCollision(t *testing.T) {
	s := newTestStore(t, GameState{
		Body:      cells([2]int{2, 1}, [2]int{1, 1}, [2]int{1, 0}, [2]int{0, 0}, [2]int{0, 1}),
		Direction: Right,
		Food:      Point{X: 10 * c, Y: 10 * c},
	})

	s.Dispatch(MoveAction())
	assert.True(t, s.Snapshot().Collided)
}

func TestStoreNotifiesInOrder(t *testing.T) {
	s := newTestStore(t, GameState{Body: InitialBody(testGrid()), Direction: Right})

	var order []int
	for i := 0; i < 3; i++ {
		s.Subscribe(func(GameState) { order = append(order, i) })
	}
	s.Dispatch(MoveAction())
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	s := newTestStore(t, GameState{Body: InitialBody(testGrid()), Direction: Right})

	var got GameState
	s.Subscribe(func(st GameState) { got = st })
	s.Dispatch(MoveAction())

	got.Body[0] = Point{X: -1, Y: -1}
	assert.NotEqual(t, got.Body[0], s.Snapshot().Body[0])
}

func TestStoreSelfUnsubscribe(t *testing.T) {
	s := newTestStore(t, GameState{Body: InitialBody(testGrid()), Direction: Right})

	var first, second int
	var sub *Subscription
	sub = s.Subscribe(func(GameState) {
		first++
		s.Unsubscribe(sub)
	})
	s.Subscribe(func(GameState) { second++ })

	s.Dispatch(MoveAction())
	s.Dispatch(MoveAction())

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second, "later subscribers still run in the round the removal happened")
}

func TestStoreUnsubscribeUnknownIsHarmless(t *testing.T) {
	s := newTestStore(t, GameState{Body: InitialBody(testGrid()), Direction: Right})
	calls := 0
	s.Subscribe(func(GameState) { calls++ })

	s.Unsubscribe(&Subscription{})
	s.Dispatch(MoveAction())
	assert.Equal(t, 1, calls)
}

func TestStoreRespawnMayLandOnSnake(t *testing.T) {
	g := testGrid()
	// Every draw is 0, so every spawn is the top-left cell
	spawner := NewFoodSpawnerWithRand(g, rand.New(fixedSource(0)))
	s := NewStoreWithState(g, spawner, GameState{
		Body:      cells([2]int{0, 0}, [2]int{0, 1}),
		Direction: Right,
		Food:      Point{X: c, Y: c},
	})

	s.Dispatch(MoveAction())
	st := s.Snapshot()

	assert.True(t, st.AteFood)
	assert.False(t, st.Collided)
	require.Len(t, st.Body, 3)
	assert.Equal(t, Point{X: 0, Y: 0}, st.Food)
	assert.Contains(t, st.Body, st.Food)
}

package game

// Point is a pixel-space position. Positions produced by the game are always
// multiples of the cell size.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Direction is a unit vector, scaled by the cell size when applied.
type Direction struct {
	X int `json:"x"`
	Y int `json:"y"`
}

var (
	Up    = Direction{X: 0, Y: -1}
	Down  = Direction{X: 0, Y: 1}
	Left  = Direction{X: -1, Y: 0}
	Right = Direction{X: 1, Y: 0}
)

// Opposite returns the reversed vector.
func (d Direction) Opposite() Direction {
	return Direction{X: -d.X, Y: -d.Y}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// ActionType identifies a reducer action
type ActionType int

const (
	ActionChangeDir ActionType = iota + 1
	ActionMove
)

// Action is dispatched into a Store. Payload is only read by ActionChangeDir.
type Action struct {
	Type    ActionType
	Payload Direction
}

// ChangeDir builds a direction change action.
func ChangeDir(d Direction) Action {
	return Action{Type: ActionChangeDir, Payload: d}
}

// MoveAction builds a tick action.
func MoveAction() Action {
	return Action{Type: ActionMove}
}

// GameState is a read-only snapshot of a game. Body is ordered tail first,
// head last, and is a copy owned by the receiver.
type GameState struct {
	Body      []Point   `json:"body"`
	Direction Direction `json:"direction"`
	Food      Point     `json:"food"`
	Collided  bool      `json:"collided"`
	AteFood   bool      `json:"ateFood"`
	Paused    bool      `json:"paused"`
}

// Head returns the last body segment.
func (s GameState) Head() Point {
	if len(s.Body) == 0 {
		return Point{}
	}
	return s.Body[len(s.Body)-1]
}

// GameConfig describes the board to clients that draw it
type GameConfig struct {
	Cols         int `json:"cols"`
	Rows         int `json:"rows"`
	Width        int `json:"width"`
	Height       int `json:"height"`
	CellWidth    int `json:"cellWidth"`
	CellHeight   int `json:"cellHeight"`
	TickInterval int `json:"tickInterval"` // milliseconds
}

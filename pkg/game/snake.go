package game

// Step is the outcome of advancing the snake by one move.
type Step struct {
	Head     Point
	Collided bool
	AteFood  bool
}

// NextSnake moves body one step in place. Collision is checked against the
// body before the new head is added, tail included. The tail is dropped
// unless the new head lands on food.
func NextSnake(grid Grid, body *Body, food Point, move MoveFunc) Step {
	head := grid.Normalize(move(body.Head()))

	step := Step{
		Head:     head,
		Collided: body.Contains(head),
		AteFood:  head == food,
	}

	body.PushBack(head)
	if !step.AteFood {
		body.PopFront()
	}
	return step
}

// SameOrOpposite returns current when requested is the same direction or its
// reverse, and requested otherwise.
func SameOrOpposite(current, requested Direction) Direction {
	if requested == current || requested == current.Opposite() {
		return current
	}
	return requested
}

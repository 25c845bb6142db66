package game

import "github.com/kamstrup/intmap"

// Body is the snake, stored as a ring buffer deque. Index 0 is the tail and
// Len()-1 the head. An occupancy multiset keeps Contains O(1); it counts
// rather than flags because a collided head sits on an occupied cell.
type Body struct {
	buf      []Point
	start    int
	n        int
	occupied *intmap.Map[int64, int]
}

// NewBody builds a body from points ordered tail first.
func NewBody(points ...Point) *Body {
	capacity := 16
	for capacity < len(points) {
		capacity *= 2
	}
	b := &Body{
		buf:      make([]Point, capacity),
		occupied: intmap.New[int64, int](capacity),
	}
	for _, p := range points {
		b.PushBack(p)
	}
	return b
}

func cellKey(p Point) int64 {
	return int64(p.X)<<32 | int64(uint32(p.Y))
}

// Len returns the number of segments.
func (b *Body) Len() int {
	return b.n
}

// At returns segment i, counted from the tail.
func (b *Body) At(i int) Point {
	if i < 0 || i >= b.n {
		panic("body: index out of range")
	}
	return b.buf[(b.start+i)%len(b.buf)]
}

// Head returns the newest segment.
func (b *Body) Head() Point {
	return b.At(b.n - 1)
}

// Tail returns the oldest segment.
func (b *Body) Tail() Point {
	return b.At(0)
}

// PushBack appends a new head.
func (b *Body) PushBack(p Point) {
	if b.n == len(b.buf) {
		b.grow()
	}
	b.buf[(b.start+b.n)%len(b.buf)] = p
	b.n++

	k := cellKey(p)
	count, _ := b.occupied.Get(k)
	b.occupied.Put(k, count+1)
}

// PopFront removes and returns the tail.
func (b *Body) PopFront() Point {
	if b.n == 0 {
		panic("body: pop from empty body")
	}
	p := b.buf[b.start]
	b.buf[b.start] = Point{}
	b.start = (b.start + 1) % len(b.buf)
	b.n--

	k := cellKey(p)
	if count, _ := b.occupied.Get(k); count > 1 {
		b.occupied.Put(k, count-1)
	} else {
		b.occupied.Del(k)
	}
	return p
}

// Contains reports whether any segment sits on p.
func (b *Body) Contains(p Point) bool {
	count, ok := b.occupied.Get(cellKey(p))
	return ok && count > 0
}

// Points copies the segments, tail first.
func (b *Body) Points() []Point {
	out := make([]Point, b.n)
	for i := range out {
		out[i] = b.buf[(b.start+i)%len(b.buf)]
	}
	return out
}

func (b *Body) grow() {
	next := make([]Point, len(b.buf)*2)
	copy(next, b.Points())
	b.buf = next
	b.start = 0
}

package engine

// body is the snake: segments head first, plus an occupancy index over the
// grid. Both are only changed through pushHead, popTail and reset, so the set
// of Snake cells always equals the set of segments.
type body struct {
	width    int
	height   int
	segments []Coord // index 0 = head
	occupied []bool  // width*height, row-major
}

func newBody(width, height int) *body {
	return &body{
		width:    width,
		height:   height,
		occupied: make([]bool, width*height),
	}
}

// reset clears the board and places a single segment at start.
func (b *body) reset(start Coord) {
	for i := range b.occupied {
		b.occupied[i] = false
	}
	b.segments = b.segments[:0]
	b.pushHead(start)
}

func (b *body) head() Coord {
	return b.segments[0]
}

func (b *body) tail() Coord {
	return b.segments[len(b.segments)-1]
}

func (b *body) len() int {
	return len(b.segments)
}

func (b *body) inBounds(c Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < b.width && c.Y < b.height
}

// occupies reports whether c is a segment. Out-of-bounds cells are never occupied.
func (b *body) occupies(c Coord) bool {
	if !b.inBounds(c) {
		return false
	}
	return b.occupied[c.Y*b.width+c.X]
}

// pushHead prepends c. Caller guarantees c is in bounds and free.
func (b *body) pushHead(c Coord) {
	b.segments = append(b.segments, Coord{})
	copy(b.segments[1:], b.segments)
	b.segments[0] = c
	b.occupied[c.Y*b.width+c.X] = true
}

// popTail drops the last segment and frees its cell.
func (b *body) popTail() Coord {
	t := b.tail()
	b.segments = b.segments[:len(b.segments)-1]
	b.occupied[t.Y*b.width+t.X] = false
	return t
}

// coords returns a copy of the segments, head first.
func (b *body) coords() []Coord {
	out := make([]Coord, len(b.segments))
	copy(out, b.segments)
	return out
}

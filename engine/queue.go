package engine

// directionQueue buffers pending direction requests between ticks.
// A push equal to the current last entry is dropped; the same heading may
// still appear again later in the queue.
type directionQueue struct {
	items []Direction
	limit int // 0 means unbounded
}

func (q *directionQueue) push(d Direction) {
	if n := len(q.items); n > 0 && q.items[n-1] == d {
		return
	}
	if q.limit > 0 && len(q.items) >= q.limit {
		return
	}
	q.items = append(q.items, d)
}

// pop removes and returns the front entry.
func (q *directionQueue) pop() (Direction, bool) {
	if len(q.items) == 0 {
		return None, false
	}
	d := q.items[0]
	q.items = q.items[1:]
	return d, true
}

func (q *directionQueue) len() int {
	return len(q.items)
}

func (q *directionQueue) clear() {
	q.items = nil
}

// pending returns a copy of the queued entries, front first.
func (q *directionQueue) pending() []Direction {
	out := make([]Direction, len(q.items))
	copy(out, q.items)
	return out
}

// Package autopilot steers a snake without a human at the keys.
package autopilot

import (
	"time"

	"golang.org/x/exp/rand"

	"gridsnake-server/engine"
)

// Pilot picks one heading per tick from a board snapshot.
// A Pilot is not safe for concurrent use; each session owns its own.
type Pilot struct {
	rng *rand.Rand
}

// New returns a Pilot whose tie-breaks are driven by seed. Seed 0 uses the clock.
func New(seed uint64) *Pilot {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Pilot{rng: rand.New(rand.NewSource(seed))}
}

type candidate struct {
	dir   engine.Direction
	roomy bool // reachable area can hold the whole snake
	dist  int  // manhattan distance to food, 0 without food
	ahead bool // keeps the current heading
}

// Next returns the heading to enqueue for the coming tick. With no safe move
// it returns the current heading, which is None before the first move.
func (p *Pilot) Next(snap engine.Snapshot) engine.Direction {
	if len(snap.Snake) == 0 || snap.Status == engine.StatusWon || snap.Status == engine.StatusCollided {
		return snap.Direction
	}
	head := snap.Head()
	blocked := occupancy(snap)

	var best []candidate
	for _, d := range engine.Directions {
		// --- Priority 1: never reverse into the neck ---
		if len(snap.Snake) > 1 && d == snap.Direction.Opposite() {
			continue
		}
		// --- Priority 2: wall and body avoidance ---
		next := head.Step(d)
		if !snap.InBounds(next) || blocked[index(snap, next)] {
			continue
		}

		c := candidate{dir: d, ahead: d == snap.Direction}
		// --- Priority 3: do not box ourselves in ---
		c.roomy = floodFill(snap, blocked, next, len(snap.Snake)) >= len(snap.Snake)
		// --- Priority 4: seek food ---
		if snap.HasFood {
			c.dist = next.Manhattan(snap.Food)
		}

		switch {
		case len(best) == 0 || better(c, best[0]):
			best = append(best[:0], c)
		case !better(best[0], c):
			best = append(best, c)
		}
	}

	if len(best) == 0 {
		return snap.Direction
	}
	// --- Priority 5: wander among equals ---
	return best[p.rng.Intn(len(best))].dir
}

// better reports whether a strictly beats b.
func better(a, b candidate) bool {
	if a.roomy != b.roomy {
		return a.roomy
	}
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	return a.ahead && !b.ahead
}

func index(snap engine.Snapshot, c engine.Coord) int {
	return c.Y*snap.Width + c.X
}

func occupancy(snap engine.Snapshot) []bool {
	blocked := make([]bool, snap.Width*snap.Height)
	for _, seg := range snap.Snake {
		blocked[index(snap, seg)] = true
	}
	return blocked
}

// floodFill counts free cells reachable from start, stopping once limit is reached.
func floodFill(snap engine.Snapshot, blocked []bool, start engine.Coord, limit int) int {
	seen := make([]bool, len(blocked))
	seen[index(snap, start)] = true
	stack := []engine.Coord{start}
	count := 0
	for len(stack) > 0 && count < limit {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		for _, d := range engine.Directions {
			n := c.Step(d)
			if !snap.InBounds(n) {
				continue
			}
			i := index(snap, n)
			if blocked[i] || seen[i] {
				continue
			}
			seen[i] = true
			stack = append(stack, n)
		}
	}
	return count
}

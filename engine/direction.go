package engine

import "strings"

// Direction is a heading on the grid. None means no heading has been chosen yet.
type Direction int

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

// Directions lists the four real headings in a fixed order.
var Directions = []Direction{Up, Down, Left, Right}

// Opposite returns the heading that would reverse d. None maps to None.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return None
	}
}

// Delta returns the (dx, dy) offset of one step. Up decreases Y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

// Valid reports whether d is one of the four real headings.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
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

// ParseDirection maps "up", "u", "Down", ... to a Direction.
// Anything else yields None and false.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return Up, true
	case "down", "d":
		return Down, true
	case "left", "l":
		return Left, true
	case "right", "r":
		return Right, true
	}
	return None, false
}

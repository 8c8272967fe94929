package engine

import "strings"

// Snapshot is a read-only copy of the game state taken at one instant.
type Snapshot struct {
	Width     int
	Height    int
	TileSize  int
	Snake     []Coord // head first
	Food      Coord   // valid only when HasFood
	HasFood   bool
	Score     int
	MaxScore  int
	Grow      int
	Direction Direction
	Pending   []Direction // queued directions, front first
	Status    Status
}

// Head returns the head segment.
func (s Snapshot) Head() Coord {
	return s.Snake[0]
}

// Won reports whether the game ended in a win.
func (s Snapshot) Won() bool {
	return s.Status == StatusWon
}

// InBounds reports whether c lies on the grid.
func (s Snapshot) InBounds(c Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < s.Width && c.Y < s.Height
}

// CellAt returns the state of c. Out-of-bounds cells read as empty.
func (s Snapshot) CellAt(c Coord) Cell {
	if s.HasFood && c == s.Food {
		return CellFood
	}
	for _, seg := range s.Snake {
		if seg == c {
			return CellSnake
		}
	}
	return CellEmpty
}

// Cells materialises the grid as rows, indexed [y][x].
func (s Snapshot) Cells() [][]Cell {
	rows := make([][]Cell, s.Height)
	for y := range rows {
		rows[y] = make([]Cell, s.Width)
	}
	for _, seg := range s.Snake {
		rows[seg.Y][seg.X] = CellSnake
	}
	if s.HasFood {
		rows[s.Food.Y][s.Food.X] = CellFood
	}
	return rows
}

// String draws the board in ASCII: '@' head, 'o' body, '*' food.
func (s Snapshot) String() string {
	cells := s.Cells()
	var sb strings.Builder

	border := "+" + strings.Repeat("-", s.Width) + "+\n"
	sb.WriteString(border)
	for y, row := range cells {
		sb.WriteByte('|')
		for x, c := range row {
			switch {
			case len(s.Snake) > 0 && s.Snake[0] == (Coord{X: x, Y: y}):
				sb.WriteByte('@')
			case c == CellSnake:
				sb.WriteByte('o')
			case c == CellFood:
				sb.WriteByte('*')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	return sb.String()
}

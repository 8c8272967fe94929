package engine

// Cell is the state of one grid square.
type Cell int

const (
	CellEmpty Cell = iota
	CellFood
	CellSnake
)

func (c Cell) String() string {
	switch c {
	case CellFood:
		return "food"
	case CellSnake:
		return "snake"
	default:
		return "empty"
	}
}

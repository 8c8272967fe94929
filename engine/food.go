package engine

// placeFood picks a uniformly random Empty cell and makes it the food.
// Empty cells are visited in row-major order and the k-th one replaces the
// current pick with probability 1/k, so the loop always terminates.
// Returns ErrBoardFull, leaving no food, when every cell is taken.
func (e *Engine) placeFood() error {
	e.hasFood = false
	seen := 0
	var pick Coord
	for y := 0; y < e.cfg.Height; y++ {
		for x := 0; x < e.cfg.Width; x++ {
			c := Coord{X: x, Y: y}
			if e.body.occupies(c) {
				continue
			}
			seen++
			if e.rng.Intn(seen) == 0 {
				pick = c
			}
		}
	}
	if seen == 0 {
		return ErrBoardFull
	}
	e.food = pick
	e.hasFood = true
	return nil
}

package engine

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(width, height int) Config {
	cfg := DefaultConfig()
	cfg.Width = width
	cfg.Height = height
	cfg.Seed = 42
	return cfg
}

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e, err := New(cfg)
	require.NoError(t, err)
	return e
}

// layout replaces the board with the given segments (head first), heading and food.
func layout(t *testing.T, e *Engine, dir Direction, food Coord, segs ...Coord) {
	t.Helper()
	require.NotEmpty(t, segs)
	e.body.reset(segs[len(segs)-1])
	for i := len(segs) - 2; i >= 0; i-- {
		e.body.pushHead(segs[i])
	}
	require.False(t, e.body.occupies(food), "food on the snake")
	e.food = food
	e.hasFood = true
	e.direction = dir
	e.queue.clear()
	e.grow = 0
	if dir != None {
		e.status = StatusPlaying
	}
}

// assertInvariants checks that Snake cells match the body and food is unique.
func assertInvariants(t *testing.T, s Snapshot) {
	t.Helper()
	cells := s.Cells()
	snakeCells, foodCells := 0, 0
	for _, row := range cells {
		for _, c := range row {
			switch c {
			case CellSnake:
				snakeCells++
			case CellFood:
				foodCells++
			}
		}
	}

	seen := make(map[Coord]bool, len(s.Snake))
	for _, seg := range s.Snake {
		assert.True(t, s.InBounds(seg), "segment %v out of bounds", seg)
		assert.False(t, seen[seg], "segment %v repeated", seg)
		seen[seg] = true
	}
	assert.GreaterOrEqual(t, len(s.Snake), 1)
	assert.Equal(t, len(s.Snake), snakeCells)
	if s.Score < s.MaxScore && s.Status != StatusWon {
		assert.Equal(t, 1, foodCells)
	}
}

func assertFreshState(t *testing.T, s Snapshot) {
	t.Helper()
	assert.Equal(t, []Coord{{X: s.Width / 2, Y: s.Height / 2}}, s.Snake)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, 0, s.Grow)
	assert.Equal(t, None, s.Direction)
	assert.Empty(t, s.Pending)
	assert.Equal(t, StatusIdle, s.Status)
	assert.True(t, s.HasFood)
	assert.NotEqual(t, s.Head(), s.Food)
}

func TestNew(t *testing.T) {
	t.Run("starts reset", func(t *testing.T) {
		e := newTestEngine(t, testConfig(10, 10))
		s := e.Snapshot()
		assertFreshState(t, s)
		assertInvariants(t, s)
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		cfg := testConfig(1, 1)
		_, err := New(cfg)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestEnqueue(t *testing.T) {
	t.Run("duplicate of last is dropped", func(t *testing.T) {
		e := newTestEngine(t, testConfig(10, 10))
		e.Enqueue(Up)
		e.Enqueue(Up)
		assert.Equal(t, []Direction{Up}, e.Snapshot().Pending)
	})

	t.Run("same heading may return later", func(t *testing.T) {
		e := newTestEngine(t, testConfig(10, 10))
		e.Enqueue(Up)
		e.Enqueue(Left)
		e.Enqueue(Up)
		assert.Equal(t, []Direction{Up, Left, Up}, e.Snapshot().Pending)
	})

	t.Run("none is ignored", func(t *testing.T) {
		e := newTestEngine(t, testConfig(10, 10))
		e.Enqueue(None)
		e.Enqueue(Direction(99))
		assert.Empty(t, e.Snapshot().Pending)
	})

	t.Run("queue limit drops overflow", func(t *testing.T) {
		cfg := testConfig(10, 10)
		cfg.QueueLimit = 2
		e := newTestEngine(t, cfg)
		e.Enqueue(Up)
		e.Enqueue(Left)
		e.Enqueue(Down)
		assert.Equal(t, []Direction{Up, Left}, e.Snapshot().Pending)
	})

	t.Run("does not touch the board", func(t *testing.T) {
		e := newTestEngine(t, testConfig(10, 10))
		before := e.Snapshot()
		e.Enqueue(Right)
		after := e.Snapshot()
		assert.Equal(t, before.Snake, after.Snake)
		assert.Equal(t, before.Food, after.Food)
	})
}

func TestAdvance_Idle(t *testing.T) {
	e := newTestEngine(t, testConfig(10, 10))
	before := e.Snapshot()

	assert.Equal(t, EventIdle, e.Advance())
	assert.Equal(t, before, e.Snapshot())
}

func TestAdvance_FirstDirectionStartsPlaying(t *testing.T) {
	e := newTestEngine(t, testConfig(10, 10))
	layout(t, e, None, Coord{X: 0, Y: 0}, Coord{X: 5, Y: 5})
	e.status = StatusIdle

	e.Enqueue(Up)
	assert.Equal(t, EventMoved, e.Advance())

	s := e.Snapshot()
	assert.Equal(t, StatusPlaying, s.Status)
	assert.Equal(t, Up, s.Direction)
	assert.Equal(t, []Coord{{X: 5, Y: 4}}, s.Snake)
}

func TestAdvance_Direction(t *testing.T) {
	t.Run("reversal is drained but rejected", func(t *testing.T) {
		e := newTestEngine(t, testConfig(10, 10))
		layout(t, e, Right, Coord{X: 0, Y: 0},
			Coord{X: 5, Y: 5}, Coord{X: 4, Y: 5}, Coord{X: 3, Y: 5})

		e.Enqueue(Left)
		assert.Equal(t, EventMoved, e.Advance())

		s := e.Snapshot()
		assert.Equal(t, Right, s.Direction)
		assert.Equal(t, Coord{X: 6, Y: 5}, s.Head())
		assert.Empty(t, s.Pending)
	})

	t.Run("lone head may reverse", func(t *testing.T) {
		e := newTestEngine(t, testConfig(10, 10))
		layout(t, e, Right, Coord{X: 0, Y: 0}, Coord{X: 5, Y: 5})

		e.Enqueue(Left)
		assert.Equal(t, EventMoved, e.Advance())

		s := e.Snapshot()
		assert.Equal(t, Left, s.Direction)
		assert.Equal(t, Coord{X: 4, Y: 5}, s.Head())
	})

	t.Run("one queued entry per tick", func(t *testing.T) {
		e := newTestEngine(t, testConfig(10, 10))
		layout(t, e, Right, Coord{X: 0, Y: 0},
			Coord{X: 5, Y: 5}, Coord{X: 4, Y: 5})

		e.Enqueue(Up)
		e.Enqueue(Left)
		e.Advance()
		assert.Equal(t, Up, e.Snapshot().Direction)
		e.Advance()
		s := e.Snapshot()
		assert.Equal(t, Left, s.Direction)
		assert.Equal(t, Coord{X: 4, Y: 4}, s.Head())
	})

	t.Run("never reverses in one step", func(t *testing.T) {
		e := newTestEngine(t, testConfig(30, 30))
		layout(t, e, Right, Coord{X: 0, Y: 0},
			Coord{X: 15, Y: 15}, Coord{X: 14, Y: 15}, Coord{X: 13, Y: 15})

		r := rand.New(rand.NewSource(7))
		for i := 0; i < 200; i++ {
			prev := e.Snapshot()
			e.Enqueue(Directions[r.Intn(len(Directions))])
			e.Advance()
			next := e.Snapshot()
			if len(prev.Snake) > 1 && next.Direction != None {
				assert.NotEqual(t, prev.Direction.Opposite(), next.Direction)
			}
		}
	})
}

func TestAdvance_WallCollisionResets(t *testing.T) {
	e := newTestEngine(t, testConfig(10, 10))
	layout(t, e, Right, Coord{X: 0, Y: 0}, Coord{X: 9, Y: 5})
	e.score = 3

	assert.Equal(t, EventWallCollision, e.Advance())

	s := e.Snapshot()
	assertFreshState(t, s)
	assertInvariants(t, s)
}

func TestAdvance_SelfCollision(t *testing.T) {
	t.Run("into the body", func(t *testing.T) {
		e := newTestEngine(t, testConfig(10, 10))
		layout(t, e, Up, Coord{X: 0, Y: 0},
			Coord{X: 5, Y: 5}, Coord{X: 5, Y: 6}, Coord{X: 4, Y: 6},
			Coord{X: 4, Y: 5}, Coord{X: 4, Y: 4}, Coord{X: 5, Y: 4}, Coord{X: 6, Y: 4})

		assert.Equal(t, EventSelfCollision, e.Advance())
		assertFreshState(t, e.Snapshot())
	})

	t.Run("into the tail that has not moved yet", func(t *testing.T) {
		e := newTestEngine(t, testConfig(10, 10))
		layout(t, e, Up, Coord{X: 0, Y: 0},
			Coord{X: 5, Y: 5}, Coord{X: 5, Y: 6}, Coord{X: 4, Y: 6}, Coord{X: 4, Y: 5})

		e.Enqueue(Left)
		assert.Equal(t, EventSelfCollision, e.Advance())
	})
}

func TestAdvance_CollisionWithoutAutoReset(t *testing.T) {
	cfg := testConfig(10, 10)
	cfg.AutoReset = false
	e := newTestEngine(t, cfg)
	layout(t, e, Right, Coord{X: 0, Y: 0}, Coord{X: 9, Y: 5})

	assert.Equal(t, EventWallCollision, e.Advance())
	s := e.Snapshot()
	assert.Equal(t, StatusCollided, s.Status)
	assert.Equal(t, []Coord{{X: 9, Y: 5}}, s.Snake)

	e.Enqueue(Left)
	assert.Equal(t, EventFrozen, e.Advance())
	assert.Equal(t, []Coord{{X: 9, Y: 5}}, e.Snapshot().Snake)

	e.Reset()
	assertFreshState(t, e.Snapshot())
}

func TestAdvance_WinScenario(t *testing.T) {
	cfg := testConfig(10, 10)
	cfg.MaxScore = 1
	cfg.GrowthRate = 1
	e := newTestEngine(t, cfg)
	layout(t, e, Right, Coord{X: 5, Y: 4}, Coord{X: 4, Y: 4})

	assert.Equal(t, EventWon, e.Advance())

	s := e.Snapshot()
	assert.Equal(t, Coord{X: 5, Y: 4}, s.Head())
	assert.Equal(t, CellSnake, s.CellAt(Coord{X: 5, Y: 4}))
	assert.Equal(t, 1, s.Score)
	assert.False(t, s.HasFood)
	assert.Equal(t, Right, s.Direction)
	assert.True(t, s.Won())
	assertInvariants(t, s)

	e.Enqueue(Down)
	for i := 0; i < 3; i++ {
		assert.Equal(t, EventFrozen, e.Advance())
	}
	frozen := e.Snapshot()
	assert.Equal(t, s.Snake, frozen.Snake)
	assert.Equal(t, s.Score, frozen.Score)
	assert.False(t, frozen.HasFood)

	e.Reset()
	assertFreshState(t, e.Snapshot())
}

func TestAdvance_GrowthLaw(t *testing.T) {
	for _, rate := range []int{1, 2, 3, 5} {
		cfg := testConfig(20, 20)
		cfg.GrowthRate = rate
		e := newTestEngine(t, cfg)
		layout(t, e, Right, Coord{X: 3, Y: 2}, Coord{X: 2, Y: 2})

		require.Equal(t, EventAte, e.Advance())
		// Keep the new food off the path.
		e.food = Coord{X: 0, Y: 19}

		lengths := []int{len(e.Snapshot().Snake)}
		for i := 1; i < rate; i++ {
			assert.Equal(t, EventGrew, e.Advance(), "rate %d tick %d", rate, i)
			lengths = append(lengths, len(e.Snapshot().Snake))
		}
		assert.Equal(t, EventMoved, e.Advance())

		s := e.Snapshot()
		assert.Equal(t, 1+rate, len(s.Snake), "rate %d", rate)
		assert.Equal(t, 0, s.Grow)
		for i := 1; i < len(lengths); i++ {
			assert.Equal(t, lengths[i-1]+1, lengths[i], "tail retracted during growth")
		}
	}
}

func TestAdvance_EatPlacesNewFood(t *testing.T) {
	e := newTestEngine(t, testConfig(10, 10))
	layout(t, e, Right, Coord{X: 5, Y: 4}, Coord{X: 4, Y: 4})

	assert.Equal(t, EventAte, e.Advance())
	s := e.Snapshot()
	assert.Equal(t, 1, s.Score)
	assert.Equal(t, e.cfg.GrowthRate-1, s.Grow)
	assert.True(t, s.HasFood)
	assertInvariants(t, s)
}

func TestAdvance_BoardFilled(t *testing.T) {
	cfg := testConfig(2, 1)
	cfg.MaxScore = 10
	e := newTestEngine(t, cfg)

	s := e.Snapshot()
	require.Equal(t, Coord{X: 1, Y: 0}, s.Head())
	require.Equal(t, Coord{X: 0, Y: 0}, s.Food)

	e.Enqueue(Left)
	assert.Equal(t, EventBoardFilled, e.Advance())

	s = e.Snapshot()
	assert.Equal(t, StatusWon, s.Status)
	assert.False(t, s.HasFood)
	assert.Len(t, s.Snake, 2)
	assert.Equal(t, EventFrozen, e.Advance())
}

func TestReset(t *testing.T) {
	e := newTestEngine(t, testConfig(9, 7))
	layout(t, e, Down, Coord{X: 0, Y: 0}, Coord{X: 1, Y: 1}, Coord{X: 1, Y: 2})
	e.score = 4
	e.grow = 2
	e.Enqueue(Left)

	e.Reset()

	s := e.Snapshot()
	assertFreshState(t, s)
	assert.Equal(t, Coord{X: 4, Y: 3}, s.Head())
	assertInvariants(t, s)
}

func TestInvariants_RandomPlay(t *testing.T) {
	cfg := testConfig(8, 6)
	cfg.MaxScore = 12
	cfg.GrowthRate = 2
	e := newTestEngine(t, cfg)

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 3000; i++ {
		if r.Intn(3) == 0 {
			e.Enqueue(Directions[r.Intn(len(Directions))])
		}
		if e.Advance() == EventFrozen {
			e.Reset()
		}
		assertInvariants(t, e.Snapshot())
	}
}

func TestConcurrentAccess(t *testing.T) {
	e := newTestEngine(t, testConfig(12, 12))

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			r := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
				}
				e.Enqueue(Directions[r.Intn(len(Directions))])
				if r.Intn(50) == 0 {
					e.Reset()
				}
				_ = e.Snapshot()
			}
		}(int64(i))
	}

	for i := 0; i < 500; i++ {
		e.Advance()
		assertInvariants(t, e.Snapshot())
	}
	close(stop)
	wg.Wait()
}

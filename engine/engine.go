// Package engine is the simulation core of a grid snake game: one discrete
// step per Advance call, no rendering, no timers.
package engine

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

// Engine errors.
var (
	ErrInvalidConfig = errors.New("invalid engine config")
	ErrBoardFull     = errors.New("board full: no empty cell for food")
)

// Engine owns the board, the snake, the food and the score.
// All methods are safe for concurrent use; mutations are serialised.
type Engine struct {
	cfg       Config
	rng       *rand.Rand
	body      *body
	queue     directionQueue
	food      Coord
	hasFood   bool
	direction Direction
	grow      int // forward moves still owed without tail retraction
	score     int
	status    Status
	mu        sync.RWMutex
}

// New validates cfg and returns an engine in the reset state.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	e := &Engine{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(seed)),
		body:  newBody(cfg.Width, cfg.Height),
		queue: directionQueue{limit: cfg.QueueLimit},
	}
	e.reset()
	return e, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Enqueue queues a direction request for a later Advance.
// Requests equal to the last queued one and None are dropped.
func (e *Engine) Enqueue(d Direction) {
	if !d.Valid() {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.queue.push(d)
}

// Reset puts the game back to its starting state in one step.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
}

// reset is Reset without locking. Caller must hold mu.
func (e *Engine) reset() {
	e.queue.clear()
	e.direction = None
	e.grow = 0
	e.score = 0
	e.status = StatusIdle
	e.body.reset(Coord{X: e.cfg.Width / 2, Y: e.cfg.Height / 2})
	// New rejects boards without a second cell, so this cannot fail.
	_ = e.placeFood()
}

// Advance runs one tick and reports what happened.
func (e *Engine) Advance() Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status == StatusWon || e.status == StatusCollided {
		return EventFrozen
	}

	if d, ok := e.queue.pop(); ok {
		// A lone head may reverse; a longer snake drops the reversal.
		if e.body.len() == 1 || d != e.direction.Opposite() {
			e.direction = d
		}
	}
	if e.direction == None {
		return EventIdle
	}
	e.status = StatusPlaying

	next := e.body.head().Step(e.direction)
	switch {
	case !e.body.inBounds(next):
		return e.collide(EventWallCollision)
	case e.body.occupies(next):
		return e.collide(EventSelfCollision)
	case e.hasFood && next == e.food:
		return e.eat(next)
	}

	e.body.pushHead(next)
	if e.grow > 0 {
		e.grow--
		return EventGrew
	}
	e.body.popTail()
	return EventMoved
}

// eat moves the head onto the food. One unit of growth is spent right away
// by keeping the tail this tick; the rest is owed.
func (e *Engine) eat(next Coord) Event {
	e.grow += e.cfg.GrowthRate - 1
	e.body.pushHead(next)
	e.hasFood = false
	e.score++

	if e.score >= e.cfg.MaxScore {
		e.status = StatusWon
		return EventWon
	}
	if err := e.placeFood(); errors.Is(err, ErrBoardFull) {
		e.status = StatusWon
		return EventBoardFilled
	}
	return EventAte
}

func (e *Engine) collide(ev Event) Event {
	if e.cfg.AutoReset {
		e.reset()
		return ev
	}
	e.status = StatusCollided
	return ev
}

// Score returns the current score.
func (e *Engine) Score() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.score
}

// Status returns the current game phase.
func (e *Engine) Status() Status {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.status
}

// Snapshot returns a consistent deep copy of the state for renderers.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return Snapshot{
		Width:     e.cfg.Width,
		Height:    e.cfg.Height,
		TileSize:  e.cfg.TileSize,
		Snake:     e.body.coords(),
		Food:      e.food,
		HasFood:   e.hasFood,
		Score:     e.score,
		MaxScore:  e.cfg.MaxScore,
		Grow:      e.grow,
		Direction: e.direction,
		Pending:   e.queue.pending(),
		Status:    e.status,
	}
}

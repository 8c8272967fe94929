package engine

import (
	"fmt"
	"time"
)

// Config is fixed when the engine is built.
type Config struct {
	Width      int           // grid columns
	Height     int           // grid rows
	TileSize   int           // pixels per cell, for renderers only
	MaxScore   int           // score that wins the game
	GrowthRate int           // segments gained per food
	TickDelay  time.Duration // interval drivers should call Advance at
	AutoReset  bool          // reset inside Advance on collision instead of freezing
	QueueLimit int           // max pending directions, 0 = unbounded
	Seed       uint64        // RNG seed, 0 = seeded from the clock
}

// DefaultConfig returns a 20x20 board that grows by 3 per food.
func DefaultConfig() Config {
	return Config{
		Width:      20,
		Height:     20,
		TileSize:   20,
		MaxScore:   50,
		GrowthRate: 3,
		TickDelay:  100 * time.Millisecond,
		AutoReset:  true,
	}
}

// Validate checks the config. Every error wraps ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.Width < 1 || c.Height < 1:
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Width*c.Height < 2:
		return fmt.Errorf("%w: grid %dx%d has no room for food", ErrInvalidConfig, c.Width, c.Height)
	case c.MaxScore < 1:
		return fmt.Errorf("%w: max score %d", ErrInvalidConfig, c.MaxScore)
	case c.GrowthRate < 1:
		return fmt.Errorf("%w: growth rate %d", ErrInvalidConfig, c.GrowthRate)
	case c.TileSize < 1:
		return fmt.Errorf("%w: tile size %d", ErrInvalidConfig, c.TileSize)
	case c.TickDelay <= 0:
		return fmt.Errorf("%w: tick delay %s", ErrInvalidConfig, c.TickDelay)
	case c.QueueLimit < 0:
		return fmt.Errorf("%w: queue limit %d", ErrInvalidConfig, c.QueueLimit)
	}
	return nil
}

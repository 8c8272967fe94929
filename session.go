package main

import (
	"context"
	"sync/atomic"
	"time"

	"gridsnake-server/autopilot"
	"gridsnake-server/engine"
)

// Sender receives one message per tick. *Conn and the terminal screen implement it.
type Sender interface {
	Send(msg interface{}) error
}

// Session drives one engine at a fixed tick rate and streams its state to a Sender.
type Session struct {
	ID        string
	engine    *engine.Engine
	out       Sender
	pilot     *autopilot.Pilot
	autopilot atomic.Bool
	tickDelay time.Duration
}

// NewSession builds a fresh engine from cfg for the client identified by id.
func NewSession(id string, cfg engine.Config, out Sender) (*Session, error) {
	e, err := engine.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:        id,
		engine:    e,
		out:       out,
		pilot:     autopilot.New(cfg.Seed),
		tickDelay: cfg.TickDelay,
	}, nil
}

// Enqueue forwards a direction request to the engine.
func (s *Session) Enqueue(d engine.Direction) {
	s.engine.Enqueue(d)
}

// Reset starts a new game on the same board.
func (s *Session) Reset() {
	s.engine.Reset()
}

// SetAutopilot turns computer steering on or off from the next tick.
func (s *Session) SetAutopilot(on bool) {
	s.autopilot.Store(on)
}

func (s *Session) Autopilot() bool {
	return s.autopilot.Load()
}

func (s *Session) Snapshot() engine.Snapshot {
	return s.engine.Snapshot()
}

// Run ticks until ctx is cancelled or a send fails. Blocks.
func (s *Session) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.tickDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := s.tick(); err != nil {
				return err
			}
		}
	}
}

// tick executes a single game update and pushes the resulting state.
func (s *Session) tick() (engine.Event, error) {
	if s.Autopilot() {
		s.engine.Enqueue(s.pilot.Next(s.engine.Snapshot()))
	}

	ev := s.engine.Advance()
	snap := s.engine.Snapshot()

	switch {
	case ev.Collision():
		sessionLog.Printf("%s[INFO]%s session %s: %s", LogInfoColor, LogColorReset, s.ID, ev)
	case ev == engine.EventWon || ev == engine.EventBoardFilled:
		sessionLog.Printf("%s[INFO]%s session %s won with score %d (%s)", LogInfoColor, LogColorReset, s.ID, snap.Score, ev)
	}

	return ev, s.out.Send(newStateMsg(snap, ev))
}

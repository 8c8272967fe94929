package main

import (
	"context"
	"fmt"

	"github.com/nsf/termbox-go"

	"gridsnake-server/engine"
)

// screen draws state messages into the terminal. It is the Sender for terminal mode.
type screen struct {
	width, height int
	session       *Session
}

func (sc *screen) Send(msg interface{}) error {
	state, ok := msg.(StateMsg)
	if !ok {
		return nil
	}
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)

	// Border, board cells are offset by one
	for x := 0; x <= sc.width+1; x++ {
		termbox.SetCell(x, 0, '-', termbox.ColorWhite, termbox.ColorDefault)
		termbox.SetCell(x, sc.height+1, '-', termbox.ColorWhite, termbox.ColorDefault)
	}
	for y := 1; y <= sc.height; y++ {
		termbox.SetCell(0, y, '|', termbox.ColorWhite, termbox.ColorDefault)
		termbox.SetCell(sc.width+1, y, '|', termbox.ColorWhite, termbox.ColorDefault)
	}

	for i, seg := range state.Snake {
		ch, fg := 'o', termbox.ColorGreen
		if i == 0 {
			ch, fg = '@', termbox.ColorYellow
		}
		termbox.SetCell(seg[0]+1, seg[1]+1, ch, fg, termbox.ColorDefault)
	}
	if state.Food != nil {
		termbox.SetCell(state.Food[0]+1, state.Food[1]+1, '*', termbox.ColorRed, termbox.ColorDefault)
	}

	drawText(0, sc.height+2, hudLine(state, sc.session.Autopilot()))
	return termbox.Flush()
}

func hudLine(state StateMsg, autopilot bool) string {
	line := fmt.Sprintf("Score: %d/%d", state.Score, state.MaxScore)
	if autopilot {
		line += "  [autopilot]"
	}
	switch state.Status {
	case engine.StatusWon.String():
		line += "  You have won! r: restart  q: quit"
	case engine.StatusCollided.String():
		line += "  Crashed! r: restart  q: quit"
	case engine.StatusIdle.String():
		line += "  arrows/wasd: move  p: autopilot"
	}
	return line
}

func drawText(x, y int, s string) {
	for i, r := range s {
		termbox.SetCell(x+i, y, r, termbox.ColorWhite, termbox.ColorDefault)
	}
}

// keyDirection maps arrow keys and WASD to headings.
func keyDirection(ev termbox.Event) (engine.Direction, bool) {
	switch ev.Key {
	case termbox.KeyArrowUp:
		return engine.Up, true
	case termbox.KeyArrowDown:
		return engine.Down, true
	case termbox.KeyArrowLeft:
		return engine.Left, true
	case termbox.KeyArrowRight:
		return engine.Right, true
	}
	switch ev.Ch {
	case 'w', 'W':
		return engine.Up, true
	case 's', 'S':
		return engine.Down, true
	case 'a', 'A':
		return engine.Left, true
	case 'd', 'D':
		return engine.Right, true
	}
	return engine.None, false
}

// handleKey applies one terminal event to the session and reports whether to quit.
func handleKey(session *Session, ev termbox.Event) bool {
	if ev.Type != termbox.EventKey {
		return false
	}
	if d, ok := keyDirection(ev); ok {
		session.Enqueue(d)
		return false
	}
	switch {
	case ev.Key == termbox.KeyEsc, ev.Key == termbox.KeyCtrlC, ev.Ch == 'q':
		return true
	case ev.Ch == 'r':
		session.Reset()
	case ev.Ch == 'p':
		session.SetAutopilot(!session.Autopilot())
	}
	return false
}

// runTerminal plays one local game in the current terminal until the player quits.
func runTerminal(ctx context.Context, cfg Config, autopilot bool) error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("termbox init: %w", err)
	}
	defer termbox.Close()

	sc := &screen{width: cfg.Game.Width, height: cfg.Game.Height}
	session, err := NewSession("terminal", cfg.Game, sc)
	if err != nil {
		return err
	}
	sc.session = session
	session.SetAutopilot(autopilot)
	if err := sc.Send(newStateMsg(session.Snapshot(), engine.EventIdle)); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- session.Run(ctx) }()

	events := make(chan termbox.Event)
	go func() {
		for {
			ev := termbox.PollEvent()
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errc:
			return err
		case ev := <-events:
			if handleKey(session, ev) {
				return nil
			}
		}
	}
}

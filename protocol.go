package main

import "gridsnake-server/engine"

// Protocol uses single-character JSON keys to minimize wire size.
// Coordinates are grid cells, not pixels; clients multiply by the tile size.
//
// Message type constants (value of "t" field):
//   Client → Server:
//     "d" = direction {"t":"d","d":"up"}
//     "r" = reset     {"t":"r"}
//     "a" = autopilot {"t":"a","a":1}            (a=1 on, 0 off)
//   Server → Client:
//     "w" = welcome {"t":"w","i":"id","gw":20,"gh":20,"z":20,"m":50,"ms":100}
//     "s" = state   {"t":"s","s":[[x,y],...],"f":[x,y],"p":3,"m":50,"g":2,"st":"playing","e":"ate"}
//     "x" = error   {"t":"x","m":"Server full."}

// Message type identifiers
const (
	MsgDirection = "d"
	MsgReset     = "r"
	MsgAutopilot = "a"
	MsgWelcome   = "w"
	MsgState     = "s"
	MsgError     = "x"
)

// ClientMessage is the base incoming message from the browser.
type ClientMessage struct {
	Type      string `json:"t"`
	Direction string `json:"d,omitempty"`
	Autopilot int    `json:"a,omitempty"` // 0 or 1 (client sends int, not bool)
}

// WelcomeMsg is sent immediately on websocket connect.
type WelcomeMsg struct {
	Type       string `json:"t"`
	ID         string `json:"i"`
	GridWidth  int    `json:"gw"`
	GridHeight int    `json:"gh"`
	TileSize   int    `json:"z"`
	MaxScore   int    `json:"m"`
	TickMS     int64  `json:"ms"`
}

// StateMsg is the per-tick board sent to the owning client.
// Food is null once the game is won.
type StateMsg struct {
	Type     string   `json:"t"`
	Snake    [][2]int `json:"s"`
	Food     *[2]int  `json:"f"`
	Score    int      `json:"p"`
	MaxScore int      `json:"m"`
	Grow     int      `json:"g"`
	Status   string   `json:"st"`
	Event    string   `json:"e"`
}

// ErrorMsg is sent just before the server closes a connection.
type ErrorMsg struct {
	Type    string `json:"t"`
	Message string `json:"m"`
}

// LeaderboardEntry is one row of GET /api/v1/leaderboard.
type LeaderboardEntry struct {
	ID     string `json:"i"`
	Score  int    `json:"p"`
	Length int    `json:"l"`
}

func newWelcomeMsg(id string, cfg engine.Config) WelcomeMsg {
	return WelcomeMsg{
		Type:       MsgWelcome,
		ID:         id,
		GridWidth:  cfg.Width,
		GridHeight: cfg.Height,
		TileSize:   cfg.TileSize,
		MaxScore:   cfg.MaxScore,
		TickMS:     cfg.TickDelay.Milliseconds(),
	}
}

// newStateMsg flattens a snapshot into the compact wire form.
func newStateMsg(snap engine.Snapshot, ev engine.Event) StateMsg {
	segs := make([][2]int, len(snap.Snake))
	for i, c := range snap.Snake {
		segs[i] = [2]int{c.X, c.Y}
	}
	msg := StateMsg{
		Type:     MsgState,
		Snake:    segs,
		Score:    snap.Score,
		MaxScore: snap.MaxScore,
		Grow:     snap.Grow,
		Status:   snap.Status.String(),
		Event:    ev.String(),
	}
	if snap.HasFood {
		msg.Food = &[2]int{snap.Food.X, snap.Food.Y}
	}
	return msg
}

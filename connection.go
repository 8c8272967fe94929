package main

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"gridsnake-server/engine"
)

// Conn wraps a single websocket client
type Conn struct {
	ID     string
	ws     *websocket.Conn
	mu     sync.Mutex // protects ws writes and closed
	closed bool
}

// NewConn creates a new connection wrapper with a fresh id
func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{
		ID: uuid.New().String(),
		ws: ws,
	}
}

// Send serializes msg to JSON and writes it to the websocket.
// Sends after Close are dropped silently.
func (c *Conn) Send(msg interface{}) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// Close marks the connection closed and closes the socket. Safe to call twice.
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.ws.Close()
}

// ReadLoop feeds client messages into session until the client disconnects.
func (c *Conn) ReadLoop(session *Session) {
	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				httpLog.Printf("%s[ERROR]%s ws read error for %s: %v", LogErrorColor, LogColorReset, c.ID, err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			httpLog.Printf("%s[ERROR]%s bad message from %s: %v", LogErrorColor, LogColorReset, c.ID, err)
			continue
		}
		dispatch(session, msg)
	}
}

// dispatch applies one client message to a session. Unknown types are ignored.
func dispatch(session *Session, msg ClientMessage) {
	switch msg.Type {
	case MsgDirection:
		if d, ok := engine.ParseDirection(msg.Direction); ok {
			session.Enqueue(d)
		}
	case MsgReset:
		session.Reset()
	case MsgAutopilot:
		session.SetAutopilot(msg.Autopilot == 1)
	}
}

// sendErrorAndClose sends an error message via websocket then closes the connection
func sendErrorAndClose(ws *websocket.Conn, msg string) {
	data, _ := json.Marshal(ErrorMsg{Type: MsgError, Message: msg})
	_ = ws.WriteMessage(websocket.TextMessage, data)
	ws.Close()
}

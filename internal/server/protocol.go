package server

import (
	"fmt"

	"github.com/Garsondee/Snake-Sense/internal/game"
	"github.com/Garsondee/Snake-Sense/internal/session"
)

// Protocol uses single-character JSON keys to keep frames small.
//
// Message type constants (value of "t" field):
//
//	Client → Server:
//	  "i" = input     {"t":"i","d":"up"}   (d = up/down/left/right)
//	  "r" = reset     {"t":"r"}
//	  "a" = autopilot {"t":"a"}            (toggle)
//	  "p" = pause     {"t":"p"}            (toggle)
//	Server → Client:
//	  "w" = welcome {"t":"w","i":"conn-id","s":"session-id","r":rows,"c":cols}
//	  "s" = state   {"t":"s","i":"session-id","k":tick,"r":rows,"c":cols,"b":[[row,col],...],"f":[row,col],"p":score,"g":0,"h":"up"}
//	  "e" = error   {"t":"e","m":"message"}
const (
	MsgInput     = "i"
	MsgReset     = "r"
	MsgAutoPilot = "a"
	MsgPause     = "p"
	MsgWelcome   = "w"
	MsgState     = "s"
	MsgError     = "e"
)

// ClientMessage is the incoming message from the browser.
type ClientMessage struct {
	Type      string `json:"t"`
	Direction string `json:"d,omitempty"`
}

// Input decodes the message into a session input.
func (m ClientMessage) Input() (session.Input, error) {
	switch m.Type {
	case MsgInput:
		d, ok := game.ParseDirection(m.Direction)
		if !ok {
			return session.InputNone, fmt.Errorf("unknown direction %q", m.Direction)
		}
		return session.InputFor(d), nil
	case MsgReset:
		return session.InputReset, nil
	case MsgAutoPilot:
		return session.InputToggleAutoPilot, nil
	case MsgPause:
		return session.InputPause, nil
	}
	return session.InputNone, fmt.Errorf("unknown message type %q", m.Type)
}

// WelcomeMsg is sent to a client immediately on connect.
type WelcomeMsg struct {
	Type    string `json:"t"`
	ID      string `json:"i"`
	Session string `json:"s"`
	Rows    int    `json:"r"`
	Cols    int    `json:"c"`
}

// StateMsg is the per-change state update broadcast to every client.
// Cells are encoded as [row,col] pairs.
type StateMsg struct {
	Type      string   `json:"t"`
	Session   string   `json:"i"`
	Tick      int      `json:"k"`
	Rows      int      `json:"r"`
	Cols      int      `json:"c"`
	Body      [][2]int `json:"b"`
	Food      [2]int   `json:"f"`
	Score     int      `json:"p"`
	Over      int      `json:"g"`           // 1 once the game is over
	Cause     string   `json:"x,omitempty"` // set with Over
	Heading   string   `json:"h"`
	AutoPilot int      `json:"a,omitempty"` // 1 while the pilot steers
	Paused    int      `json:"z,omitempty"` // 1 while paused
}

// ErrorMsg reports a rejected message or a refused connection.
type ErrorMsg struct {
	Type    string `json:"t"`
	Message string `json:"m"`
}

// NewStateMsg encodes a snapshot for the wire.
func NewStateMsg(s game.Snapshot, autoPilot, paused bool) StateMsg {
	msg := StateMsg{
		Type:    MsgState,
		Session: s.Session,
		Tick:    s.Tick,
		Rows:    s.Rows,
		Cols:    s.Cols,
		Body:    make([][2]int, len(s.Snake)),
		Food:    [2]int{s.Food.Row, s.Food.Col},
		Score:   s.Score,
		Heading: s.Heading.String(),
	}
	for i, c := range s.Snake {
		msg.Body[i] = [2]int{c.Row, c.Col}
	}
	if s.Over() {
		msg.Over = 1
		msg.Cause = s.Cause.String()
	}
	if autoPilot {
		msg.AutoPilot = 1
	}
	if paused {
		msg.Paused = 1
	}
	return msg
}

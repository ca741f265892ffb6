package server

import (
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Garsondee/Snake-Sense/internal/game"
	"github.com/Garsondee/Snake-Sense/internal/session"
)

func startServer(t *testing.T, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()
	e, err := game.NewEngine(20, 20,
		game.WithRand(rand.New(rand.NewSource(7))), // #nosec G404 -- test
		game.WithSimLog(game.NewSimLog(false)),
	)
	if err != nil {
		t.Fatal(err)
	}
	srv := New(session.New(e), 10*time.Millisecond, opts...)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("run: %v", err)
		}
		ts.Close()
	})
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

// readUntil reads frames until one of type typ arrives, decoding it into out.
func readUntil(t *testing.T, ws *websocket.Conn, typ string, out any, match func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		_ = ws.SetReadDeadline(deadline)
		_, raw, err := ws.ReadMessage()
		if err != nil {
			t.Fatalf("waiting for %q: %v", typ, err)
		}
		var head struct {
			Type string `json:"t"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			t.Fatalf("bad frame %s: %v", raw, err)
		}
		if head.Type != typ {
			continue
		}
		if err := json.Unmarshal(raw, out); err != nil {
			t.Fatal(err)
		}
		if match == nil || match() {
			return
		}
	}
	t.Fatalf("no %q frame before deadline", typ)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestConnect_WelcomeThenState(t *testing.T) {
	_, ts := startServer(t)
	ws := dial(t, ts)

	var w WelcomeMsg
	readUntil(t, ws, MsgWelcome, &w, nil)
	if w.ID == "" || w.Session == "" {
		t.Fatalf("welcome missing ids: %+v", w)
	}
	if w.Rows != 20 || w.Cols != 20 {
		t.Fatalf("welcome board = %dx%d, want 20x20", w.Rows, w.Cols)
	}

	var s StateMsg
	readUntil(t, ws, MsgState, &s, nil)
	if len(s.Body) == 0 {
		t.Fatal("state has no snake")
	}
	if s.Session != w.Session {
		t.Fatalf("state session %q != welcome session %q", s.Session, w.Session)
	}
}

func TestInput_PauseIsBroadcast(t *testing.T) {
	srv, ts := startServer(t)
	ws := dial(t, ts)
	other := dial(t, ts)
	waitFor(t, func() bool { return srv.Conns() == 2 })

	if err := ws.WriteJSON(ClientMessage{Type: MsgPause}); err != nil {
		t.Fatal(err)
	}
	var s StateMsg
	readUntil(t, other, MsgState, &s, func() bool { return s.Paused == 1 })
	waitFor(t, func() bool { return srv.Latest().Paused == 1 })
}

func TestInput_ResetStartsNewSession(t *testing.T) {
	_, ts := startServer(t)
	ws := dial(t, ts)
	var w WelcomeMsg
	readUntil(t, ws, MsgWelcome, &w, nil)

	if err := ws.WriteJSON(ClientMessage{Type: MsgReset}); err != nil {
		t.Fatal(err)
	}
	var s StateMsg
	readUntil(t, ws, MsgState, &s, func() bool { return s.Session != w.Session })
	if s.Score != 0 || len(s.Body) != 1 {
		t.Fatalf("reset state: score=%d len=%d", s.Score, len(s.Body))
	}
}

func TestInput_BadMessageGetsError(t *testing.T) {
	_, ts := startServer(t)
	ws := dial(t, ts)

	if err := ws.WriteMessage(websocket.TextMessage, []byte(`{"t":"i","d":"sideways"}`)); err != nil {
		t.Fatal(err)
	}
	var e ErrorMsg
	readUntil(t, ws, MsgError, &e, nil)
	if !strings.Contains(e.Message, "sideways") {
		t.Fatalf("error = %q", e.Message)
	}

	// The connection stays usable after a rejected message.
	if err := ws.WriteMessage(websocket.TextMessage, []byte(`not json`)); err != nil {
		t.Fatal(err)
	}
	readUntil(t, ws, MsgError, &e, func() bool { return e.Message == "malformed message" })
}

func TestMaxConns_RefusesExtraClient(t *testing.T) {
	srv, ts := startServer(t, WithMaxConns(1))
	dial(t, ts)
	waitFor(t, func() bool { return srv.Conns() == 1 })

	extra := dial(t, ts)
	var e ErrorMsg
	readUntil(t, extra, MsgError, &e, nil)
	if e.Message != "server full" {
		t.Fatalf("error = %q", e.Message)
	}
}

func TestDisconnect_RemovesConn(t *testing.T) {
	srv, ts := startServer(t)
	ws := dial(t, ts)
	waitFor(t, func() bool { return srv.Conns() == 1 })
	ws.Close()
	waitFor(t, func() bool { return srv.Conns() == 0 })
}

func TestHealthz(t *testing.T) {
	_, ts := startServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var h healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		t.Fatal(err)
	}
	if h.Status != "ok" || h.Session == "" {
		t.Fatalf("health = %+v", h)
	}
}

func TestIndexServed(t *testing.T) {
	_, ts := startServer(t)
	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "<canvas") {
		t.Fatalf("index: status %d, body %.80q", resp.StatusCode, body)
	}
}

func TestClientMessage_Input(t *testing.T) {
	cases := []struct {
		msg  ClientMessage
		want session.Input
		err  bool
	}{
		{ClientMessage{Type: MsgInput, Direction: "up"}, session.InputUp, false},
		{ClientMessage{Type: MsgInput, Direction: "left"}, session.InputLeft, false},
		{ClientMessage{Type: MsgInput, Direction: "nope"}, session.InputNone, true},
		{ClientMessage{Type: MsgReset}, session.InputReset, false},
		{ClientMessage{Type: MsgAutoPilot}, session.InputToggleAutoPilot, false},
		{ClientMessage{Type: MsgPause}, session.InputPause, false},
		{ClientMessage{Type: "q"}, session.InputNone, true},
	}
	for _, c := range cases {
		got, err := c.msg.Input()
		if (err != nil) != c.err || got != c.want {
			t.Errorf("%+v: got (%s, %v), want (%s, err=%v)", c.msg, got, err, c.want, c.err)
		}
	}
}

func TestNewStateMsg(t *testing.T) {
	s := game.Snapshot{
		Session: "abc",
		Tick:    9,
		Rows:    5,
		Cols:    6,
		Snake:   []game.Cell{{Row: 0, Col: 2}, {Row: 0, Col: 1}},
		Food:    game.Cell{Row: 3, Col: 4},
		Score:   1,
		Status:  game.GameOver,
		Heading: game.Left,
		Cause:   game.CauseWall,
	}
	m := NewStateMsg(s, true, false)
	if m.Type != MsgState || m.Over != 1 || m.Cause != "wall" || m.Heading != "left" {
		t.Fatalf("msg = %+v", m)
	}
	if m.Body[0] != [2]int{0, 2} || m.Food != [2]int{3, 4} {
		t.Fatalf("cells = %v food %v", m.Body, m.Food)
	}
	if m.AutoPilot != 1 || m.Paused != 0 {
		t.Fatalf("flags = a%d z%d", m.AutoPilot, m.Paused)
	}
}

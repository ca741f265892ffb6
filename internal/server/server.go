// Package server exposes a running session to browser clients over
// WebSocket. All connections share one board: every client sees the same
// state and any client may steer.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Garsondee/Snake-Sense/internal/game"
	"github.com/Garsondee/Snake-Sense/internal/session"
)

//go:embed static
var staticFiles embed.FS

const (
	inputBuffer     = 64
	defaultMaxConns = 64
)

var upgrader = websocket.Upgrader{
	CheckOrigin:       func(r *http.Request) bool { return true },
	ReadBufferSize:    1024,
	WriteBufferSize:   4096,
	EnableCompression: true,
}

// Server owns the shared session and the set of connected clients.
type Server struct {
	sess     *session.Session
	interval time.Duration
	conns    *ConnManager
	inputs   chan session.Input
	maxConns int

	mu   sync.RWMutex
	last StateMsg
}

// Option configures a Server.
type Option func(*Server)

// WithMaxConns caps concurrent clients; further upgrades are refused.
func WithMaxConns(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxConns = n
		}
	}
}

// New creates a server around sess, stepping it every interval once Run
// is called.
func New(sess *session.Session, interval time.Duration, opts ...Option) *Server {
	s := &Server{
		sess:     sess,
		interval: interval,
		conns:    NewConnManager(),
		inputs:   make(chan session.Input, inputBuffer),
		maxConns: defaultMaxConns,
	}
	for _, o := range opts {
		o(s)
	}
	s.last = NewStateMsg(sess.Snapshot(), sess.AutoPilot(), sess.Paused())
	return s
}

// Run drives the session until ctx is cancelled, broadcasting every change.
// Connections are closed on return.
func (s *Server) Run(ctx context.Context) error {
	defer s.conns.CloseAll()
	err := s.sess.Run(ctx, s.interval, s.inputs, s.publish)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// publish runs on the session goroutine.
func (s *Server) publish(snap game.Snapshot) {
	msg := NewStateMsg(snap, s.sess.AutoPilot(), s.sess.Paused())
	s.mu.Lock()
	s.last = msg
	s.mu.Unlock()

	for _, c := range s.conns.Snapshot() {
		if err := c.Send(msg); err != nil {
			log.Printf("send to %s failed: %v", c.ID, err)
			s.conns.Remove(c.ID)
			c.Close()
		}
	}
}

// Latest returns the most recently published state.
func (s *Server) Latest() StateMsg {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// Conns returns the number of connected clients.
func (s *Server) Conns() int { return s.conns.Count() }

// Handler returns the HTTP routes: the browser client at /, the socket at
// /ws and a liveness probe at /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", s.handleHealth)

	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Fatalf("static files: %v", err)
	}
	mux.Handle("/", http.FileServer(http.FS(sub)))
	return mux
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrade error: %v", err)
		return
	}

	if s.conns.Count() >= s.maxConns {
		sendErrorAndClose(ws, "server full")
		return
	}

	conn := NewConn(ws)
	latest := s.Latest()
	welcome := WelcomeMsg{
		Type:    MsgWelcome,
		ID:      conn.ID,
		Session: latest.Session,
		Rows:    latest.Rows,
		Cols:    latest.Cols,
	}
	if err := conn.Send(welcome); err != nil {
		conn.Close()
		return
	}
	if err := conn.Send(latest); err != nil {
		conn.Close()
		return
	}
	s.conns.Add(conn)
	log.Printf("client connected: %s (%d online)", conn.ID, s.conns.Count())

	go conn.ReadLoop(s.enqueue, func(c *Conn) {
		s.conns.Remove(c.ID)
		log.Printf("client disconnected: %s", c.ID)
	})
}

// enqueue hands an input to the session loop, dropping it if the loop is
// backed up.
func (s *Server) enqueue(in session.Input) {
	select {
	case s.inputs <- in:
	default:
		log.Printf("input %s dropped: queue full", in)
	}
}

type healthResponse struct {
	Status  string `json:"status"`
	Conns   int    `json:"conns"`
	Session string `json:"session"`
	Tick    int    `json:"tick"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	latest := s.Latest()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResponse{
		Status:  "ok",
		Conns:   s.conns.Count(),
		Session: latest.Session,
		Tick:    latest.Tick,
	})
}

func sendErrorAndClose(ws *websocket.Conn, msg string) {
	data, _ := json.Marshal(ErrorMsg{Type: MsgError, Message: msg})
	_ = ws.WriteMessage(websocket.TextMessage, data)
	ws.Close()
}

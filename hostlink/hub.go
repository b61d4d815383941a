package hostlink

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// session serializes writes to one connection.
type session struct {
	conn *websocket.Conn
	gm   bool

	mu sync.Mutex
}

func (s *session) writeJSON(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(v)
}

// Hub tracks connected sessions.
type Hub struct {
	mu       sync.Mutex
	sessions map[*session]struct{}
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[*session]struct{})}
}

func (h *Hub) add(s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[s] = struct{}{}
}

func (h *Hub) remove(s *session) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sessions[s]; !ok {
		return false
	}
	delete(h.sessions, s)
	return true
}

// Len returns the number of connected sessions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

func (h *Hub) snapshot() []*session {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*session, 0, len(h.sessions))
	for s := range h.sessions {
		out = append(out, s)
	}
	return out
}

// broadcast writes v to every session and drops the ones that fail.
func (h *Hub) broadcast(v any) {
	for _, s := range h.snapshot() {
		if err := s.writeJSON(v); err != nil {
			if h.remove(s) {
				s.conn.Close()
			}
		}
	}
}

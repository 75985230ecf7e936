package observer

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/1siamBot/rts-sim/engine/maplib"
	"github.com/1siamBot/rts-sim/engine/sim"
)

const (
	sendBuffer   = 8
	writeTimeout = 5 * time.Second
)

// MapInfo is the static geometry sent once per connection
type MapInfo struct {
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Cols    int     `json:"cols"`
	Rows    int     `json:"rows"`
	FogCols int     `json:"fog_cols"`
	FogRows int     `json:"fog_rows"`
	Tiles   []uint8 `json:"tiles"`
}

// Hello is the first frame on every connection
type Hello struct {
	Type      string  `json:"type"`
	MatchID   string  `json:"match_id"`
	SessionID string  `json:"session_id"`
	Map       MapInfo `json:"map"`
}

// State wraps one published snapshot
type State struct {
	Type  string       `json:"type"`
	State sim.Snapshot `json:"state"`
}

// Server streams match snapshots to read-only websocket clients on the
// loopback interface. Publish is called by the driver between ticks; each
// client has a small buffer and misses frames when it falls behind.
type Server struct {
	MatchID string

	log      *log.Logger
	info     MapInfo
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[string]chan []byte
}

func NewServer(m *maplib.Map, fog *sim.Fog, logger *log.Logger) *Server {
	tiles := make([]uint8, len(m.Tiles))
	for i, t := range m.Tiles {
		tiles[i] = uint8(t)
	}
	return &Server{
		MatchID: uuid.NewString(),
		log:     logger,
		info: MapInfo{
			Width:   m.Width,
			Height:  m.Height,
			Cols:    m.Cols,
			Rows:    m.Rows,
			FogCols: fog.Cols,
			FogRows: fog.Rows,
			Tiles:   tiles,
		},
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[string]chan []byte),
	}
}

// Clients returns the number of connected observers
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Publish fans a snapshot out to every client without blocking
func (s *Server) Publish(snap sim.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.clients) == 0 {
		return
	}
	b, err := json.Marshal(State{Type: "state", State: snap})
	if err != nil {
		s.log.Printf("observer: encode tick %d: %v", snap.Tick, err)
		return
	}
	for _, out := range s.clients {
		select {
		case out <- b:
		default:
		}
	}
}

// Close disconnects every client
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, out := range s.clients {
		close(out)
		delete(s.clients, id)
	}
}

func (s *Server) join() (string, chan []byte) {
	id := uuid.NewString()
	out := make(chan []byte, sendBuffer)
	s.mu.Lock()
	s.clients[id] = out
	s.mu.Unlock()
	return id, out
}

func (s *Server) leave(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if out, ok := s.clients[id]; ok {
		close(out)
		delete(s.clients, id)
	}
}

func (s *Server) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if !isLoopbackRemote(r.RemoteAddr) {
		http.Error(rw, "forbidden", http.StatusForbidden)
		return
	}
	conn, err := s.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	sid, out := s.join()
	defer s.leave(sid)
	s.log.Printf("observer: %s connected from %s", sid, r.RemoteAddr)

	hello, err := json.Marshal(Hello{Type: "hello", MatchID: s.MatchID, SessionID: sid, Map: s.info})
	if err != nil {
		return
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, hello); err != nil {
		return
	}

	// Clients never send anything meaningful; reading only detects the close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			s.log.Printf("observer: %s disconnected", sid)
			return
		case b, ok := <-out:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "match over"), time.Now().Add(time.Second))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
				return
			}
		}
	}
}

func isLoopbackRemote(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	host = strings.TrimPrefix(host, "[")
	host = strings.TrimSuffix(host, "]")
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

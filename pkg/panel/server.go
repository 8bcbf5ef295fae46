// Package panel serves a small browser page with one control per viewer
// setting and relays edits back to the frame loop over a websocket.
package panel

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"globe/internal/logger"
	"globe/pkg/params"
)

//go:embed index.html
var indexHTML []byte

// Message types
const (
	TypeState = "state"
	TypeSet   = "set"
)

// Message is the JSON envelope exchanged with the page
type Message struct {
	Type   string         `json:"type"`
	Name   string         `json:"name,omitempty"`
	Value  interface{}    `json:"value,omitempty"`
	Params []params.Entry `json:"params,omitempty"`
}

// Update is a requested assignment waiting for the frame loop
type Update struct {
	Name  string
	Value interface{} // bool or float64 as decoded from JSON
}

const (
	updateQueueSize = 64
	writeTimeout    = 2 * time.Second
)

// client is one connected page. Its writer goroutine owns all writes to conn;
// send holds at most the latest state not yet written.
type client struct {
	conn      *websocket.Conn
	send      chan Message
	done      chan struct{}
	closeOnce sync.Once
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn: conn,
		send: make(chan Message, 1),
		done: make(chan struct{}),
	}
}

// push queues msg without blocking, replacing any state still waiting
func (c *client) push(msg Message) {
	for {
		select {
		case c.send <- msg:
			return
		default:
		}
		select {
		case <-c.send:
		default:
		}
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// Server owns the HTTP listener and the set of connected pages. Only the
// update channel crosses into the frame loop; the server never touches the
// store itself.
type Server struct {
	log      *logger.Logger
	addr     string
	upgrader websocket.Upgrader
	updates  chan Update
	done     chan struct{}

	mu      sync.RWMutex
	clients map[*client]struct{}
	state   []params.Entry

	httpServer *http.Server
	listener   net.Listener
	closeOnce  sync.Once
}

// NewServer creates a panel server for addr. Nothing listens until Start.
func NewServer(addr string, log *logger.Logger) *Server {
	return &Server{
		log:     log,
		addr:    addr,
		updates: make(chan Update, updateQueueSize),
		done:    make(chan struct{}),
		clients: make(map[*client]struct{}),
	}
}

// Handler returns the routes: the page at / and the websocket at /ws
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveIndex)
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// Start binds the listener and serves in the background
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Errorf("Panel server stopped: %v", err)
		}
	}()

	s.log.Infof("Parameter panel on http://%s", ln.Addr())
	return nil
}

// Addr returns the bound address, or the configured one before Start
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Updates exposes queued assignments
func (s *Server) Updates() <-chan Update {
	return s.updates
}

// Apply drains every queued update into store without blocking and returns
// how many were processed. Rejected updates are logged; the next Broadcast
// corrects the page.
func (s *Server) Apply(store *params.Store) int {
	n := 0
	for {
		select {
		case u := <-s.updates:
			n++
			if err := store.SetAny(u.Name, u.Value); err != nil {
				s.log.Warnf("Panel update rejected: %v", err)
				continue
			}
			s.log.Debugf("Panel set %s = %v", u.Name, u.Value)
		default:
			return n
		}
	}
}

// Broadcast records entries as the current state and queues it for every
// page. It never waits on the network; a page that falls behind only sees
// the newest state.
func (s *Server) Broadcast(entries []params.Entry) {
	msg := Message{Type: TypeState, Params: entries}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = entries
	for c := range s.clients {
		c.push(msg)
	}
}

// Clients returns the number of connected pages
func (s *Server) Clients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Shutdown stops the listener and disconnects every page
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		if s.httpServer != nil {
			err = s.httpServer.Shutdown(ctx)
		}
		s.mu.Lock()
		for c := range s.clients {
			c.close()
			delete(s.clients, c)
		}
		s.mu.Unlock()
	})
	return err
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnf("WebSocket upgrade error: %v", err)
		return
	}
	c := newClient(conn)
	defer s.drop(c)

	s.mu.Lock()
	s.clients[c] = struct{}{}
	if s.state != nil {
		c.push(Message{Type: TypeState, Params: s.state})
	}
	s.mu.Unlock()

	s.log.Debugf("Panel client connected from %s", r.RemoteAddr)
	go s.writeLoop(c)

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debugf("WebSocket read error: %v", err)
			}
			return
		}

		if msg.Type != TypeSet || msg.Name == "" {
			s.log.Warnf("Ignoring panel message of type %q", msg.Type)
			continue
		}

		select {
		case s.updates <- Update{Name: msg.Name, Value: msg.Value}:
		case <-s.done:
			return
		}
	}
}

// writeLoop sends queued state to one page until it disconnects
func (s *Server) writeLoop(c *client) {
	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteJSON(msg); err != nil {
				s.log.Warnf("Panel write error: %v", err)
				s.drop(c)
				return
			}
		case <-c.done:
			return
		}
	}
}

func (s *Server) drop(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
	c.close()
}

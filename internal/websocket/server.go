package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/s3lm4n/flight-planner/internal/sim"
	"github.com/s3lm4n/flight-planner/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 64
)

// Message is the envelope pushed to subscribers.
type Message struct {
	Type         string      `json:"type"`
	SimulationID string      `json:"simulation_id,omitempty"`
	Data         interface{} `json:"data,omitempty"`
}

// Server is a broadcast hub: every connected client receives every frame.
// Clients are read-only consumers; inbound messages besides pongs are
// discarded, so a subscriber can never mutate engine state.
type Server struct {
	logger   *logger.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewServer creates a new websocket hub.
func NewServer(log *logger.Logger) *Server {
	return &Server{
		logger: log.Named("websocket"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// The API middleware already handles origin policy.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// HandleConnection upgrades an HTTP request and registers the client.
func (s *Server) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Websocket upgrade failed", logger.Error(err))
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	count := len(s.clients)
	s.mu.Unlock()

	s.logger.Debug("Websocket client connected", logger.Int("clients", count))

	go s.writePump(c)
	go s.readPump(c)
}

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// BroadcastSimulation pushes one simulation frame to every client.
// Implements sim.Broadcaster.
func (s *Server) BroadcastSimulation(id string, out sim.Output) {
	s.broadcast(Message{
		Type:         "simulation_update",
		SimulationID: id,
		Data:         out,
	})
}

func (s *Server) broadcast(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("Failed to marshal websocket message", logger.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- payload:
		default:
			// Slow consumer; drop it rather than stall the driver.
			s.dropLocked(c)
		}
	}
}

func (s *Server) dropLocked(c *client) {
	delete(s.clients, c)
	close(c.send)
}

func (s *Server) drop(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; ok {
		s.dropLocked(c)
	}
}

// readPump discards inbound traffic and tears the client down on error.
func (s *Server) readPump(c *client) {
	defer func() {
		s.drop(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

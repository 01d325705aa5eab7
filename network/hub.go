// Package network streams rendered frames to websocket subscribers
package network

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/orrery/render"
)

// ErrHubClosed is returned by Present after Close
var ErrHubClosed = errors.New("hub closed")

// Hub broadcasts every presented frame as a websocket text message
// A frame is serialized once per tick and only when at least one client is connected
type Hub struct {
	cfg        *Config
	upgrader   websocket.Upgrader
	serializer *render.Serializer
	color      bool
	logger     *slog.Logger

	mu      sync.RWMutex
	clients map[ClientID]*client
	nextID  atomic.Uint32
	closed  bool

	sent    atomic.Uint64
	dropped atomic.Uint64
}

// NewHub creates a hub serializing frames with serializer; nil cfg uses DefaultConfig
func NewHub(cfg *Config, serializer *render.Serializer, color bool, logger *slog.Logger) *Hub {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if serializer == nil {
		serializer = render.NewSerializer(nil)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Hub{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		serializer: serializer,
		color:      color,
		logger:     logger,
		clients:    make(map[ClientID]*client),
	}
}

// ServeHTTP upgrades the request and subscribes the connection
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	full := len(h.clients) >= h.cfg.MaxClients
	closed := h.closed
	h.mu.RUnlock()
	if closed {
		http.Error(w, "stream closed", http.StatusServiceUnavailable)
		return
	}
	if full {
		http.Error(w, "too many clients", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := newClient(ClientID(h.nextID.Add(1)), conn, h.cfg.SendQueueSize)
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		c.close()
		return
	}
	h.clients[c.id] = c
	h.mu.Unlock()
	h.logger.Info("stream client connected", "id", c.id, "remote", c.addr)

	go c.writeLoop(h.cfg.WriteTimeout, h.cfg.PingInterval)
	c.readLoop(h.cfg.PongTimeout)

	h.remove(c)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c.id)
	h.mu.Unlock()
	c.close()
	h.logger.Info("stream client disconnected", "id", c.id, "remote", c.addr, "dropped", c.dropped.Load())
}

// Present serializes buf and queues it for every client
func (h *Hub) Present(buf *render.FrameBuffer) error {
	h.mu.RLock()
	n, closed := len(h.clients), h.closed
	h.mu.RUnlock()
	if closed {
		return ErrHubClosed
	}
	if n == 0 {
		return nil
	}
	h.Broadcast(h.serializer.Serialize(buf, h.color))
	return nil
}

// Broadcast queues text for every client, dropping it for clients whose queue is full
func (h *Hub) Broadcast(text string) {
	frame := []byte(text)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		if c.send(frame) {
			h.sent.Add(1)
		} else {
			h.dropped.Add(1)
		}
	}
}

// Clients returns the number of connected clients
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Stats returns frames queued and frames dropped across all clients
func (h *Hub) Stats() (sent, dropped uint64) {
	return h.sent.Load(), h.dropped.Load()
}

// Close disconnects every client and rejects new ones
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
}

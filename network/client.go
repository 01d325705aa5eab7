package network

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// ClientID identifies a stream subscriber
type ClientID uint32

// client is one websocket subscriber
// All writes happen on writeLoop; readLoop only drains control frames
type client struct {
	id   ClientID
	addr string
	conn *websocket.Conn

	sendCh  chan []byte
	dropped atomic.Uint64

	closeCh   chan struct{}
	closeOnce sync.Once
}

func newClient(id ClientID, conn *websocket.Conn, queueSize int) *client {
	return &client{
		id:      id,
		addr:    conn.RemoteAddr().String(),
		conn:    conn,
		sendCh:  make(chan []byte, queueSize),
		closeCh: make(chan struct{}),
	}
}

// send queues a frame without blocking
// Returns false if the client is closed or its queue is full
func (c *client) send(frame []byte) bool {
	select {
	case <-c.closeCh:
		return false
	default:
	}
	select {
	case c.sendCh <- frame:
		return true
	default:
		c.dropped.Add(1)
		return false
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.closeCh)
		c.conn.Close()
	})
}

// readLoop discards client messages and keeps the pong deadline fresh
func (c *client) readLoop(pongTimeout time.Duration) {
	defer c.close()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writeLoop sends queued frames and pings
func (c *client) writeLoop(writeTimeout, pingInterval time.Duration) {
	defer c.close()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-c.closeCh:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(writeTimeout))
			return
		case frame := <-c.sendCh:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}

package network

import "time"

// Config holds frame stream configuration
type Config struct {
	// Address to bind, empty disables streaming
	Address string
	// Path the websocket endpoint is mounted on
	Path string

	MaxClients int

	WriteTimeout time.Duration
	PingInterval time.Duration
	// PongTimeout closes a client that stops answering pings
	PongTimeout time.Duration

	ReadBufferSize  int
	WriteBufferSize int
	// SendQueueSize is the per-client frame backlog; frames beyond it are dropped
	SendQueueSize int
}

// DefaultConfig returns defaults for a local stream
func DefaultConfig() *Config {
	return &Config{
		Path:            "/frames",
		MaxClients:      16,
		WriteTimeout:    5 * time.Second,
		PingInterval:    10 * time.Second,
		PongTimeout:     30 * time.Second,
		ReadBufferSize:  1024,
		WriteBufferSize: 64 * 1024,
		SendQueueSize:   4,
	}
}

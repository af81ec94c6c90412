package config

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader     websocket.Upgrader
	TickInterval time.Duration
}

func NewWebSocket() (*WebSocket, error) {
	upgrader := websocket.Upgrader{
		HandshakeTimeout: 10 * time.Second,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	ws := &WebSocket{
		Upgrader:     upgrader,
		TickInterval: time.Second,
	}

	if tickStr, ok := os.LookupEnv("WS_TICK_INTERVAL"); ok {
		tick, err := time.ParseDuration(tickStr)
		if err != nil {
			return nil, fmt.Errorf("unable to parse WS_TICK_INTERVAL: %w", err)
		}
		if tick <= 0 {
			return nil, fmt.Errorf("WS_TICK_INTERVAL must be positive, got %s", tick)
		}
		ws.TickInterval = tick
	}

	return ws, nil
}

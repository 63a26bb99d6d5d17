// Package spectate streams session snapshots to read-only websocket viewers.
package spectate

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/brensch/snakewalls/game"
	"github.com/gorilla/websocket"
)

// Config holds hub settings.
type Config struct {
	WriteTimeout time.Duration
	// CheckOrigin defaults to allowing any origin; viewers cannot send input.
	CheckOrigin func(r *http.Request) bool
}

func DefaultConfig() Config {
	return Config{WriteTimeout: 3 * time.Second}
}

// Hub fans snapshots out to every connected viewer. Frame is called from the
// simulation goroutine; connections are added from HTTP handlers.
type Hub struct {
	cfg      Config
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	latest  []byte
}

func NewHub(cfg Config, logger *slog.Logger) *Hub {
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultConfig().WriteTimeout
	}
	checkOrigin := cfg.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		cfg:      cfg,
		upgrader: websocket.Upgrader{CheckOrigin: checkOrigin},
		logger:   logger,
		clients:  make(map[*websocket.Conn]struct{}),
	}
}

// ServeHTTP upgrades the request and sends the latest snapshot right away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("spectator upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	h.mu.Lock()
	if h.latest != nil {
		if err := h.write(conn, h.latest); err != nil {
			h.mu.Unlock()
			_ = conn.Close()
			return
		}
	}
	h.clients[conn] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("spectator joined", "remote", r.RemoteAddr, "viewers", n)

	// Viewers never send anything meaningful; reading detects disconnects
	// and services control frames.
	go func() {
		for {
			if _, _, err := conn.NextReader(); err != nil {
				h.remove(conn)
				return
			}
		}
	}()
}

// Frame broadcasts one snapshot. Viewers that fail a write are dropped.
func (h *Hub) Frame(s game.Snapshot) error {
	msg, err := json.Marshal(s)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = msg
	for conn := range h.clients {
		if err := h.write(conn, msg); err != nil {
			h.logger.Debug("dropping spectator", "remote", conn.RemoteAddr().String(), "err", err)
			_ = conn.Close()
			delete(h.clients, conn)
		}
	}
	return nil
}

// Viewers is the number of connected spectators.
func (h *Hub) Viewers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every viewer.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session over"),
			time.Now().Add(time.Second))
		_ = conn.Close()
		delete(h.clients, conn)
	}
	return nil
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()
	if ok {
		_ = conn.Close()
		h.logger.Info("spectator left", "remote", conn.RemoteAddr().String())
	}
}

// write must be called with h.mu held.
func (h *Hub) write(conn *websocket.Conn, msg []byte) error {
	_ = conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
	return conn.WriteMessage(websocket.TextMessage, msg)
}

package spectate

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/brensch/snakewalls/game"
	"github.com/brensch/snakewalls/logging"
	"github.com/gorilla/websocket"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readSnapshot(t *testing.T, conn *websocket.Conn) game.Snapshot {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var s game.Snapshot
	if err := json.Unmarshal(msg, &s); err != nil {
		t.Fatalf("decode %s: %v", msg, err)
	}
	return s
}

func waitViewers(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for h.Viewers() != n {
		if time.Now().After(deadline) {
			t.Fatalf("viewers=%d want=%d", h.Viewers(), n)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHub_BroadcastsFrames(t *testing.T) {
	hub := NewHub(DefaultConfig(), logging.Discard())
	srv := httptest.NewServer(hub)
	defer srv.Close()

	cfg := game.DefaultConfig()
	cfg.Seed = 8
	sess, err := game.NewSession(cfg, game.WithID("spectated"))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	// First frame before anyone joins becomes the greeting.
	if err := hub.Frame(sess.Snapshot()); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	conn := dial(t, srv)
	greeting := readSnapshot(t, conn)
	if greeting.SessionID != "spectated" || greeting.Tick != 0 {
		t.Fatalf("greeting=%+v", greeting)
	}
	waitViewers(t, hub, 1)

	snap, _ := sess.Tick()
	if err := hub.Frame(snap); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	got := readSnapshot(t, conn)
	if got.Tick != 1 || got.Head() != snap.Head() || len(got.Walls) != len(snap.Walls) || got.Direction != snap.Direction {
		t.Fatalf("got %+v want %+v", got, snap)
	}
}

func TestHub_DropsDisconnectedViewers(t *testing.T) {
	hub := NewHub(Config{WriteTimeout: time.Second}, logging.Discard())
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	waitViewers(t, hub, 1)
	conn.Close()
	waitViewers(t, hub, 0)
}

func TestHub_CloseDisconnectsViewers(t *testing.T) {
	hub := NewHub(DefaultConfig(), logging.Discard())
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	waitViewers(t, hub, 1)
	if err := hub.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Fatalf("read after Close: %v", err)
	}
}

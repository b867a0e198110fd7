package stream

import (
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	return conn
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, got %d", n, hub.ClientCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	hub := NewHub(log.New(io.Discard, "", 0))
	defer hub.Close()

	srv := httptest.NewServer(hub)
	defer srv.Close()

	first := dial(t, srv)
	defer first.Close()
	second := dial(t, srv)
	defer second.Close()
	waitForClients(t, hub, 2)

	payload := []byte(`{"pool_address":"00ff","slot":42}`)
	hub.Broadcast(ChannelSwapInserted, payload)

	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}

		var ev Event
		if err := json.Unmarshal(msg, &ev); err != nil {
			t.Fatalf("unmarshal envelope: %v", err)
		}
		if ev.Channel != ChannelSwapInserted {
			t.Errorf("channel mismatch: %s", ev.Channel)
		}
		if string(ev.Data) != string(payload) {
			t.Errorf("payload mismatch: %s", ev.Data)
		}
	}
}

func TestHub_DisconnectUnregisters(t *testing.T) {
	hub := NewHub(log.New(io.Discard, "", 0))
	defer hub.Close()

	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)
}

func TestHub_CloseRejectsNewClients(t *testing.T) {
	hub := NewHub(log.New(io.Discard, "", 0))
	srv := httptest.NewServer(hub)
	defer srv.Close()

	hub.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		// The server may refuse the upgrade outright; both outcomes are fine.
		return
	}
	defer conn.Close()

	// The connection is closed immediately after the handshake.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected connection to be closed")
	}
}

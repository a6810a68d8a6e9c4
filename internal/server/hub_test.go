package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/abhinaya/internal/rig"
	"github.com/ayusman/abhinaya/testdata"
)

func dialHub(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(url, "http")+"/api/rig", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func waitForClients(t *testing.T, hub *RigHub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", n, hub.Clients())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestRigHub(t *testing.T) {
	hub := NewRigHub()
	defer hub.Close()

	ts := httptest.NewServer(New(Config{Hub: hub}))
	defer ts.Close()

	t.Run("publish without clients is a no-op", func(t *testing.T) {
		hub.Publish(&rig.Result{})
	})

	a := dialHub(t, ts.URL)
	defer a.Close()
	b := dialHub(t, ts.URL)
	defer b.Close()
	waitForClients(t, hub, 2)

	res, err := rig.Solve(testdata.HolisticFrame(), rig.DefaultOptions())
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	hub.Publish(res)

	for name, conn := range map[string]*websocket.Conn{"a": a, "b": b} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("client %s: read: %v", name, err)
		}

		var msg struct {
			Rig       map[string]json.RawMessage `json:"rig"`
			Timestamp int64                      `json:"timestamp"`
		}
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("client %s: decode: %v", name, err)
		}
		if msg.Timestamp == 0 {
			t.Errorf("client %s: expected a timestamp", name)
		}
		if _, ok := msg.Rig["pose"]; !ok {
			t.Errorf("client %s: expected pose in broadcast", name)
		}
	}

	t.Run("disconnected clients are removed", func(t *testing.T) {
		b.Close()
		waitForClients(t, hub, 1)
	})
}

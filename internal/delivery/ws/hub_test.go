package ws

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kamchettysadhika/GdocsforCoding/internal/config"
	"github.com/kamchettysadhika/GdocsforCoding/internal/metrics"
	"github.com/kamchettysadhika/GdocsforCoding/internal/usecase"
)

// fakeExecutor returns a canned result, or panics when asked to, without
// shelling out to an interpreter.
type fakeExecutor struct {
	result usecase.Result
	panics bool
}

func (f *fakeExecutor) Execute(ctx context.Context, code, language string) usecase.Result {
	if f.panics {
		panic("executor exploded")
	}
	r := f.result
	if r.Language == "" {
		r.Language = language
	}
	return r
}

// newTestHub builds an isolated hub with its own registry and metrics.
func newTestHub() *Hub {
	m := metrics.New(prometheus.NewRegistry())
	return NewHub(config.Default(), NewRegistry(m), &fakeExecutor{}, m)
}

// newMockClient creates a client without an actual websocket connection and
// registers it, draining the connectionEstablished greeting.
func newMockClient(t *testing.T, hub *Hub, id string) *Client {
	t.Helper()
	c := &Client{
		ID:   id,
		hub:  hub,
		conn: nil,
		send: make(chan []byte, 256),
	}
	hub.Connect(c)

	greeting := recvEvent(t, c)
	if greeting["type"] != "connectionEstablished" {
		t.Fatalf("Expected connectionEstablished greeting, got %v", greeting["type"])
	}
	if greeting["userId"] != id {
		t.Fatalf("Expected greeting userId %s, got %v", id, greeting["userId"])
	}
	return c
}

// recvEvent pops the next queued frame for c and decodes it. Fails the test
// if nothing is queued.
func recvEvent(t *testing.T, c *Client) map[string]any {
	t.Helper()
	select {
	case raw, ok := <-c.send:
		if !ok {
			t.Fatal("Send channel closed while expecting an event")
		}
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			t.Fatalf("Invalid JSON frame: %v", err)
		}
		return m
	default:
		t.Fatal("Expected a queued event, channel was empty")
		return nil
	}
}

// expectNoEvent asserts that nothing is queued for c.
func expectNoEvent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case raw := <-c.send:
		t.Fatalf("Expected no event, got %s", raw)
	default:
	}
}

// drain discards everything currently queued for c.
func drain(c *Client) {
	for {
		select {
		case <-c.send:
		default:
			return
		}
	}
}

// frame builds an inbound JSON frame from a field map.
func frame(t *testing.T, fields map[string]any) []byte {
	t.Helper()
	raw, err := json.Marshal(fields)
	if err != nil {
		t.Fatalf("Marshal frame: %v", err)
	}
	return raw
}

// createSession drives the createSession path for c and drains the ack.
func createSession(t *testing.T, hub *Hub, c *Client, sessionID, username string) {
	t.Helper()
	hub.Dispatch(c.ID, frame(t, map[string]any{
		"type":      "createSession",
		"sessionId": sessionID,
		"username":  username,
	}))
	ack := recvEvent(t, c)
	if ack["type"] != "sessionCreated" {
		t.Fatalf("Expected sessionCreated, got %v (message: %v)", ack["type"], ack["message"])
	}
}

// joinSession drives the joinSession path for c and drains the snapshot.
func joinSession(t *testing.T, hub *Hub, c *Client, sessionID, username string) {
	t.Helper()
	hub.Dispatch(c.ID, frame(t, map[string]any{
		"type":      "joinSession",
		"sessionId": sessionID,
		"username":  username,
	}))
	ack := recvEvent(t, c)
	if ack["type"] != "sessionJoined" {
		t.Fatalf("Expected sessionJoined, got %v (message: %v)", ack["type"], ack["message"])
	}
}

package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kamchettysadhika/GdocsforCoding/internal/config"
	"github.com/kamchettysadhika/GdocsforCoding/internal/delivery/ws"
	"github.com/kamchettysadhika/GdocsforCoding/internal/metrics"
	"github.com/kamchettysadhika/GdocsforCoding/internal/usecase"
)

func newTestServer(t *testing.T, cfg *config.Config) (*httptest.Server, *ws.Hub) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	hub := ws.NewHub(cfg, ws.NewRegistry(m), usecase.NewCommandExecutor(cfg.ExecTimeout), m)
	router := NewRouter(NewHandler(hub, cfg), reg)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, hub
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, config.Default())

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("Health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Invalid JSON body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}

	// Security headers are applied router-wide.
	if resp.Header.Get("X-Content-Type-Options") != "nosniff" {
		t.Error("Expected security headers on responses")
	}
}

func TestStatsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, config.Default())

	resp, err := http.Get(srv.URL + "/api/stats")
	if err != nil {
		t.Fatalf("Stats request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var stats struct {
		Timestamp      string `json:"timestamp"`
		ActiveSessions int    `json:"active_sessions"`
		TotalUsers     int    `json:"total_users"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("Invalid JSON body: %v", err)
	}
	if stats.ActiveSessions != 0 || stats.TotalUsers != 0 {
		t.Errorf("Expected empty server stats, got %+v", stats)
	}
	if _, err := time.Parse(time.RFC3339, stats.Timestamp); err != nil {
		t.Errorf("timestamp not RFC3339: %v", err)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, config.Default())

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("Metrics request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
}

func TestStatsRateLimit(t *testing.T) {
	cfg := config.Default()
	cfg.RateLimitAPI = 1

	srv, _ := newTestServer(t, cfg)

	var limited bool
	for i := 0; i < 30; i++ {
		resp, err := http.Get(srv.URL + "/api/stats")
		if err != nil {
			t.Fatalf("Stats request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("Expected rate limiting to kick in")
	}
}

func TestIsOriginAllowed(t *testing.T) {
	tests := []struct {
		origin  string
		allowed []string
		want    bool
	}{
		{"", []string{"https://a.example"}, true},
		{"https://a.example", []string{"https://a.example"}, true},
		{"https://evil.example", []string{"https://a.example"}, false},
		{"https://anything.example", []string{"*"}, true},
		{"https://b.example", []string{"https://a.example", "https://b.example"}, true},
	}

	for _, tc := range tests {
		if got := isOriginAllowed(tc.origin, tc.allowed); got != tc.want {
			t.Errorf("isOriginAllowed(%q, %v) = %v, want %v", tc.origin, tc.allowed, got, tc.want)
		}
	}
}

func TestWebSocket_CreateSessionRoundTrip(t *testing.T) {
	srv, hub := newTestServer(t, config.Default())

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	readEvent := func() map[string]any {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, raw, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			t.Fatalf("Invalid frame: %v", err)
		}
		return m
	}

	greeting := readEvent()
	if greeting["type"] != "connectionEstablished" {
		t.Fatalf("Expected connectionEstablished, got %v", greeting["type"])
	}
	userID, _ := greeting["userId"].(string)
	if userID == "" {
		t.Fatal("Expected a server-assigned user id")
	}

	if err := conn.WriteJSON(map[string]any{
		"type":      "createSession",
		"sessionId": "integration",
		"username":  "Tester",
	}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	ack := readEvent()
	if ack["type"] != "sessionCreated" {
		t.Fatalf("Expected sessionCreated, got %v", ack)
	}
	if ack["userId"] != userID {
		t.Errorf("Expected ack for %s, got %v", userID, ack["userId"])
	}

	// Give the read pump a moment to settle, then check server state.
	deadline := time.Now().Add(2 * time.Second)
	for hub.SessionCount() != 1 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.SessionCount() != 1 {
		t.Errorf("Expected 1 session on the server, got %d", hub.SessionCount())
	}
}

func TestWebSocket_OriginRejected(t *testing.T) {
	cfg := config.Default()
	cfg.AllowedOrigins = []string{"https://allowed.example"}

	srv, _ := newTestServer(t, cfg)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	if err == nil {
		t.Fatal("Expected upgrade to be rejected")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected 403, got %v", resp)
	}
}

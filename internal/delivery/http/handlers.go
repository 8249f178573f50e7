package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kamchettysadhika/GdocsforCoding/internal/config"
	"github.com/kamchettysadhika/GdocsforCoding/internal/delivery/ws"
	"github.com/kamchettysadhika/GdocsforCoding/internal/middleware"
)

// Handler holds the HTTP-facing surface: the WebSocket upgrade endpoint plus
// the stats and health endpoints.
type Handler struct {
	hub      *ws.Hub
	cfg      *config.Config
	upgrader websocket.Upgrader
}

// NewHandler builds the handler with an upgrader scoped to the configured
// origins.
func NewHandler(hub *ws.Hub, cfg *config.Config) *Handler {
	return &Handler{
		hub: hub,
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return isOriginAllowed(r.Header.Get("Origin"), cfg.AllowedOrigins)
			},
		},
	}
}

// isOriginAllowed checks if the origin is in the allowed list. An empty
// origin (same-origin or non-browser client) is allowed.
func isOriginAllowed(origin string, allowed []string) bool {
	if origin == "" {
		return true
	}
	for _, a := range allowed {
		if a == "*" || origin == a {
			return true
		}
	}
	return false
}

// HandleWebSocket upgrades the connection and starts the client pumps. The
// read pump runs on this goroutine; its exit is the transport-close trigger
// for the departure path.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade from %s: %v", r.RemoteAddr, err)
		return
	}

	client := ws.NewClient(h.hub, conn)
	h.hub.Connect(client)

	go client.WritePump()
	client.ReadPump()
}

// HandleStats serves a point-in-time server statistics snapshot.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.hub.Stats())
}

// HandleHealth is a liveness probe.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// NewRouter assembles the route table with rate limiting on the upgrade and
// API endpoints and security headers on everything.
func NewRouter(h *Handler, gatherer prometheus.Gatherer) *mux.Router {
	wsLimiter := middleware.NewIPRateLimiter(h.cfg.RateLimitWS, 10)
	apiLimiter := middleware.NewIPRateLimiter(h.cfg.RateLimitAPI, 20)

	r := mux.NewRouter()
	r.HandleFunc("/ws", middleware.RateLimitFunc(wsLimiter, h.HandleWebSocket))
	r.HandleFunc("/api/stats", middleware.RateLimitFunc(apiLimiter, h.HandleStats)).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.HandleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Use(middleware.SecurityHeaders)

	return r
}

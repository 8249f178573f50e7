package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/kamchettysadhika/GdocsforCoding/internal/metrics"
)

// connInfo pairs a live client with its connection metadata.
type connInfo struct {
	client      *Client
	connectedAt time.Time
	lastSeen    time.Time
}

// Registry maps user ids to live outbound channels. Pure connection
// bookkeeping: session semantics live in the Hub, and sessions never hold a
// channel handle, so every delivery resolves the connection here at send
// time.
type Registry struct {
	mu      sync.RWMutex
	conns   map[string]*connInfo
	metrics *metrics.Metrics
}

// NewRegistry creates an empty registry.
func NewRegistry(m *metrics.Metrics) *Registry {
	return &Registry{
		conns:   make(map[string]*connInfo),
		metrics: m,
	}
}

// Register binds a user id to its outbound channel.
func (r *Registry) Register(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.conns[c.ID] = &connInfo{client: c, connectedAt: now, lastSeen: now}
	r.metrics.Connections.Inc()
}

// Unregister drops the connection and closes its outbound channel. Safe to
// call more than once per user id; reports whether the entry existed.
func (r *Registry) Unregister(userID string) bool {
	r.mu.Lock()
	info, ok := r.conns[userID]
	if ok {
		delete(r.conns, userID)
		r.metrics.Connections.Dec()
	}
	r.mu.Unlock()
	if ok {
		info.client.close()
	}
	return ok
}

// Send marshals event and enqueues it for userID. A failed send is terminal
// for the connection: the entry is removed immediately, the send is never
// retried, and the caller is responsible for routing the user through the
// departure path.
func (r *Registry) Send(userID string, event any) bool {
	data, err := json.Marshal(event)
	if err != nil {
		// A marshal failure is a server bug, not a dead connection.
		log.Printf("marshal %T for %s: %v", event, userID, err)
		return true
	}

	r.mu.Lock()
	info, ok := r.conns[userID]
	if !ok {
		r.mu.Unlock()
		return false
	}
	select {
	case info.client.send <- data:
		r.mu.Unlock()
		return true
	default:
		// Buffer full or writer gone: the connection is dead to us.
		delete(r.conns, userID)
		r.metrics.Connections.Dec()
		r.mu.Unlock()
		info.client.close()
		return false
	}
}

// IsLive reports whether a user id has a registered connection.
func (r *Registry) IsLive(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.conns[userID]
	return ok
}

// Touch refreshes the connection's last-seen timestamp.
func (r *Registry) Touch(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if info, ok := r.conns[userID]; ok {
		info.lastSeen = time.Now()
	}
}

// Count returns the number of registered connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// UserIDs returns a snapshot of all registered user ids.
func (r *Registry) UserIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.conns))
	for id := range r.conns {
		ids = append(ids, id)
	}
	return ids
}

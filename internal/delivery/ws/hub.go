package ws

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/kamchettysadhika/GdocsforCoding/internal/config"
	"github.com/kamchettysadhika/GdocsforCoding/internal/domain"
	"github.com/kamchettysadhika/GdocsforCoding/internal/metrics"
	"github.com/kamchettysadhika/GdocsforCoding/internal/usecase"
)

// Hub owns the session store and the reverse user→session index and runs
// every handler for inbound events. All session mutation happens while the
// hub mutex is held; network delivery is a non-blocking enqueue onto a
// client's buffered channel, so the mutex is never held across real I/O.
//
// Lock order is always hub → registry, never the reverse.
type Hub struct {
	mu       sync.Mutex
	cfg      *config.Config
	registry *Registry
	store    *store
	exec     usecase.Executor
	metrics  *metrics.Metrics
}

// NewHub wires the hub to its collaborators. Nothing here is global: tests
// construct isolated hubs with their own registry and metrics.
func NewHub(cfg *config.Config, registry *Registry, exec usecase.Executor, m *metrics.Metrics) *Hub {
	return &Hub{
		cfg:      cfg,
		registry: registry,
		store:    newStore(),
		exec:     exec,
		metrics:  m,
	}
}

// Connect registers a new connection and greets it with its assigned user id.
func (h *Hub) Connect(c *Client) {
	h.registry.Register(c)
	log.Printf("new connection: %s", c.ID)
	h.sendTo(c.ID, domain.ConnectionEstablished{
		Type:       domain.EventConnectionEstablished,
		UserID:     c.ID,
		ServerTime: domain.Timestamp(),
	})
}

// HandleDisconnect runs the departure path for a transport-level close.
func (h *Hub) HandleDisconnect(userID string) {
	h.departUser(userID)
}

// departUser is the single departure path: it reconciles registry and
// session state after any form of connection loss. It is idempotent per user
// id, and processes members found dead while notifying as a queue rather
// than recursing.
func (h *Hub) departUser(userID string) {
	queue := []string{userID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		h.registry.Unregister(id)
		h.metrics.DeparturesTotal.Inc()

		h.mu.Lock()
		dead := h.removeFromSessionLocked(id)
		h.mu.Unlock()

		queue = append(queue, dead...)
	}
}

// removeFromSessionLocked takes a user out of its session, notifies the
// remaining members, and fails the host role over when needed. If the session
// is left empty it is purged in the same step, so an empty session is never
// observable in the store.
func (h *Hub) removeFromSessionLocked(userID string) []string {
	s, ok := h.store.sessionOf(userID)
	h.store.unbind(userID)
	if !ok {
		return nil
	}

	u := s.removeUser(userID)
	if u == nil {
		return nil
	}

	if len(s.Users) == 0 {
		h.store.delete(s.ID)
		h.metrics.ActiveSessions.Dec()
		log.Printf("session %s cleaned up", s.ID)
		return nil
	}

	dead := h.broadcastLocked(s, domain.UserLeft{
		Type:      domain.EventUserLeft,
		UserID:    userID,
		Username:  u.Username,
		UserCount: len(s.Users),
		Timestamp: domain.Timestamp(),
	}, "")

	if userID == s.HostID {
		if newHost, ok := s.firstMember(); ok {
			s.HostID = newHost
			dead = append(dead, h.broadcastLocked(s, domain.HostTransferred{
				Type:        domain.EventHostTransferred,
				NewHostID:   newHost,
				NewHostname: s.Users[newHost].Username,
				Timestamp:   domain.Timestamp(),
			}, "")...)
		}
	}

	return dead
}

// endSessionLocked broadcasts sessionEnded to every member, removes all
// user→session bindings and purges the store entry. The session id is free
// for reuse as soon as this returns.
func (h *Hub) endSessionLocked(s *Session, reason string) []string {
	dead := h.broadcastLocked(s, domain.SessionEnded{
		Type:      domain.EventSessionEnded,
		Reason:    reason,
		Timestamp: domain.Timestamp(),
	}, "")

	for _, id := range s.memberIDs() {
		h.store.unbind(id)
	}
	h.store.delete(s.ID)
	h.metrics.ActiveSessions.Dec()
	log.Printf("session %s ended: %s", s.ID, reason)
	return dead
}

// RunSweeper periodically retires abandoned sessions until ctx is canceled.
// This is the only mechanism that reclaims sessions left behind without a
// clean endSession or full disconnect sequence.
func (h *Hub) RunSweeper(ctx context.Context) {
	ticker := time.NewTicker(h.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Sweep(time.Now())
		}
	}
}

// Sweep ends every session that is empty, inactive past the session
// inactivity limit, or whose members are all idle past the member idle limit.
func (h *Hub) Sweep(now time.Time) {
	h.mu.Lock()
	var expired []*Session
	for _, s := range h.store.sessions {
		if h.sweepable(s, now) {
			expired = append(expired, s)
		}
	}
	var dead []string
	for _, s := range expired {
		dead = append(dead, h.endSessionLocked(s, "Session cleaned up")...)
	}
	h.mu.Unlock()

	h.reap(dead)
}

func (h *Hub) sweepable(s *Session, now time.Time) bool {
	if len(s.Users) == 0 {
		return true
	}
	if now.Sub(s.LastActivity) > h.cfg.SessionInactivity {
		return true
	}
	for _, u := range s.Users {
		if now.Sub(u.LastSeen) <= h.cfg.MemberIdleLimit {
			return false
		}
	}
	return true
}

// Shutdown notifies every live connection and tears down all sessions. The
// sweeper is canceled separately through its context. Failed sends stay
// terminal here too and go through the departure path.
func (h *Hub) Shutdown() {
	var dead []string
	for _, id := range h.registry.UserIDs() {
		if !h.registry.Send(id, domain.ServerShutdown{
			Type:      domain.EventServerShutdown,
			Message:   "Server is shutting down",
			Timestamp: domain.Timestamp(),
		}) {
			dead = append(dead, id)
		}
	}

	h.mu.Lock()
	sessions := make([]*Session, 0, h.store.count())
	for _, s := range h.store.sessions {
		sessions = append(sessions, s)
	}
	for _, s := range sessions {
		dead = append(dead, h.endSessionLocked(s, "Session cleaned up")...)
	}
	h.mu.Unlock()

	h.reap(dead)
}

// SessionCount returns the number of live sessions.
func (h *Hub) SessionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.store.count()
}

// SessionStats is the per-session slice of Stats.
type SessionStats struct {
	Users        int    `json:"users"`
	Documents    int    `json:"documents"`
	CreatedAt    string `json:"created_at"`
	LastActivity string `json:"last_activity"`
}

// Stats is the server statistics snapshot served by the stats endpoint.
type Stats struct {
	Timestamp      string                  `json:"timestamp"`
	ActiveSessions int                     `json:"active_sessions"`
	TotalUsers     int                     `json:"total_users"`
	TotalDocuments int                     `json:"total_documents"`
	Sessions       map[string]SessionStats `json:"sessions"`
}

// Stats builds a point-in-time statistics snapshot.
func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()

	stats := Stats{
		Timestamp:      domain.Timestamp(),
		ActiveSessions: h.store.count(),
		TotalUsers:     h.registry.Count(),
		Sessions:       make(map[string]SessionStats, h.store.count()),
	}
	for id, s := range h.store.sessions {
		stats.TotalDocuments += len(s.Documents)
		stats.Sessions[id] = SessionStats{
			Users:        len(s.Users),
			Documents:    len(s.Documents),
			CreatedAt:    s.CreatedAt.UTC().Format(time.RFC3339),
			LastActivity: s.LastActivity.UTC().Format(time.RFC3339),
		}
	}
	return stats
}

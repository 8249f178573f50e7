package ws

import (
	"github.com/kamchettysadhika/GdocsforCoding/internal/domain"
)

// Presence handlers update a single member attribute and relay the event to
// everyone else. Beyond the session-existence check they never fail
// validation.

func (h *Hub) handleCursorUpdate(userID string, env *domain.Envelope) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.store.get(env.SessionID)
	if !ok {
		return h.errorLocked(userID, domain.ErrInvalidSession, "Invalid session")
	}
	if u, ok := s.Users[userID]; ok {
		u.Cursor = env.Cursor
		u.Touch()
	}

	return h.broadcastLocked(s, domain.CursorUpdate{
		Type:      domain.EventCursorUpdate,
		UserID:    userID,
		URI:       env.URI,
		Cursor:    env.Cursor,
		Selection: env.Selection,
		Timestamp: domain.Timestamp(),
	}, userID)
}

func (h *Hub) handleActiveFileChange(userID string, env *domain.Envelope) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.store.get(env.SessionID)
	if !ok {
		return h.errorLocked(userID, domain.ErrInvalidSession, "Invalid session")
	}
	if u, ok := s.Users[userID]; ok {
		u.ActiveFile = env.URI
		u.Touch()
	}

	return h.broadcastLocked(s, domain.ActiveFileChange{
		Type:       domain.EventActiveFileChange,
		UserID:     userID,
		ActiveFile: env.Filename,
		URI:        env.URI,
		Timestamp:  domain.Timestamp(),
	}, userID)
}

func (h *Hub) handleUserPresence(userID string, env *domain.Envelope) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.store.get(env.SessionID)
	if !ok {
		return h.errorLocked(userID, domain.ErrInvalidSession, "Invalid session")
	}
	if u, ok := s.Users[userID]; ok {
		u.Touch()
	}

	focused := true
	if env.Focused != nil {
		focused = *env.Focused
	}

	return h.broadcastLocked(s, domain.UserPresence{
		Type:      domain.EventUserPresence,
		UserID:    userID,
		Focused:   focused,
		Timestamp: domain.Timestamp(),
	}, userID)
}

func (h *Hub) handleFileClose(userID string, env *domain.Envelope) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.store.get(env.SessionID)
	if !ok {
		return h.errorLocked(userID, domain.ErrInvalidSession, "Invalid session")
	}

	return h.broadcastLocked(s, domain.FileClose{
		Type:      domain.EventFileClose,
		UserID:    userID,
		URI:       env.URI,
		Timestamp: domain.Timestamp(),
	}, userID)
}

// handleKeepAlive refreshes the member's last-seen timestamp. A keepAlive for
// a dead session is silently ignored.
func (h *Hub) handleKeepAlive(userID string, env *domain.Envelope) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if s, ok := h.store.get(env.SessionID); ok {
		if u, ok := s.Users[userID]; ok {
			u.Touch()
		}
	}
	return nil
}

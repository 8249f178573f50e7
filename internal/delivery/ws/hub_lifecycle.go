package ws

import (
	"log"

	"github.com/kamchettysadhika/GdocsforCoding/internal/domain"
	"github.com/kamchettysadhika/GdocsforCoding/internal/usecase"
)

// handleCreateSession allocates a session with the caller as sole member and
// host. The session id is caller-supplied and must not collide with a live
// session.
func (h *Hub) handleCreateSession(userID string, env *domain.Envelope) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if env.SessionID == "" {
		return h.errorLocked(userID, domain.ErrInvalidSession, "Session ID is required")
	}
	if _, exists := h.store.get(env.SessionID); exists {
		return h.errorLocked(userID, domain.ErrDuplicateSession, "Session already exists")
	}

	username := env.Username
	if username == "" {
		username = "Anonymous"
	}

	// Hosts rotate through the palette by creation count so consecutive
	// sessions are visually distinct.
	color := usecase.ColorAt(h.store.created)
	u := domain.NewUser(userID, username, color)

	s := newSession(env.SessionID, userID, h.cfg.ChatHistorySize)
	s.addUser(u)
	h.store.put(s)
	h.store.bind(userID, s.ID)
	h.metrics.ActiveSessions.Inc()

	log.Printf("session %s created by %s", s.ID, username)

	return h.replyLocked(userID, domain.SessionCreated{
		Type:      domain.EventSessionCreated,
		SessionID: s.ID,
		UserID:    userID,
		UserColor: color,
		IsHost:    true,
		Timestamp: domain.Timestamp(),
	})
}

// handleJoinSession adds the caller to an existing session, replies with the
// full snapshot and announces the join to everyone else. A caller already in
// another session keeps its old membership; the reverse index tracks only the
// latest join, so the departure path resolves against that one (see
// DESIGN.md on overlapping joins).
func (h *Hub) handleJoinSession(userID string, env *domain.Envelope) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if env.SessionID == "" {
		return h.errorLocked(userID, domain.ErrInvalidSession, "Session ID is required")
	}
	s, ok := h.store.get(env.SessionID)
	if !ok {
		return h.errorLocked(userID, domain.ErrSessionNotFound, "Session not found")
	}

	username := env.Username
	if username == "" {
		username = "Anonymous"
	}

	color := usecase.AssignColor(s.usedColors())
	u := domain.NewUser(userID, username, color)
	s.addUser(u)
	s.touch()
	h.store.bind(userID, s.ID)

	log.Printf("%s joined session %s", username, s.ID)

	dead := h.replyLocked(userID, h.snapshotLocked(s, userID, color))
	dead = append(dead, h.broadcastLocked(s, domain.UserJoined{
		Type:      domain.EventUserJoined,
		UserID:    userID,
		Username:  username,
		Color:     color,
		UserCount: len(s.Users),
		Timestamp: domain.Timestamp(),
	}, userID)...)
	return dead
}

// handleRejoinSession rebinds a reconnecting member without changing its
// identity, color or document state. An unknown user id is deliberately
// treated as a fresh join: rejoin never fails solely because the user was
// not previously present. That makes reconnects resilient but also means a
// session id is the only credential a rejoiner presents; see DESIGN.md for
// the trust boundary.
func (h *Hub) handleRejoinSession(userID string, env *domain.Envelope) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if env.SessionID == "" {
		return h.errorLocked(userID, domain.ErrSessionNotFound, "Session not found for rejoin")
	}
	s, ok := h.store.get(env.SessionID)
	if !ok {
		return h.errorLocked(userID, domain.ErrSessionNotFound, "Session not found for rejoin")
	}

	u, known := s.Users[userID]
	if known {
		u.Touch()
	} else {
		username := env.Username
		if username == "" {
			username = "Anonymous"
		}
		u = domain.NewUser(userID, username, usecase.AssignColor(s.usedColors()))
		s.addUser(u)
	}
	s.touch()
	h.store.bind(userID, s.ID)

	dead := h.replyLocked(userID, h.snapshotLocked(s, userID, u.Color))
	dead = append(dead, h.broadcastLocked(s, domain.UserJoined{
		Type:      domain.EventUserJoined,
		UserID:    userID,
		Username:  u.Username,
		Color:     u.Color,
		UserCount: len(s.Users),
		Timestamp: domain.Timestamp(),
	}, userID)...)
	return dead
}

// handleEndSession tears the session down when, and only when, the caller is
// its host. Anyone else's endSession is silently ignored.
func (h *Hub) handleEndSession(userID string, env *domain.Envelope) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.store.get(env.SessionID)
	if !ok {
		return nil
	}
	if userID != s.HostID {
		return nil
	}

	log.Printf("session %s ended by host", s.ID)
	return h.endSessionLocked(s, "Host ended session")
}

// snapshotLocked builds the sessionJoined snapshot: member list, document
// metadata (content is fetched separately), and the most recent chat events.
func (h *Hub) snapshotLocked(s *Session, userID, color string) domain.SessionJoined {
	return domain.SessionJoined{
		Type:        domain.EventSessionJoined,
		SessionID:   s.ID,
		HostID:      s.HostID,
		UserID:      userID,
		UserColor:   color,
		Users:       s.userSummaries(),
		Documents:   s.documentSummaries(),
		SharedFiles: s.sharedFiles(),
		ChatHistory: s.history.Last(h.cfg.JoinChatReplay),
		Timestamp:   domain.Timestamp(),
	}
}

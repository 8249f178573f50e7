package ws

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/kamchettysadhika/GdocsforCoding/internal/domain"
	"github.com/kamchettysadhika/GdocsforCoding/internal/usecase"
)

// handleChatMessage validates, stores and broadcasts one chat message. The
// sender is included in the broadcast so its UI renders the canonical,
// server-timestamped copy. History keeps the most recent messages with FIFO
// eviction.
func (h *Hub) handleChatMessage(userID string, env *domain.Envelope) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.store.get(env.SessionID)
	if !ok {
		return h.errorLocked(userID, domain.ErrInvalidSession, "Invalid session")
	}

	text := strings.TrimSpace(env.Message)
	if text == "" || utf8.RuneCountInString(text) > h.cfg.MaxChatLength {
		return h.errorLocked(userID, domain.ErrInvalidMessage, "Invalid message length")
	}

	username := "Unknown"
	color := usecase.DefaultColor
	if u, ok := s.Users[userID]; ok {
		username = u.Username
		color = u.Color
	}

	event := domain.ChatMessage{
		Type:      domain.EventChatMessage,
		UserID:    userID,
		Username:  username,
		UserColor: color,
		Message:   text,
		Timestamp: domain.Timestamp(),
	}

	raw, _ := json.Marshal(event)
	s.history.Add(raw)
	s.touch()

	return h.broadcastLocked(s, event, "")
}

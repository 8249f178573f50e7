package ws

import (
	"context"

	"github.com/kamchettysadhika/GdocsforCoding/internal/domain"
)

// handleExecuteCode hands the snippet to the external execution collaborator
// and broadcasts the result to the whole session. The hub mutex is released
// for the duration of the run: execution can take seconds and must not stall
// the event core. The session is re-resolved afterwards since it may have
// ended in the meantime.
func (h *Hub) handleExecuteCode(userID string, env *domain.Envelope) []string {
	h.mu.Lock()
	s, ok := h.store.get(env.SessionID)
	if !ok {
		defer h.mu.Unlock()
		return h.errorLocked(userID, domain.ErrInvalidSession, "Invalid session")
	}
	s.touch()
	h.mu.Unlock()

	language := env.Language
	if language == "" {
		language = "python"
	}
	res := h.exec.Execute(context.Background(), env.Code, language)

	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok = h.store.get(env.SessionID)
	if !ok {
		return nil
	}

	return h.broadcastLocked(s, domain.ExecutionResult{
		Type:      domain.EventExecutionResult,
		UserID:    userID,
		Success:   res.Success,
		Output:    res.Output,
		Error:     res.Error,
		Language:  res.Language,
		Timestamp: domain.Timestamp(),
	}, "")
}

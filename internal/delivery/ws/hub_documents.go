package ws

import (
	"encoding/json"
	"log"
	"time"

	"github.com/kamchettysadhika/GdocsforCoding/internal/domain"
)

// handleShareDocument creates or overwrites the document at the given URI
// with the version reset to 1, and broadcasts the full content to every
// member, sender included: the sender's own editor tab is not necessarily the
// client-side source of truth.
func (h *Hub) handleShareDocument(userID string, env *domain.Envelope) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.store.get(env.SessionID)
	if !ok {
		return h.errorLocked(userID, domain.ErrInvalidSession, "Invalid session")
	}
	if len(env.Content) > h.cfg.MaxDocumentSize {
		return h.errorLocked(userID, domain.ErrDocumentTooLarge, "Document too large (max 1MB)")
	}

	filename := env.Filename
	if filename == "" {
		filename = "untitled"
	}

	s.Documents[env.URI] = &domain.Document{
		URI:            env.URI,
		Filename:       filename,
		Content:        env.Content,
		Version:        1,
		LastModified:   time.Now(),
		LastModifiedBy: userID,
	}
	s.touch()

	username := "Unknown"
	if u, ok := s.Users[userID]; ok {
		username = u.Username
	}

	log.Printf("document shared in session %s: %s", s.ID, filename)

	return h.broadcastLocked(s, domain.FileShared{
		Type:      domain.EventFileShared,
		UserID:    userID,
		Username:  username,
		URI:       env.URI,
		Filename:  filename,
		Content:   env.Content,
		Version:   1,
		Timestamp: domain.Timestamp(),
	}, "")
}

// handleDocumentChange relays an opaque delta to the rest of the session.
// Only version/modified-by metadata is updated server-side, and only when
// the URI is known: the server is a relay, not an authority, for deltas, so
// an unknown URI is not an error and the delta is relayed regardless.
func (h *Hub) handleDocumentChange(userID string, env *domain.Envelope) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.store.get(env.SessionID)
	if !ok {
		return h.errorLocked(userID, domain.ErrInvalidSession, "Invalid session")
	}
	if env.URI == "" {
		return h.errorLocked(userID, domain.ErrMalformedInput, "Document URI is required")
	}

	version := env.Version
	if version == 0 {
		version = 1
	}
	if doc, ok := s.Documents[env.URI]; ok {
		doc.Version = version
		doc.LastModified = time.Now()
		doc.LastModifiedBy = userID
	}
	s.touch()

	changes := env.Changes
	if changes == nil {
		changes = json.RawMessage("[]")
	}

	return h.broadcastLocked(s, domain.DocumentChange{
		Type:      domain.EventDocumentChange,
		UserID:    userID,
		URI:       env.URI,
		Changes:   changes,
		Version:   version,
		Timestamp: domain.Timestamp(),
	}, userID)
}

// handleDocumentOperation relays an opaque editor operation to the rest of
// the session.
func (h *Hub) handleDocumentOperation(userID string, env *domain.Envelope) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.store.get(env.SessionID)
	if !ok {
		return h.errorLocked(userID, domain.ErrInvalidSession, "Invalid session")
	}
	if env.URI == "" || env.Operation == nil {
		return h.errorLocked(userID, domain.ErrMalformedInput, "Document URI and operation are required")
	}
	s.touch()

	return h.broadcastLocked(s, domain.DocumentOperation{
		Type:      domain.EventDocumentOperation,
		UserID:    userID,
		URI:       env.URI,
		Operation: env.Operation,
		Timestamp: domain.Timestamp(),
	}, userID)
}

// handleUnshareFile removes the document entry if present. Removing an
// absent URI is not an error; the unshare broadcast goes out either way.
func (h *Hub) handleUnshareFile(userID string, env *domain.Envelope) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.store.get(env.SessionID)
	if !ok {
		return h.errorLocked(userID, domain.ErrInvalidSession, "Invalid session")
	}
	if env.URI == "" {
		return h.errorLocked(userID, domain.ErrMalformedInput, "Invalid unshare request")
	}

	delete(s.Documents, env.URI)
	s.touch()

	filename := env.Filename
	if filename == "" {
		filename = "untitled"
	}

	return h.broadcastLocked(s, domain.FileUnshared{
		Type:      domain.EventFileUnshared,
		UserID:    userID,
		URI:       env.URI,
		Filename:  filename,
		Timestamp: domain.Timestamp(),
	}, "")
}

// handleRequestDocument replies to the requester only with the stored
// snapshot.
func (h *Hub) handleRequestDocument(userID string, env *domain.Envelope) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.store.get(env.SessionID)
	if !ok {
		return h.errorLocked(userID, domain.ErrInvalidSession, "Invalid session")
	}
	doc, ok := s.Documents[env.URI]
	if env.URI == "" || !ok {
		return h.errorLocked(userID, domain.ErrDocumentNotFound, "Document not found")
	}

	return h.replyLocked(userID, domain.FileContent{
		Type:         domain.EventFileContent,
		URI:          doc.URI,
		Filename:     doc.Filename,
		Content:      doc.Content,
		Version:      doc.Version,
		LastModified: doc.LastModified.UTC().Format(time.RFC3339),
	})
}

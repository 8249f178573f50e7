package ws

import (
	"github.com/kamchettysadhika/GdocsforCoding/internal/domain"
)

// broadcastLocked fans event out to the session's current members, excluding
// excludeID when non-empty. The member set is snapshotted at call time, so
// joins racing with the fan-out are not included. Sends are non-blocking
// enqueues: the fan-out is bounded by member count and a slow peer can never
// stall delivery to healthy ones.
//
// Returned ids had a dead channel. Callers must route them through the
// departure path after their own mutation completes, never inline, which is
// how a single broadcast both disseminates a message and opportunistically
// reaps dead peers.
func (h *Hub) broadcastLocked(s *Session, event any, excludeID string) []string {
	h.metrics.BroadcastsTotal.Inc()

	var dead []string
	for _, id := range s.memberIDs() {
		if id == excludeID {
			continue
		}
		if !h.registry.Send(id, event) {
			dead = append(dead, id)
		}
	}
	return dead
}

// replyLocked delivers an event to a single connection while the hub mutex is
// held. A failed send puts the user on the caller's dead list.
func (h *Hub) replyLocked(userID string, event any) []string {
	if !h.registry.Send(userID, event) {
		return []string{userID}
	}
	return nil
}

// errorLocked reports a recoverable failure to the originating connection.
func (h *Hub) errorLocked(userID string, code domain.ErrorCode, message string) []string {
	return h.replyLocked(userID, domain.ErrorEvent{
		Type:      domain.EventError,
		Code:      code,
		Message:   message,
		Timestamp: domain.Timestamp(),
	})
}

// reap runs the departure path for users whose send failed. Must be called
// without the hub mutex held.
func (h *Hub) reap(ids []string) {
	for _, id := range ids {
		h.departUser(id)
	}
}

// sendTo delivers an event to one connection, routing a failed send through
// the departure path. Must be called without the hub mutex held.
func (h *Hub) sendTo(userID string, event any) {
	if !h.registry.Send(userID, event) {
		h.departUser(userID)
	}
}

// sendError reports a recoverable failure to the originating connection.
// Must be called without the hub mutex held.
func (h *Hub) sendError(userID string, code domain.ErrorCode, message string) {
	h.sendTo(userID, domain.ErrorEvent{
		Type:      domain.EventError,
		Code:      code,
		Message:   message,
		Timestamp: domain.Timestamp(),
	})
}

package ws

import (
	"encoding/json"
	"log"

	"github.com/kamchettysadhika/GdocsforCoding/internal/domain"
)

// Dispatch decodes one inbound frame from userID and routes it to the
// matching handler. Every recoverable failure is reported only to the
// originating connection as an error event; nothing on this path may
// terminate the connection or leave a session half-mutated.
func (h *Hub) Dispatch(userID string, raw []byte) {
	h.registry.Touch(userID)

	var env domain.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("invalid frame from %s: %v", userID, err)
		h.sendError(userID, domain.ErrMalformedInput, "Invalid JSON format")
		return
	}

	// A frame without a type is a keep-alive no-op, not an error.
	if env.Type == "" {
		return
	}

	// ping bypasses the handler table entirely and never touches sessions.
	if domain.EventType(env.Type) == domain.EventPing {
		h.sendTo(userID, domain.Pong{Type: domain.EventPong, Timestamp: domain.Timestamp()})
		return
	}

	h.metrics.EventsTotal.WithLabelValues(env.Type).Inc()
	h.route(userID, &env)
}

// route is the closed dispatch over known event kinds. A panicking handler is
// recovered here and reported to the sender as a handlerFailure scoped to the
// event type.
func (h *Hub) route(userID string, env *domain.Envelope) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("handler panic on %s from %s: %v", env.Type, userID, r)
			h.sendError(userID, domain.ErrHandlerFailure, "Error processing "+env.Type)
		}
	}()

	var dead []string
	switch domain.EventType(env.Type) {
	case domain.EventCreateSession:
		dead = h.handleCreateSession(userID, env)
	case domain.EventJoinSession:
		dead = h.handleJoinSession(userID, env)
	case domain.EventRejoinSession:
		dead = h.handleRejoinSession(userID, env)
	case domain.EventDocumentChange:
		dead = h.handleDocumentChange(userID, env)
	case domain.EventDocumentOperation:
		dead = h.handleDocumentOperation(userID, env)
	case domain.EventCursorUpdate:
		dead = h.handleCursorUpdate(userID, env)
	case domain.EventShareDocument, domain.EventShareFile:
		dead = h.handleShareDocument(userID, env)
	case domain.EventUnshareFile:
		dead = h.handleUnshareFile(userID, env)
	case domain.EventChatMessage:
		dead = h.handleChatMessage(userID, env)
	case domain.EventActiveFileChange:
		dead = h.handleActiveFileChange(userID, env)
	case domain.EventEndSession:
		dead = h.handleEndSession(userID, env)
	case domain.EventRequestDocument, domain.EventRequestFileContent:
		dead = h.handleRequestDocument(userID, env)
	case domain.EventKeepAlive:
		dead = h.handleKeepAlive(userID, env)
	case domain.EventUserPresence:
		dead = h.handleUserPresence(userID, env)
	case domain.EventFileClose:
		dead = h.handleFileClose(userID, env)
	case domain.EventExecuteCode:
		dead = h.handleExecuteCode(userID, env)
	default:
		log.Printf("unknown message type %q from %s", env.Type, userID)
		h.sendError(userID, domain.ErrUnknownEventType, "Unknown message type: "+env.Type)
		return
	}

	h.reap(dead)
}

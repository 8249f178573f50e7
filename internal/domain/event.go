package domain

import (
	"encoding/json"
	"time"
)

// EventType identifies a wire message. Every frame, inbound or outbound, is a
// flat JSON record with a mandatory "type" field.
type EventType string

// Client-originated events
const (
	EventCreateSession      EventType = "createSession"
	EventJoinSession        EventType = "joinSession"
	EventRejoinSession      EventType = "rejoinSession"
	EventDocumentChange     EventType = "documentChange"
	EventDocumentOperation  EventType = "documentOperation"
	EventCursorUpdate       EventType = "cursorUpdate"
	EventShareDocument      EventType = "shareDocument"
	EventShareFile          EventType = "shareFile" // alias of shareDocument
	EventUnshareFile        EventType = "unshareFile"
	EventChatMessage        EventType = "chatMessage"
	EventActiveFileChange   EventType = "activeFileChange"
	EventEndSession         EventType = "endSession"
	EventRequestDocument    EventType = "requestDocument"
	EventRequestFileContent EventType = "requestFileContent" // alias of requestDocument
	EventKeepAlive          EventType = "keepAlive"
	EventUserPresence       EventType = "userPresence"
	EventFileClose          EventType = "fileClose"
	EventExecuteCode        EventType = "executeCode"
	EventPing               EventType = "ping"
)

// Server-originated events
const (
	EventConnectionEstablished EventType = "connectionEstablished"
	EventSessionCreated        EventType = "sessionCreated"
	EventSessionJoined         EventType = "sessionJoined"
	EventUserJoined            EventType = "userJoined"
	EventUserLeft              EventType = "userLeft"
	EventHostTransferred       EventType = "hostTransferred"
	EventFileShared            EventType = "fileShared"
	EventFileUnshared          EventType = "fileUnshared"
	EventFileContent           EventType = "fileContent"
	EventSessionEnded          EventType = "sessionEnded"
	EventError                 EventType = "error"
	EventPong                  EventType = "pong"
	EventServerShutdown        EventType = "serverShutdown"
	EventExecutionResult       EventType = "executionResult"
)

// Timestamp returns the current time in the wire format (RFC 3339 UTC).
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Envelope is the decoded form of one inbound frame. Fields not used by the
// event's type are simply left at their zero value; payloads the server only
// relays (changes, cursor, operation) stay raw.
type Envelope struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId"`
	Username  string          `json:"username"`
	URI       string          `json:"uri"`
	Filename  string          `json:"filename"`
	Content   string          `json:"content"`
	Changes   json.RawMessage `json:"changes"`
	Version   int             `json:"version"`
	Operation json.RawMessage `json:"operation"`
	Cursor    json.RawMessage `json:"cursor"`
	Selection json.RawMessage `json:"selection"`
	Message   string          `json:"message"`
	Focused   *bool           `json:"focused"`
	Code      string          `json:"code"`
	Language  string          `json:"language"`
}

// ConnectionEstablished greets a new connection with its assigned user id.
type ConnectionEstablished struct {
	Type       EventType `json:"type"`
	UserID     string    `json:"userId"`
	ServerTime string    `json:"serverTime"`
}

// SessionCreated acknowledges a createSession to its caller.
type SessionCreated struct {
	Type      EventType `json:"type"`
	SessionID string    `json:"sessionId"`
	UserID    string    `json:"userId"`
	UserColor string    `json:"userColor"`
	IsHost    bool      `json:"isHost"`
	Timestamp string    `json:"timestamp"`
}

// UserSummary is the member entry inside a sessionJoined snapshot.
type UserSummary struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Color      string `json:"color"`
	ActiveFile string `json:"activeFile,omitempty"`
	JoinedAt   string `json:"joinedAt"`
}

// DocumentSummary is document metadata without content.
type DocumentSummary struct {
	URI          string `json:"uri"`
	Filename     string `json:"filename"`
	Version      int    `json:"version"`
	LastModified string `json:"lastModified"`
}

// SessionJoined is the full snapshot sent to a joining or rejoining user.
// Documents carry metadata only; content is fetched via requestFileContent.
type SessionJoined struct {
	Type        EventType         `json:"type"`
	SessionID   string            `json:"sessionId"`
	HostID      string            `json:"hostId"`
	UserID      string            `json:"userId"`
	UserColor   string            `json:"userColor"`
	Users       []UserSummary     `json:"users"`
	Documents   []DocumentSummary `json:"documents"`
	SharedFiles []string          `json:"sharedFiles"`
	ChatHistory []json.RawMessage `json:"chatHistory"`
	Timestamp   string            `json:"timestamp"`
}

// UserJoined notifies existing members about a new one.
type UserJoined struct {
	Type      EventType `json:"type"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Color     string    `json:"color"`
	UserCount int       `json:"userCount"`
	Timestamp string    `json:"timestamp"`
}

// UserLeft notifies remaining members about a departure.
type UserLeft struct {
	Type      EventType `json:"type"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	UserCount int       `json:"userCount"`
	Timestamp string    `json:"timestamp"`
}

// HostTransferred announces host failover.
type HostTransferred struct {
	Type        EventType `json:"type"`
	NewHostID   string    `json:"newHostId"`
	NewHostname string    `json:"newHostname"`
	Timestamp   string    `json:"timestamp"`
}

// FileShared carries the full content of a newly shared document.
type FileShared struct {
	Type      EventType `json:"type"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	URI       string    `json:"uri"`
	Filename  string    `json:"filename"`
	Content   string    `json:"content"`
	Version   int       `json:"version"`
	Timestamp string    `json:"timestamp"`
}

// FileUnshared announces removal of a shared document.
type FileUnshared struct {
	Type      EventType `json:"type"`
	UserID    string    `json:"userId"`
	URI       string    `json:"uri"`
	Filename  string    `json:"filename"`
	Timestamp string    `json:"timestamp"`
}

// FileContent answers a requestFileContent, requester only.
type FileContent struct {
	Type         EventType `json:"type"`
	URI          string    `json:"uri"`
	Filename     string    `json:"filename"`
	Content      string    `json:"content"`
	Version      int       `json:"version"`
	LastModified string    `json:"lastModified"`
}

// DocumentChange relays an opaque delta to the rest of the session.
type DocumentChange struct {
	Type      EventType       `json:"type"`
	UserID    string          `json:"userId"`
	URI       string          `json:"uri"`
	Changes   json.RawMessage `json:"changes"`
	Version   int             `json:"version"`
	Timestamp string          `json:"timestamp"`
}

// DocumentOperation relays an opaque editor operation.
type DocumentOperation struct {
	Type      EventType       `json:"type"`
	UserID    string          `json:"userId"`
	URI       string          `json:"uri"`
	Operation json.RawMessage `json:"operation"`
	Timestamp string          `json:"timestamp"`
}

// CursorUpdate relays a member's cursor and selection.
type CursorUpdate struct {
	Type      EventType       `json:"type"`
	UserID    string          `json:"userId"`
	URI       string          `json:"uri"`
	Cursor    json.RawMessage `json:"cursor,omitempty"`
	Selection json.RawMessage `json:"selection,omitempty"`
	Timestamp string          `json:"timestamp"`
}

// ActiveFileChange relays which file a member is looking at.
type ActiveFileChange struct {
	Type       EventType `json:"type"`
	UserID     string    `json:"userId"`
	ActiveFile string    `json:"activeFile"`
	URI        string    `json:"uri"`
	Timestamp  string    `json:"timestamp"`
}

// UserPresence relays a focus/presence ping.
type UserPresence struct {
	Type      EventType `json:"type"`
	UserID    string    `json:"userId"`
	Focused   bool      `json:"focused"`
	Timestamp string    `json:"timestamp"`
}

// FileClose relays that a member closed a file.
type FileClose struct {
	Type      EventType `json:"type"`
	UserID    string    `json:"userId"`
	URI       string    `json:"uri"`
	Timestamp string    `json:"timestamp"`
}

// ChatMessage is the canonical, server-timestamped chat event. It is both
// broadcast (sender included) and stored in the session's history.
type ChatMessage struct {
	Type      EventType `json:"type"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	UserColor string    `json:"userColor"`
	Message   string    `json:"message"`
	Timestamp string    `json:"timestamp"`
}

// SessionEnded announces session teardown.
type SessionEnded struct {
	Type      EventType `json:"type"`
	Reason    string    `json:"reason"`
	Timestamp string    `json:"timestamp"`
}

// ErrorEvent reports a recoverable failure to the originating connection.
type ErrorEvent struct {
	Type      EventType `json:"type"`
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Timestamp string    `json:"timestamp"`
}

// Pong answers an application-level ping.
type Pong struct {
	Type      EventType `json:"type"`
	Timestamp string    `json:"timestamp"`
}

// ServerShutdown is broadcast to every live connection on controlled exit.
type ServerShutdown struct {
	Type      EventType `json:"type"`
	Message   string    `json:"message"`
	Timestamp string    `json:"timestamp"`
}

// ExecutionResult carries the outcome of an executeCode request.
type ExecutionResult struct {
	Type      EventType `json:"type"`
	UserID    string    `json:"userId"`
	Success   bool      `json:"success"`
	Output    string    `json:"output,omitempty"`
	Error     string    `json:"error,omitempty"`
	Language  string    `json:"language"`
	Timestamp string    `json:"timestamp"`
}

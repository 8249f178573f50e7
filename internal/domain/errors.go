package domain

// ErrorCode classifies recoverable, user-visible failures. All of these are
// reported back to the originating connection as an "error" event and never
// terminate the connection.
type ErrorCode string

const (
	ErrMalformedInput   ErrorCode = "malformedInput"
	ErrUnknownEventType ErrorCode = "unknownEventType"
	ErrInvalidSession   ErrorCode = "invalidSession"
	ErrDuplicateSession ErrorCode = "duplicateSession"
	ErrSessionNotFound  ErrorCode = "sessionNotFound"
	ErrDocumentNotFound ErrorCode = "documentNotFound"
	ErrDocumentTooLarge ErrorCode = "documentTooLarge"
	ErrInvalidMessage   ErrorCode = "invalidMessage"
	ErrHandlerFailure   ErrorCode = "handlerFailure"
)

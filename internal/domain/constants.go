package domain

import "time"

// ==== Size Limits ====

const (
	// MaxDocumentSize is the largest content blob a shareDocument may carry
	MaxDocumentSize = 1 << 20 // 1 MiB

	// MaxInboundFrame is the read limit applied at the transport layer
	MaxInboundFrame = 10 << 20 // 10 MiB

	// MaxChatLength is the maximum chat message length in characters
	MaxChatLength = 500

	// ChatHistorySize is the number of chat events a session retains
	ChatHistorySize = 100

	// JoinChatReplay is the number of chat events replayed to a joiner
	JoinChatReplay = 50
)

// ==== Timing Constants ====

const (
	// SweepInterval is how often the inactivity sweep runs
	SweepInterval = 5 * time.Minute

	// SessionInactivity retires a session whose last activity is older than this
	SessionInactivity = time.Hour

	// MemberIdleLimit retires a session once every member has been idle this long
	MemberIdleLimit = 30 * time.Minute

	// ExecTimeout is the hard cap on a single code execution
	ExecTimeout = 10 * time.Second
)

// ==== Rate Limit Constants ====

const (
	// DefaultRateLimitAPI is the default rate limit for API endpoints (requests/sec)
	DefaultRateLimitAPI = 10

	// DefaultRateLimitWS is the default rate limit for WebSocket upgrades (req/sec)
	DefaultRateLimitWS = 5
)

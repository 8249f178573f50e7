package domain

import (
	"encoding/json"
	"time"
)

// User is a session member. The live connection is a capability owned by the
// Connection Registry; the user record carries only the id and channel
// resolution happens in the registry at send time.
type User struct {
	ID         string
	Username   string
	Color      string
	JoinedAt   time.Time
	LastSeen   time.Time
	Cursor     json.RawMessage // last reported cursor position, optional
	ActiveFile string
}

// NewUser creates a member record with join and last-seen set to now.
func NewUser(id, username, color string) *User {
	now := time.Now()
	return &User{
		ID:       id,
		Username: username,
		Color:    color,
		JoinedAt: now,
		LastSeen: now,
	}
}

// Touch refreshes the last-seen timestamp.
func (u *User) Touch() {
	u.LastSeen = time.Now()
}

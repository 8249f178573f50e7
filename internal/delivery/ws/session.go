package ws

import (
	"time"

	"github.com/kamchettysadhika/GdocsforCoding/internal/domain"
)

// Session is a live collaboration context: its members, shared documents and
// chat history. A session exists exactly while it is present in the store;
// purging the entry is what ends it and frees the id for reuse.
//
// Sessions hold no connection handles. All access is serialized by the Hub
// mutex.
type Session struct {
	ID           string
	HostID       string
	CreatedAt    time.Time
	LastActivity time.Time

	Users     map[string]*domain.User
	Documents map[string]*domain.Document

	// order preserves join order. Host failover and snapshot enumeration use
	// it so both are deterministic regardless of map iteration.
	order   []string
	history *RingBuffer
}

func newSession(id, hostID string, historySize int) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		HostID:       hostID,
		CreatedAt:    now,
		LastActivity: now,
		Users:        make(map[string]*domain.User),
		Documents:    make(map[string]*domain.Document),
		history:      NewRingBuffer(historySize),
	}
}

func (s *Session) addUser(u *domain.User) {
	if _, ok := s.Users[u.ID]; !ok {
		s.order = append(s.order, u.ID)
	}
	s.Users[u.ID] = u
}

// removeUser deletes a member and returns the removed record, or nil if the
// user was not a member.
func (s *Session) removeUser(id string) *domain.User {
	u, ok := s.Users[id]
	if !ok {
		return nil
	}
	delete(s.Users, id)
	for i, memberID := range s.order {
		if memberID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return u
}

// memberIDs returns a snapshot of the member ids in join order.
func (s *Session) memberIDs() []string {
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// firstMember returns the earliest-joined remaining member, the deterministic
// choice for host failover.
func (s *Session) firstMember() (string, bool) {
	if len(s.order) == 0 {
		return "", false
	}
	return s.order[0], true
}

func (s *Session) usedColors() map[string]struct{} {
	used := make(map[string]struct{}, len(s.Users))
	for _, u := range s.Users {
		used[u.Color] = struct{}{}
	}
	return used
}

func (s *Session) touch() {
	s.LastActivity = time.Now()
}

func (s *Session) userSummaries() []domain.UserSummary {
	users := make([]domain.UserSummary, 0, len(s.order))
	for _, id := range s.order {
		u := s.Users[id]
		users = append(users, domain.UserSummary{
			ID:         u.ID,
			Username:   u.Username,
			Color:      u.Color,
			ActiveFile: u.ActiveFile,
			JoinedAt:   u.JoinedAt.UTC().Format(time.RFC3339),
		})
	}
	return users
}

func (s *Session) documentSummaries() []domain.DocumentSummary {
	docs := make([]domain.DocumentSummary, 0, len(s.Documents))
	for _, d := range s.Documents {
		docs = append(docs, domain.DocumentSummary{
			URI:          d.URI,
			Filename:     d.Filename,
			Version:      d.Version,
			LastModified: d.LastModified.UTC().Format(time.RFC3339),
		})
	}
	return docs
}

func (s *Session) sharedFiles() []string {
	uris := make([]string, 0, len(s.Documents))
	for uri := range s.Documents {
		uris = append(uris, uri)
	}
	return uris
}

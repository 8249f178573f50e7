package ws

// store is the in-memory session store plus the reverse user→session index.
// It is owned by the Hub and only touched while the hub mutex is held, which
// is what keeps compound operations (check-then-create, remove-then-failover)
// atomic.
type store struct {
	sessions    map[string]*Session
	userSession map[string]string

	// created counts sessions ever created; it drives host color rotation.
	created int
}

func newStore() *store {
	return &store{
		sessions:    make(map[string]*Session),
		userSession: make(map[string]string),
	}
}

func (st *store) get(id string) (*Session, bool) {
	s, ok := st.sessions[id]
	return s, ok
}

func (st *store) put(s *Session) {
	st.sessions[s.ID] = s
	st.created++
}

func (st *store) delete(id string) {
	delete(st.sessions, id)
}

func (st *store) bind(userID, sessionID string) {
	st.userSession[userID] = sessionID
}

func (st *store) unbind(userID string) {
	delete(st.userSession, userID)
}

// sessionOf resolves a user id to its session through the reverse index.
func (st *store) sessionOf(userID string) (*Session, bool) {
	id, ok := st.userSession[userID]
	if !ok {
		return nil, false
	}
	s, ok := st.sessions[id]
	return s, ok
}

func (st *store) count() int {
	return len(st.sessions)
}

package ws

import (
	"testing"
	"time"
)

func TestSweep_InactiveSession(t *testing.T) {
	hub := newTestHub()
	alice := newMockClient(t, hub, "alice")
	createSession(t, hub, alice, "demo", "Alice")

	s, _ := hub.store.get("demo")
	s.LastActivity = time.Now().Add(-2 * hub.cfg.SessionInactivity)

	hub.Sweep(time.Now())

	ended := recvEvent(t, alice)
	if ended["type"] != "sessionEnded" {
		t.Fatalf("Expected sessionEnded, got %v", ended["type"])
	}
	if ended["reason"] != "Session cleaned up" {
		t.Errorf("Unexpected reason: %v", ended["reason"])
	}
	if hub.SessionCount() != 0 {
		t.Errorf("Expected 0 sessions, got %d", hub.SessionCount())
	}
}

func TestSweep_AllMembersIdle(t *testing.T) {
	hub := newTestHub()
	alice := newMockClient(t, hub, "alice")
	bob := newMockClient(t, hub, "bob")
	createSession(t, hub, alice, "demo", "Alice")
	joinSession(t, hub, bob, "demo", "Bob")
	drain(alice)

	s, _ := hub.store.get("demo")
	idle := time.Now().Add(-2 * hub.cfg.MemberIdleLimit)
	s.Users["alice"].LastSeen = idle
	s.Users["bob"].LastSeen = idle

	hub.Sweep(time.Now())

	if hub.SessionCount() != 0 {
		t.Errorf("Expected idle session swept, got %d sessions", hub.SessionCount())
	}
}

func TestSweep_OneActiveMemberKeepsSession(t *testing.T) {
	hub := newTestHub()
	alice := newMockClient(t, hub, "alice")
	bob := newMockClient(t, hub, "bob")
	createSession(t, hub, alice, "demo", "Alice")
	joinSession(t, hub, bob, "demo", "Bob")
	drain(alice)

	s, _ := hub.store.get("demo")
	s.Users["alice"].LastSeen = time.Now().Add(-2 * hub.cfg.MemberIdleLimit)
	// bob is recent.

	hub.Sweep(time.Now())

	if hub.SessionCount() != 1 {
		t.Errorf("One active member must keep the session, got %d sessions", hub.SessionCount())
	}
	expectNoEvent(t, alice)
	expectNoEvent(t, bob)
}

func TestSweep_RecentSessionUntouched(t *testing.T) {
	hub := newTestHub()
	alice := newMockClient(t, hub, "alice")
	createSession(t, hub, alice, "demo", "Alice")

	hub.Sweep(time.Now())

	if hub.SessionCount() != 1 {
		t.Errorf("Fresh session must survive sweep, got %d sessions", hub.SessionCount())
	}
	expectNoEvent(t, alice)
}

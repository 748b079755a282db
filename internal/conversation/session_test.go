package conversation

import (
	"testing"
	"time"
)

func TestSessionStoreGetOrCreate(t *testing.T) {
	store := NewSessionStore()

	first := store.GetOrCreate("alice")
	if first.UserName != "alice" {
		t.Fatalf("UserName = %q, want alice", first.UserName)
	}
	if first.State != StateStart {
		t.Fatalf("new session state = %v, want %v", first.State, StateStart)
	}
	if first.Draft.PatientName != "alice" {
		t.Fatalf("Draft.PatientName = %q, want alice", first.Draft.PatientName)
	}

	first.State = StateGreeting
	second := store.GetOrCreate("alice")
	if second != first {
		t.Fatal("GetOrCreate returned a new session for an existing user")
	}
	if second.State != StateGreeting {
		t.Fatalf("state not preserved: %v", second.State)
	}

	if store.GetOrCreate("bob") == first {
		t.Fatal("different users share a session")
	}
	if store.Len() != 2 {
		t.Fatalf("Len = %d, want 2", store.Len())
	}
}

func TestSessionStoreReset(t *testing.T) {
	store := NewSessionStore()
	old := store.GetOrCreate("alice")
	old.State = StateConfirmation
	old.Draft.Date = "2026-09-01"

	fresh := store.Reset("alice")
	if fresh == old {
		t.Fatal("Reset returned the old session")
	}
	if fresh.State != StateStart || fresh.Draft.Date != "" {
		t.Fatalf("Reset did not clear state: %v %q", fresh.State, fresh.Draft.Date)
	}
	if store.GetOrCreate("alice") != fresh {
		t.Fatal("store does not hold the fresh session")
	}
}

func TestSessionStoreSweepExpired(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	store := NewSessionStore()
	store.now = func() time.Time { return clock }

	store.GetOrCreate("stale")
	clock = base.Add(45 * time.Minute)
	store.GetOrCreate("fresh")

	removed := store.SweepExpired(base.Add(time.Hour+time.Minute), time.Hour)
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if store.Len() != 1 {
		t.Fatalf("Len = %d, want 1", store.Len())
	}

	// The survivor must be the younger session, re-fetched not recreated.
	surviving := store.GetOrCreate("fresh")
	if !surviving.CreatedAt.Equal(base.Add(45 * time.Minute)) {
		t.Fatalf("fresh session was recreated, CreatedAt = %v", surviving.CreatedAt)
	}

	// Exactly at the TTL boundary a session stays.
	removed = store.SweepExpired(surviving.CreatedAt.Add(time.Hour), time.Hour)
	if removed != 0 {
		t.Fatalf("boundary sweep removed %d sessions", removed)
	}
}

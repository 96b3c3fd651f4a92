package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStoreWithPath(filepath.Join(t.TempDir(), "state", "state.db"))
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGuildOwnerRoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	if _, err := s.GetGuildOwnerID("g1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.SetGuildOwnerID("g1", "owner-a"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.SetGuildOwnerID("g1", "owner-b"); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := s.GetGuildOwnerID("g1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "owner-b" {
		t.Fatalf("expected latest owner, got %q", got)
	}
}

func TestHeartbeatRoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	if _, err := s.GetHeartbeat(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	at := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	if err := s.SetHeartbeat(at); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := s.GetHeartbeat()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Equal(at) {
		t.Fatalf("expected %v, got %v", at, got)
	}
}

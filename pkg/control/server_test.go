package control

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/small-frappuccino/modcore/pkg/storage"
)

func TestRootReportsAlive(t *testing.T) {
	t.Parallel()

	s := NewServer("", nil, nil)
	rec := httptest.NewRecorder()
	s.handleRoot(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if string(body) != "Bot is alive!" {
		t.Fatalf("unexpected body %q", string(body))
	}
}

func TestRootRejectsOtherPaths(t *testing.T) {
	t.Parallel()

	s := NewServer("", nil, nil)
	rec := httptest.NewRecorder()
	s.handleRoot(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestStatusIncludesHeartbeat(t *testing.T) {
	t.Parallel()

	store := storage.NewStoreWithPath(filepath.Join(t.TempDir(), "state.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	at := time.Date(2025, 7, 4, 9, 0, 0, 0, time.UTC)
	if err := store.SetHeartbeat(at); err != nil {
		t.Fatalf("set heartbeat: %v", err)
	}

	s := NewServer("", nil, store)
	rec := httptest.NewRecorder()
	s.handleStatus(rec, httptest.NewRequest(http.MethodGet, "/v1/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}

	var resp statusResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Heartbeat != "2025-07-04T09:00:00Z" {
		t.Fatalf("unexpected heartbeat %q", resp.Heartbeat)
	}
	if resp.UptimeSec < 0 {
		t.Fatalf("negative uptime %d", resp.UptimeSec)
	}
}

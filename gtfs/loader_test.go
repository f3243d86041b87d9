package gtfs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeLocalBundle(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bundle.zip")
	if err := os.WriteFile(path, buildZip(t, minimalBundle()), 0o644); err != nil {
		t.Fatalf("write local bundle: %v", err)
	}
	return path
}

func TestSourceLoadRemote(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("api_key")
		_, _ = w.Write(buildZip(t, minimalBundle()))
	}))
	defer srv.Close()

	source := NewSource(srv.URL, "secret", writeLocalBundle(t), srv.Client())
	snap, err := source.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if gotKey != "secret" {
		t.Errorf("api_key = %q, want secret", gotKey)
	}
	if snap.Fallback {
		t.Error("remote snapshot must not be flagged as fallback")
	}
	if len(snap.Trips) != 1 {
		t.Errorf("trips = %d, want 1", len(snap.Trips))
	}
}

func TestSourceLoadFallsBackToLocal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	source := NewSource(srv.URL, "secret", writeLocalBundle(t), srv.Client())
	snap, err := source.Load(context.Background())
	if err != nil {
		t.Fatalf("Load should fall back to the local bundle, got %v", err)
	}
	if !snap.Fallback {
		t.Error("locally-parsed snapshot must be flagged as fallback")
	}
}

func TestSourceLoadLocalOnlyWithoutKey(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	source := NewSource(srv.URL, "", writeLocalBundle(t), srv.Client())
	snap, err := source.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if requests != 0 {
		t.Errorf("remote contacted %d times without an API key, want 0", requests)
	}
	if !snap.Fallback {
		t.Error("local-only snapshot must be flagged as fallback")
	}
}

func TestSourceLoadAllSourcesFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	source := NewSource(srv.URL, "secret", filepath.Join(t.TempDir(), "missing.zip"), srv.Client())
	if _, err := source.Load(context.Background()); err == nil {
		t.Fatal("expected error when both sources fail")
	}
}

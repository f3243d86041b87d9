package gtfs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeLoader counts loads and can be switched to fail.
type fakeLoader struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (l *fakeLoader) Load(ctx context.Context) (*Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	snap := &Snapshot{LoadedAt: time.Now()}
	snap.Build()
	return snap, nil
}

func (l *fakeLoader) loadCalls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

func TestStoreEnsureFreshLoadsOnce(t *testing.T) {
	loader := &fakeLoader{}
	store := NewStore(loader, time.Hour)

	first, err := store.EnsureFresh(context.Background())
	if err != nil {
		t.Fatalf("EnsureFresh: %v", err)
	}
	second, err := store.EnsureFresh(context.Background())
	if err != nil {
		t.Fatalf("EnsureFresh: %v", err)
	}
	if first != second {
		t.Error("fresh snapshot should be reused within the TTL window")
	}
	if loader.loadCalls() != 1 {
		t.Errorf("loader called %d times, want 1", loader.loadCalls())
	}
}

func TestStoreEnsureFreshReloadsAfterTTL(t *testing.T) {
	loader := &fakeLoader{}
	store := NewStore(loader, time.Hour)

	if _, err := store.EnsureFresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	// Age the snapshot past the window.
	stale := store.Snapshot()
	stale.LoadedAt = time.Now().Add(-2 * time.Hour)

	if _, err := store.EnsureFresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if loader.loadCalls() != 2 {
		t.Errorf("loader called %d times, want 2", loader.loadCalls())
	}
}

func TestStoreServesStaleOnReloadFailure(t *testing.T) {
	loader := &fakeLoader{}
	store := NewStore(loader, time.Hour)

	snap, err := store.EnsureFresh(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	snap.LoadedAt = time.Now().Add(-2 * time.Hour)
	loader.err = errors.New("remote down")

	got, err := store.EnsureFresh(context.Background())
	if err != nil {
		t.Fatalf("stale snapshot should be served, got error %v", err)
	}
	if got != snap {
		t.Error("expected the previous snapshot back")
	}
}

func TestStoreUnavailableWhenNeverLoaded(t *testing.T) {
	store := NewStore(&fakeLoader{err: errors.New("nothing works")}, time.Hour)

	if _, err := store.EnsureFresh(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestStoreConcurrentReaders(t *testing.T) {
	loader := &fakeLoader{}
	store := NewStore(loader, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := store.EnsureFresh(context.Background()); err != nil {
					t.Errorf("EnsureFresh: %v", err)
					return
				}
				store.SetSnapshot(store.Snapshot())
			}
		}()
	}
	wg.Wait()
}

package gtfs

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultCacheTTL is how long a snapshot stays fresh before the next
// EnsureFresh triggers a reload.
const DefaultCacheTTL = 24 * time.Hour

// ErrUnavailable means no snapshot has ever been loaded and every source
// failed, so there is nothing to serve, not even stale data.
var ErrUnavailable = errors.New("gtfs: no dataset available")

// Loader produces a fresh Snapshot. *Source implements it; tests substitute
// their own.
type Loader interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// Store owns the current dataset snapshot. Reads and the reload path share
// it safely: the snapshot pointer is swapped wholesale under the lock, so a
// reader holds a consistent dataset for the whole request even while a
// reload runs. Two concurrent expiries may both reload; last writer wins.
type Store struct {
	loader Loader
	ttl    time.Duration

	mu       sync.RWMutex
	snapshot *Snapshot
}

// NewStore builds a Store around a loader. ttl <= 0 selects DefaultCacheTTL.
func NewStore(loader Loader, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Store{loader: loader, ttl: ttl}
}

// TTL returns the cache-validity window.
func (s *Store) TTL() time.Duration { return s.ttl }

// Snapshot returns the current snapshot, which may be stale or nil.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// EnsureFresh reloads the dataset when the cache window has lapsed and
// returns the snapshot to use. On reload failure the previous snapshot is
// kept and returned stale-but-usable; ErrUnavailable is reported only when
// no snapshot has ever existed.
func (s *Store) EnsureFresh(ctx context.Context) (*Snapshot, error) {
	if snap := s.Snapshot(); snap != nil && time.Since(snap.LoadedAt) < s.ttl {
		return snap, nil
	}

	fresh, err := s.loader.Load(ctx)
	if err != nil {
		stale := s.Snapshot()
		if stale != nil {
			log.Warn().Err(err).Time("loadedAt", stale.LoadedAt).Msg("GTFS reload failed, serving stale snapshot")
			return stale, nil
		}
		return nil, ErrUnavailable
	}

	s.mu.Lock()
	s.snapshot = fresh
	s.mu.Unlock()
	log.Info().Int("trips", len(fresh.Trips)).Msg("GTFS snapshot refreshed")
	return fresh, nil
}

// SetSnapshot installs a snapshot directly, bypassing the loader. Used by
// tests and by callers that parse bundles themselves.
func (s *Store) SetSnapshot(snap *Snapshot) {
	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
}

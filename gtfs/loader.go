package gtfs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

// Source fetches and parses static bundles in precedence order: the remote
// archive when an API key is configured, then the locally bundled copy.
type Source struct {
	RemoteURL    string
	APIKey       string
	LocalZipPath string

	httpClient *http.Client
}

// NewSource builds a Source. A nil client gets a 60s timeout, matching the
// size of a full schedule bundle rather than a realtime poll.
func NewSource(remoteURL, apiKey, localZipPath string, client *http.Client) *Source {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &Source{
		RemoteURL:    remoteURL,
		APIKey:       apiKey,
		LocalZipPath: localZipPath,
		httpClient:   client,
	}
}

// Load returns a fresh Snapshot. Remote failure is not fatal: it logs and
// falls through to the local bundle. Only when every source fails does Load
// return an error.
func (s *Source) Load(ctx context.Context) (*Snapshot, error) {
	var remoteErr error
	if s.RemoteURL != "" && s.APIKey != "" {
		snap, err := s.loadRemote(ctx)
		if err == nil {
			return snap, nil
		}
		remoteErr = err
		log.Warn().Err(err).Msg("Remote GTFS fetch failed, falling back to bundled copy")
	}

	if s.LocalZipPath != "" {
		snap, err := ParseZipFile(s.LocalZipPath)
		if err == nil {
			snap.Fallback = true
			return snap, nil
		}
		if remoteErr != nil {
			return nil, fmt.Errorf("remote: %v; local: %w", remoteErr, err)
		}
		return nil, err
	}

	if remoteErr != nil {
		return nil, remoteErr
	}
	return nil, fmt.Errorf("no gtfs source configured")
}

func (s *Source) loadRemote(ctx context.Context) (*Snapshot, error) {
	u, err := url.Parse(s.RemoteURL)
	if err != nil {
		return nil, fmt.Errorf("remote gtfs url: %w", err)
	}
	q := u.Query()
	q.Set("api_key", s.APIKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch gtfs bundle: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, s.RemoteURL)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gtfs bundle: %w", err)
	}
	log.Info().Int("bytes", len(data)).Msg("Fetched remote GTFS bundle")
	return ParseZip(data)
}

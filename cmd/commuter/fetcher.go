package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// fetcher obtains raw realtime payloads from URLs or local files. This is
// CLI plumbing; the engine itself only ever sees the bytes.
type fetcher struct {
	httpClient *http.Client
}

func newFetcher(timeout time.Duration) *fetcher {
	return &fetcher{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// fetch returns the raw bytes behind a URL or file path. Empty input yields
// nil bytes so optional sources can simply be left unconfigured.
func (f *fetcher) fetch(urlOrPath string) ([]byte, error) {
	if urlOrPath == "" {
		return nil, nil
	}

	if !strings.HasPrefix(urlOrPath, "http://") && !strings.HasPrefix(urlOrPath, "https://") {
		return os.ReadFile(urlOrPath)
	}

	resp, err := f.httpClient.Get(urlOrPath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", urlOrPath, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, urlOrPath)
	}

	return io.ReadAll(resp.Body)
}

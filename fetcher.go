package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetcher downloads the published CSV export of the survey spreadsheet.
// The sheet itself is owned externally; we only ever read it.
type Fetcher struct {
	URL    string
	Client *http.Client
}

func NewFetcher(url string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

// Fetch returns the raw CSV bytes for the current tick. Any failure here is
// a fetch error for this tick only; the caller keeps serving the previous
// snapshot.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch survey data: %w", err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch survey data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch survey data: unexpected status %s, check that the sheet is shared publicly", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch survey data: read body: %w", err)
	}

	body, err = Decompress(f.URL, body)
	if err != nil {
		return nil, fmt.Errorf("fetch survey data: %w", err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("fetch survey data: empty response")
	}
	return body, nil
}

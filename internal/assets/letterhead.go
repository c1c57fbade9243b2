// Package assets fetches the letterhead image used on every slip. The
// image is downloaded once per run and cached for the life of the
// process; concurrent first fetches are collapsed into a single request.
package assets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const maxImageBytes = 4 << 20 // 4 MiB cap on the downloaded letterhead

// Letterhead retrieves image bytes from a fixed URL. It implements
// slip.AssetSource.
type Letterhead struct {
	url    string
	client *http.Client

	group singleflight.Group

	mu     sync.Mutex
	cached []byte
}

func NewLetterhead(url string) *Letterhead {
	return &Letterhead{
		url: url,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Fetch returns the letterhead bytes, downloading them on first use.
// Failures are not cached; the next call retries the download.
func (l *Letterhead) Fetch(ctx context.Context) ([]byte, error) {
	l.mu.Lock()
	if l.cached != nil {
		data := l.cached
		l.mu.Unlock()
		return data, nil
	}
	l.mu.Unlock()

	v, err, shared := l.group.Do(l.url, func() (any, error) {
		return l.download(ctx)
	})
	if err != nil {
		return nil, err
	}
	data := v.([]byte)

	l.mu.Lock()
	l.cached = data
	l.mu.Unlock()

	slog.DebugContext(ctx, "Letterhead fetched",
		"url", l.url,
		"bytes", len(data),
		"shared", shared)
	return data, nil
}

func (l *Letterhead) download(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build letterhead request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch letterhead: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch letterhead: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read letterhead body: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("fetch letterhead: empty response")
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("fetch letterhead: image exceeds %d bytes", maxImageBytes)
	}
	return data, nil
}

// Package httpfetcher retrieves parts over HTTP.
package httpfetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/user/bvfplay/pkg/ports"
)

// DefaultTimeout bounds a single part request.
const DefaultTimeout = 30 * time.Second

// Options configures a Fetcher.
type Options struct {
	Timeout time.Duration
	Headers map[string]string // Extra request headers, e.g. Authorization
}

// Fetcher implements ports.Fetcher with plain GET requests.
// URLTemplate is formatted with the 1-based part index, e.g.
// "https://example.com/video/part-%03d.bvf".
type Fetcher struct {
	urlTemplate string
	client      *http.Client
	headers     map[string]string
}

// New creates a new Fetcher.
func New(urlTemplate string, opts Options) (*Fetcher, error) {
	if !strings.Contains(urlTemplate, "%") {
		return nil, fmt.Errorf("url template %q has no index verb", urlTemplate)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Fetcher{
		urlTemplate: urlTemplate,
		client:      &http.Client{Timeout: opts.Timeout},
		headers:     opts.Headers,
	}, nil
}

// URL returns the address of part index.
func (f *Fetcher) URL(index int) string {
	return fmt.Sprintf(f.urlTemplate, index)
}

// FetchPart downloads part index. A 404 or 410 response means the sequence has
// ended and is reported as ports.ErrPartNotFound.
func (f *Fetcher) FetchPart(ctx context.Context, index int) ([]byte, error) {
	url := f.URL(index)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusGone:
		io.Copy(io.Discard, resp.Body)
		return nil, ports.ErrPartNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("get %s: unexpected status %s", url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return data, nil
}

var _ ports.Fetcher = (*Fetcher)(nil)

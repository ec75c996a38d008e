// Package fetch implements the Fetcher interface.
// It reads stored article bodies over HTTP so the CLI can parse or display
// an article straight from a public URL.
package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/blockpipe/core"
	"github.com/gaurav-prasanna/blockpipe/internal/log"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "BlockPipe/1.0 (https://github.com/gaurav-prasanna/blockpipe)"

	// maxBodyBytes bounds how much of a response is read.
	maxBodyBytes = 16 << 20
)

// HTTPFetcher fetches article bodies via HTTP.
type HTTPFetcher struct {
	client *http.Client
}

// New creates an HTTPFetcher with a sensible timeout.
func New() *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// NewWithClient is New with a caller supplied client.
func NewWithClient(client *http.Client) *HTTPFetcher {
	return &HTTPFetcher{client: client}
}

// Fetch retrieves the body at url. Non-2xx responses are errors.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}

	log.Get().Debug("fetched", zap.String("url", url), zap.Int("bytes", len(body)))
	return &core.FetchResult{
		URL:        url,
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}, nil
}

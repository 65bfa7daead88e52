package parser

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-faster/errors"
)

// DefaultTimeout bounds a single list download.
const DefaultTimeout = 15 * time.Second

// Loader downloads raw lists over HTTP.
type Loader struct {
	Client *http.Client
}

// NewLoader creates a Loader whose client gives up after timeout.
// A non-positive timeout falls back to DefaultTimeout.
func NewLoader(timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Loader{
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch performs one GET of url and returns the body as text.
// Transport failures and non-2xx statuses are returned as errors.
func (l *Loader) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrap(err, "create request")
	}

	resp, err := l.Client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.Errorf("bad status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "read body")
	}
	return string(body), nil
}

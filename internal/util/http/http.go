// Package http fetches remote wallpapers.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jmylchreest/ferret/internal/security"
	"github.com/jmylchreest/ferret/internal/version"
)

const (
	// UserAgentName is the application name used in the User-Agent header.
	UserAgentName = "ferret"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxSize caps a download; wallpapers beyond it are refused.
	DefaultMaxSize = 64 << 20
)

// FetchOptions configures HTTP fetch behavior.
type FetchOptions struct {
	// Timeout specifies the HTTP request timeout.
	// If zero, DefaultTimeout is used.
	Timeout time.Duration

	// MaxSize limits the response body in bytes. If zero, DefaultMaxSize
	// is used.
	MaxSize int64

	// Client overrides the HTTP client. Timeout is ignored when set.
	Client *http.Client

	// AllowInsecure skips URL validation. Tests only.
	AllowInsecure bool
}

// Fetch retrieves content from an HTTPS URL. Local and private hosts are
// refused, as are bodies larger than the configured limit.
func Fetch(ctx context.Context, url string, opts FetchOptions) ([]byte, error) {
	if !opts.AllowInsecure {
		if err := security.ValidateHTTPURL(url); err != nil {
			return nil, err
		}
	}

	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	maxSize := opts.MaxSize
	if maxSize == 0 {
		maxSize = DefaultMaxSize
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", fmt.Sprintf("%s/%s", UserAgentName, version.Version))

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(security.NewLimitedReader(resp.Body, maxSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, nil
}

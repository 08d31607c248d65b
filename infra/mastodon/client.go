package mastodon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/CrestNiraj12/openfeed/domain"
	"github.com/CrestNiraj12/openfeed/infra/auth"
)

// Client is a thin HTTP wrapper for the Mastodon API.
// It handles base URL construction, bearer token injection and maps failures
// onto domain.FetchError kinds.
type Client struct {
	baseURL       string
	tokenProvider auth.TokenProvider
	http          *http.Client
}

// NewClient creates a Mastodon API client. A zero timeout leaves requests
// bounded only by their context.
func NewClient(baseURL string, tp auth.TokenProvider, timeout time.Duration) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		tokenProvider: tp,
		http:          &http.Client{Timeout: timeout},
	}
}

// Get performs an authenticated GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, path)
}

func (c *Client) do(ctx context.Context, method, path string) ([]byte, error) {
	op := method + " " + path

	token, err := c.tokenProvider.AccessToken()
	if err != nil {
		return nil, domain.NewFetchError(domain.KindAuth, op, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err))
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, domain.NewFetchError(domain.KindUnknown, op, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportError(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(op, fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(op, resp, data)
	}
	return data, nil
}

func transportError(op string, err error) error {
	if errors.Is(err, context.Canceled) {
		// Cancellation is not a failure; keep it recognizable to callers.
		return fmt.Errorf("%s: %w", op, err)
	}
	if domain.KindOf(err) == domain.KindTimeout {
		return domain.NewFetchError(domain.KindTimeout, op, err)
	}
	return domain.NewFetchError(domain.KindNetwork, op, err)
}

func statusError(op string, resp *http.Response, body []byte) error {
	cause := fmt.Errorf("API %s returned %d: %s", op, resp.StatusCode, strings.TrimSpace(string(body)))
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.NewFetchError(domain.KindAuth, op, fmt.Errorf("%w: %w", domain.ErrUnauthorized, cause))
	case resp.StatusCode == http.StatusTooManyRequests:
		fe := domain.NewFetchError(domain.KindRateLimited, op, cause)
		fe.RetryAfter = retryAfter(resp.Header, time.Now())
		return fe
	default:
		return domain.NewFetchError(domain.KindUnknown, op, cause)
	}
}

// retryAfter reads Retry-After (seconds or HTTP date), falling back to
// Mastodon's X-RateLimit-Reset timestamp.
func retryAfter(h http.Header, now time.Time) time.Duration {
	if v := strings.TrimSpace(h.Get("Retry-After")); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
		if at, err := http.ParseTime(v); err == nil {
			return positive(at.Sub(now))
		}
	}
	if v := strings.TrimSpace(h.Get("X-RateLimit-Reset")); v != "" {
		if at, err := time.Parse(time.RFC3339, v); err == nil {
			return positive(at.Sub(now))
		}
	}
	return 0
}

func positive(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

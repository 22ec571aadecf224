package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"shopify-insights/config"
	"shopify-insights/internal/types"
)

// TransportError reports a failed fetch: a transport-level failure or a
// non-2xx response. Detectors catch it per call and degrade to "no data".
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status code %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPClient issues GET requests with a fixed header set, a per-request
// timeout and token-bucket rate limiting. No retries: a failed fetch is
// reported once and never reattempted.
type HTTPClient struct {
	client  *http.Client
	config  *config.Config
	logger  types.Logger
	limiter *rate.Limiter
}

// NewHTTPClient creates a new HTTP client with the given configuration.
// Redirects are followed by the underlying client.
func NewHTTPClient(cfg *config.Config, logger types.Logger) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: cfg.Fetch.Timeout,
		},
		config:  cfg,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(cfg.Fetch.RequestsPerSecond), 1),
	}
}

// FetchText performs a GET request and returns the response body as text.
func (h *HTTPClient) FetchText(ctx context.Context, url string) (string, error) {
	body, err := h.get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchJSON performs a GET request and decodes the JSON response into v.
func (h *HTTPClient) FetchJSON(ctx context.Context, url string, v interface{}) error {
	body, err := h.get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &TransportError{URL: url, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (h *HTTPClient) get(ctx context.Context, url string) ([]byte, error) {
	if err := h.limiter.Wait(ctx); err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	req.Header.Set("User-Agent", h.config.Fetch.UserAgent)
	req.Header.Set("Accept", "text/html,application/json;q=0.9,*/*;q=0.8")

	h.logger.Debugf("Fetching %s", url)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	h.logger.Debugf("Retrieved %d bytes from %s", len(body), url)
	return body, nil
}

// Close releases client resources.
func (h *HTTPClient) Close() {
	h.client.CloseIdleConnections()
}

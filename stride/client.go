package stride

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
)

// Options configures a Client. Zero values fall back to the public API
// endpoint and conservative retry settings.
type Options struct {
	BaseURL       string
	Timeout       time.Duration
	PageSize      int
	MaxRetries    int
	RetryInitial  time.Duration
	RetryMax      time.Duration
	HTTPTransport http.RoundTripper
}

// Client is an HTTP client for the Stride API.
type Client struct {
	baseURL      string
	pageSize     int
	maxRetries   int
	retryInitial time.Duration
	retryMax     time.Duration
	httpClient   *http.Client
	breaker      *gobreaker.CircuitBreaker
}

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
	errCircuitOpen = errors.New("circuit breaker open")
)

// NewClient creates a client for the Stride API.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://open-bus-stride-api.hasadna.org.il"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 1000
	}
	if opts.RetryInitial <= 0 {
		opts.RetryInitial = 500 * time.Millisecond
	}
	if opts.RetryMax <= 0 {
		opts.RetryMax = 10 * time.Second
	}
	return &Client{
		baseURL:      opts.BaseURL,
		pageSize:     opts.PageSize,
		maxRetries:   opts.MaxRetries,
		retryInitial: opts.RetryInitial,
		retryMax:     opts.RetryMax,
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: opts.HTTPTransport,
		},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: "stride"}),
	}
}

// PageSize returns the page size used by Iterate.
func (c *Client) PageSize() int { return c.pageSize }

// Get performs a single GET against path with the given query parameters
// and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	body, err := c.getJSON(ctx, path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// List fetches a single page of a list endpoint.
func List[T any](ctx context.Context, c *Client, path string, params url.Values) ([]T, error) {
	var out []T
	if err := c.Get(ctx, path, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Iterate fetches a list endpoint page by page using limit/offset until
// the server returns a short page or limit records were collected.
// limit <= 0 means no cap.
func Iterate[T any](ctx context.Context, c *Client, path string, params url.Values, limit int) ([]T, error) {
	var out []T
	offset := 0
	for {
		pageSize := c.pageSize
		if limit > 0 && limit-len(out) < pageSize {
			pageSize = limit - len(out)
		}
		if pageSize <= 0 {
			break
		}
		p := cloneValues(params)
		p.Set("limit", strconv.Itoa(pageSize))
		p.Set("offset", strconv.Itoa(offset))
		page, err := List[T](ctx, c, path, p)
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		if len(page) < pageSize {
			break
		}
		offset += len(page)
	}
	return out, nil
}

// getJSON performs the request with exponential backoff retries behind the
// circuit breaker. 429 and 5xx responses are retried; everything else
// fails immediately.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var lastErr error
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, err := c.doOnce(ctx, u)
		if err == nil {
			return body, nil
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		if !errors.Is(err, errRateLimited) && !errors.Is(err, errServerError) {
			return nil, err
		}

		lastErr = err
		if attempt >= c.maxRetries {
			return nil, lastErr
		}
		delay := c.retryInitial * time.Duration(math.Pow(2, float64(attempt)))
		if delay > c.retryMax {
			delay = c.retryMax
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (c *Client) doOnce(ctx context.Context, u string) ([]byte, error) {
	result, err := c.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", u, err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: HTTP %d from %s", errRateLimited, resp.StatusCode, u)
		}
		if resp.StatusCode >= 500 {
			return nil, fmt.Errorf("%w: HTTP %d from %s", errServerError, resp.StatusCode, u)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, u)
		}
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}

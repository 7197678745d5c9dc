package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds learning-service connection settings.
type Config struct {
	// BaseURL is the service root, e.g. "https://api.learnly.dev/api".
	BaseURL string

	// Token is the bearer token issued at login. Token issuance is not
	// this client's concern; an empty token simply means premium and
	// per-user endpoints will come back forbidden.
	Token string

	// Timeout is the per-request timeout. Default: 15s.
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{Timeout: 15 * time.Second}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if u := os.Getenv("LEARNLY_API_URL"); u != "" {
		cfg.BaseURL = u
	}
	if t := os.Getenv("LEARNLY_API_TOKEN"); t != "" {
		cfg.Token = t
	}
	return cfg
}

// Validate checks that the config can produce a usable client.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("LEARNLY_API_URL is required")
	}
	return nil
}

// Client is the HTTP client for the learning service. Safe for
// concurrent use.
type Client struct {
	cfg  Config
	http *http.Client
}

// New creates a Client from cfg.
func New(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultConfig().Timeout
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
	}, nil
}

// do performs a JSON request against the service and decodes the
// response into out (out may be nil for fire-and-forget writes).
// Non-2xx statuses are mapped onto the error taxonomy in errors.go.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Context errors pass through so cancellation stays visible.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &ErrTransport{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return c.mapStatus(op, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ErrTransport{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) mapStatus(op string, resp *http.Response) error {
	detail := readDetail(resp.Body)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return &ErrNotFound{Op: op, Err: detail}
	case http.StatusConflict:
		return &ErrConflict{Op: op, Err: detail}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &ErrForbidden{Op: op, Err: detail}
	case http.StatusTooManyRequests:
		return &ErrRateLimited{Op: op, RetryAfter: retryAfter(resp), Err: detail}
	default:
		return &ErrTransport{Op: op, StatusCode: resp.StatusCode, Err: detail}
	}
}

// readDetail extracts the service's {"detail": "..."} error message.
func readDetail(r io.Reader) error {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return fmt.Errorf("no error detail")
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(data, &payload) == nil && payload.Detail != "" {
		return fmt.Errorf("%s", payload.Detail)
	}
	return fmt.Errorf("%s", strings.TrimSpace(string(data)))
}

func retryAfter(resp *http.Response) time.Duration {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

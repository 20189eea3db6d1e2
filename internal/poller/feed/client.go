// internal/poller/feed/client.go
package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tamzrod/siren-display/internal/region"
)

// DefaultURL is the public siren status endpoint.
const DefaultURL = "https://sirens.in.ua/api/v1/"

// Config is the feed transport configuration.
type Config struct {
	URL       string
	Timeout   time.Duration // bounds one whole request. Default: 10s.
	MaxBytes  int64         // response body cap. Default: 1MB.
	UserAgent string
}

func (c *Config) defaults() {
	if c.URL == "" {
		c.URL = DefaultURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.MaxBytes <= 0 {
		c.MaxBytes = 1 << 20
	}
	if c.UserAgent == "" {
		c.UserAgent = "siren-display/1.0"
	}
}

// TransportError covers network failures, timeouts and non-2xx replies.
type TransportError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("feed: GET %s: http %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("feed: GET %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError means the feed answered but the body was not a status map.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "feed: decode: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// Client performs one GET per Fetch call. It keeps no state between calls.
type Client struct {
	http *http.Client
	cfg  Config
}

// New builds a feed client.
func New(cfg Config) (*Client, error) {
	cfg.defaults()
	if !strings.HasPrefix(cfg.URL, "http://") && !strings.HasPrefix(cfg.URL, "https://") {
		return nil, fmt.Errorf("feed: url must be http(s): %q", cfg.URL)
	}
	return &Client{
		http: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
	}, nil
}

// URL returns the endpoint being polled.
func (c *Client) URL() string { return c.cfg.URL }

// Fetch retrieves and decodes one snapshot.
func (c *Client) Fetch(ctx context.Context) (*region.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return nil, &TransportError{URL: c.cfg.URL, Err: err}
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{URL: c.cfg.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &TransportError{
			URL:        c.cfg.URL,
			StatusCode: resp.StatusCode,
			Err:        errors.New(strings.TrimSpace(string(msg))),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.cfg.MaxBytes+1))
	if err != nil {
		return nil, &TransportError{URL: c.cfg.URL, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(body)) > c.cfg.MaxBytes {
		return nil, &DecodeError{Err: fmt.Errorf("body exceeds %d bytes", c.cfg.MaxBytes)}
	}

	snap, err := region.Decode(body)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return snap, nil
}

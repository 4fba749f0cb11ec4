// Package backend is the REST client for the clinical backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/jwalitptl/practice-dashboard/pkg/circuitbreaker"
	"github.com/jwalitptl/practice-dashboard/pkg/metrics"
)

const DefaultBaseURL = "http://localhost:3000"

// Config is the backend connection configuration.
type Config struct {
	BaseURL         string        `envconfig:"BACKEND_BASE_URL" default:"http://localhost:3000"`
	Timeout         time.Duration `envconfig:"BACKEND_TIMEOUT" default:"10s"`
	Token           string        `envconfig:"BACKEND_TOKEN"`
	BreakerFailures int           `envconfig:"BACKEND_BREAKER_FAILURES" default:"5"`
	BreakerTimeout  time.Duration `envconfig:"BACKEND_BREAKER_TIMEOUT" default:"30s"`
}

// LoadFromEnv fills c from the process environment.
func (c *Config) LoadFromEnv() error {
	if err := envconfig.Process("", c); err != nil {
		return fmt.Errorf("unable to load backend config: %w", err)
	}
	return nil
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	breaker    *circuitbreaker.CircuitBreaker
	metrics    *metrics.Metrics
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func NewClient(cfg Config, opts ...Option) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL:    baseURL,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
		Name:        "backend",
		MaxRequests: cfg.BreakerFailures,
		Timeout:     cfg.BreakerTimeout,
		// 4xx answers mean the backend is healthy and rejected the request.
		IsSuccessful: func(err error) bool {
			var be *Error
			return err == nil || (errors.As(err, &be) && be.Status > 0 && be.Status < 500)
		},
		OnStateChange: func(_ string, _ string, to string) {
			c.metrics.BreakerChanged(to)
		},
	})
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// BreakerState is the state of the breaker guarding backend calls.
func (c *Client) BreakerState() string {
	return c.breaker.State()
}

type tokenKey struct{}

// WithToken attaches a bearer token to requests issued with ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Do issues a JSON request and decodes the response body into out when out
// is non-nil. Non-2xx answers and transport failures return *Error.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	var status int
	start := time.Now()
	defer func() {
		c.metrics.ObserveBackend(resourceOf(path), method, status, time.Since(start))
	}()

	err := c.breaker.Execute(func() error {
		var err error
		status, err = c.do(ctx, method, path, body, out)
		return err
	})
	if errors.Is(err, circuitbreaker.ErrOpen) {
		return &Error{Method: method, Path: path, Message: "backend unavailable", Err: err}
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) (int, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, &Error{Method: method, Path: path, Message: err.Error(), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token := tokenFrom(ctx)
	if token == "" {
		token = c.token
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &Error{Method: method, Path: path, Message: fmt.Sprintf("%s %s failed", method, path), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, &Error{Method: method, Path: path, Message: "failed to read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, &Error{
			Status:  resp.StatusCode,
			Message: messageFromBody(resp.StatusCode, data),
			Method:  method,
			Path:    path,
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return resp.StatusCode, nil
}

// resourceOf reduces a path to its first segment for metric labels.
func resourceOf(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexAny(path, "/?"); i >= 0 {
		path = path[:i]
	}
	return path
}

func (c *Client) getJSON(ctx context.Context, path string) (interface{}, error) {
	var out interface{}
	if err := c.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body interface{}) (interface{}, error) {
	var out interface{}
	if err := c.Do(ctx, method, path, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

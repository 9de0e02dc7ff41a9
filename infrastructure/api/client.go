// Package api implements the HTTP client adapter between the state slices
// and the GrociDish API. It owns the base URL, the default timeout, the
// bearer-token request interceptor, and the response-phase error
// normalization: callers always see the server's {message} shape (or the
// generic network message), never a transport-level wrapper.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"grocidish-client/infrastructure/storage"
	"grocidish-client/pkg/errors"
	"grocidish-client/pkg/observability"
)

// errorBody is the server's structured error shape.
type errorBody struct {
	Message string `json:"message"`
}

// Config carries the adapter's construction settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// EnableBreaker trips the circuit after repeated failures. Off by
	// default: with the breaker off every call is attempted exactly once.
	EnableBreaker bool
	Metrics       *observability.Collector
}

// Client is the HTTP client adapter. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  storage.KeyValueStore
	logger  *zap.Logger
	metrics *observability.Collector
	tracer  trace.Tracer
	breaker *gobreaker.CircuitBreaker

	mu      sync.RWMutex
	timeout time.Duration
}

// New creates a client adapter. tokens provides the persisted bearer token
// attached to every request that has one.
func New(cfg Config, tokens storage.KeyValueStore, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		// The transport-level client carries no timeout of its own;
		// deadlines come from the per-request context so callers can
		// extend them for long operations.
		http:    &http.Client{},
		tokens:  tokens,
		logger:  logger,
		metrics: cfg.Metrics,
		tracer:  otel.Tracer("grocidish-client/api"),
		timeout: timeout,
	}

	if cfg.EnableBreaker {
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "grocidish-api",
			MaxRequests: 5,
			Interval:    30 * time.Second,
			Timeout:     60 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				if counts.Requests < 5 {
					return false
				}
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return failureRatio >= 0.8
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.Warn("Circuit breaker state changed",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()))
			},
		})
	}

	return c
}

// SetTimeout replaces the default per-request timeout. Used by the dynamic
// config watcher.
func (c *Client) SetTimeout(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.timeout = d
	c.mu.Unlock()
}

func (c *Client) defaultTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.timeout
}

// requestOptions are per-call overrides.
type requestOptions struct {
	timeout time.Duration
}

// Option customizes a single request.
type Option func(*requestOptions)

// WithTimeout overrides the default timeout for one call. The grocery
// generation endpoint needs several minutes.
func WithTimeout(d time.Duration) Option {
	return func(o *requestOptions) {
		o.timeout = d
	}
}

// Get issues a GET request and decodes the response body into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any, opts ...Option) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out, opts...)
}

// Post issues a POST request with a JSON body and decodes the response into
// out. A nil body sends an empty JSON object, matching the server's
// expectations for parameterless POST endpoints.
func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...Option) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, opts...)
}

// Put issues a PUT request with a JSON body and decodes the response into
// out.
func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...Option) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out, opts...)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, opts ...Option) error {
	options := requestOptions{timeout: c.defaultTimeout()}
	for _, opt := range opts {
		opt(&options)
	}

	ctx, span := c.tracer.Start(ctx, "api.request",
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.path", path),
		),
	)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, options.timeout)
	defer cancel()

	req, err := c.buildRequest(ctx, method, path, query, body)
	if err != nil {
		span.RecordError(err)
		return err
	}

	start := time.Now()
	status, err := c.execute(req, out)
	duration := time.Since(start)

	if c.metrics != nil {
		c.metrics.ObserveRequest(method, path, strconv.Itoa(status), duration)
	}

	if err != nil {
		span.RecordError(err)
		c.logger.Debug("API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.Error(err))
		return err
	}

	c.logger.Debug("API request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("duration", duration))
	return nil
}

// buildRequest assembles the outbound request: URL, JSON body, content type,
// correlation ID, and the bearer token when one is persisted. A storage read
// failure rejects the request.
func (c *Client) buildRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if method != http.MethodGet {
		payload := body
		if payload == nil {
			payload = struct{}{}
		}
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.NewValidationError("request body is not serializable").WithCause(err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	token, found, err := c.tokens.Get(ctx, storage.KeyAuthToken)
	if err != nil {
		return nil, errors.NewStorageError("read auth token", err)
	}
	if found && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

// execute sends the request, normalizes failures, and decodes the success
// body. Returns the HTTP status (0 when the transport failed).
func (c *Client) execute(req *http.Request, out any) (int, error) {
	send := func() (int, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return 0, errors.NewNetworkError(err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return resp.StatusCode, errors.NewNetworkError(err)
		}

		if resp.StatusCode >= 400 {
			return resp.StatusCode, normalizeError(resp.StatusCode, data)
		}

		if out != nil && len(data) > 0 {
			if err := json.Unmarshal(data, out); err != nil {
				return resp.StatusCode, errors.NewServerError("malformed server response").WithCause(err)
			}
		}
		return resp.StatusCode, nil
	}

	if c.breaker == nil {
		return send()
	}

	var status int
	_, err := c.breaker.Execute(func() (any, error) {
		var sendErr error
		status, sendErr = send()
		return nil, sendErr
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return status, errors.NewNetworkError(err)
	}
	return status, err
}

// normalizeError unwraps the server's {message} body, synthesizing the
// generic network message when none is present.
func normalizeError(status int, data []byte) error {
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil || body.Message == "" {
		body.Message = errors.NetworkErrorMessage
	}

	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return errors.NewUnauthorizedError(body.Message)
	}
	return errors.NewServerError(body.Message)
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/optilearn/schedulease/internal/store"
)

const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultTimeout = 15 * time.Second

	// RequestIDHeader carries a per-request uuid.
	RequestIDHeader = "X-Request-ID"
)

// Client talks to the SchedulEase backend.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	logger  *zap.Logger
	events  store.EventRepo
}

type Option func(*Client)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout bounds every request. Zero disables the per-request deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRecorder records every exchange in repo.
func WithRecorder(repo store.EventRepo) Option {
	return func(c *Client) { c.events = repo }
}

// NewClient builds a Client. Options are applied in order.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{},
		timeout: DefaultTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.events != nil {
		wrapped := *c.http
		wrapped.Transport = &recordingTransport{
			inner:  c.http.Transport,
			events: c.events,
			logger: c.logger,
		}
		c.http = &wrapped
	}
	return c
}

// BaseURL returns the backend address in use.
func (c *Client) BaseURL() string { return c.baseURL }

// envelope is the {success, message, data} wrapper most endpoints use.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// send performs one exchange and returns the status and raw body. Only
// transport failures are returned as errors.
func (c *Client) send(ctx context.Context, op, method, path string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("api request failed",
			zap.String("op", op),
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", reqID),
			zap.Error(err),
		)
		return 0, nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &TransportError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}

	c.logger.Debug("api request",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
		zap.String("request_id", reqID),
	)
	return resp.StatusCode, raw, nil
}

// call performs an enveloped exchange and decodes data into out (if
// non-nil).
func (c *Client) call(ctx context.Context, op, method, path string, body, out any) error {
	status, raw, err := c.send(ctx, op, method, path, body)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return statusError(status, raw)
	}

	if err := validateResponse(op, envelopeSchema, raw); err != nil {
		return err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &InvalidResponseError{Op: op, Content: raw, Err: err}
	}
	if !env.Success {
		return &APIError{Status: status, Message: env.Message}
	}
	if out == nil {
		return nil
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return &InvalidResponseError{Op: op, Content: raw, Err: fmt.Errorf("missing data")}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &InvalidResponseError{Op: op, Content: env.Data, Err: err}
	}
	return nil
}

// callBare performs an exchange whose 2xx body is the payload itself.
func (c *Client) callBare(ctx context.Context, op, method, path string, schema *Schema, out any) error {
	status, raw, err := c.send(ctx, op, method, path, nil)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return statusError(status, raw)
	}
	if err := validateResponse(op, schema, raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &InvalidResponseError{Op: op, Content: raw, Err: err}
	}
	return nil
}

// statusError builds an APIError from a non-2xx body. The backend uses
// {"message": ...} for its own failures and {"detail": ...} for framework
// ones; detail may be a string or a list of validation problems.
func statusError(status int, raw []byte) *APIError {
	var body struct {
		Message string          `json:"message"`
		Detail  json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return &APIError{Status: status}
	}
	if body.Message != "" {
		return &APIError{Status: status, Message: body.Message}
	}

	var detail string
	if err := json.Unmarshal(body.Detail, &detail); err == nil {
		return &APIError{Status: status, Message: detail}
	}
	var problems []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(body.Detail, &problems); err == nil && len(problems) > 0 {
		msgs := make([]string, 0, len(problems))
		for _, p := range problems {
			if p.Msg != "" {
				msgs = append(msgs, p.Msg)
			}
		}
		return &APIError{Status: status, Message: strings.Join(msgs, "; ")}
	}
	return &APIError{Status: status}
}

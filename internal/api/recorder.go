package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/optilearn/schedulease/internal/store"
)

// recordingTransport is a RoundTripper decorator that records every
// exchange as an api_request_events row.
type recordingTransport struct {
	inner  http.RoundTripper
	events store.EventRepo
	logger *zap.Logger
}

func (t *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	inner := t.inner
	if inner == nil {
		inner = http.DefaultTransport
	}

	start := time.Now()
	resp, err := inner.RoundTrip(req)

	data := store.APIRequestEventData{
		RequestID: req.Header.Get(RequestIDHeader),
		Method:    req.Method,
		Path:      req.URL.Path,
		LatencyMs: time.Since(start).Milliseconds(),
	}
	if resp != nil {
		data.Status = resp.StatusCode
		data.Success = resp.StatusCode >= 200 && resp.StatusCode <= 299
		if !data.Success {
			data.ErrorMessage = resp.Status
		}
	}
	if err != nil {
		data.Success = false
		data.ErrorMessage = err.Error()
	}

	// The request context may already be cancelled; the row still belongs
	// in the log.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(req.Context()), 2*time.Second)
	defer cancel()
	if logErr := t.events.AppendAPIRequest(ctx, data); logErr != nil {
		t.logger.Warn("failed to record api request", zap.Error(fmt.Errorf("append event: %w", logErr)))
	}

	return resp, err
}

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	After int64     // id > After
	From  time.Time // timestamp >= From
}

// KVRepo stores opaque values under fixed keys.
type KVRepo interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// APIRequestEventData captures one call to the backend.
type APIRequestEventData struct {
	RequestID    string
	Method       string
	Path         string
	Status       int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// APIRequestRecord is a stored APIRequestEventData.
type APIRequestRecord struct {
	ID        int64
	Timestamp time.Time
	APIRequestEventData
}

// EventRepo provides append and query access to the request log.
type EventRepo interface {
	// AppendAPIRequest records a backend call.
	AppendAPIRequest(ctx context.Context, data APIRequestEventData) error

	// QueryAPIRequests returns logged calls, newest first.
	QueryAPIRequests(ctx context.Context, opts QueryOpts) ([]APIRequestRecord, error)
}

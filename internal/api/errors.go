package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// APIError is a failure reported by the backend: a non-2xx status or an
// envelope with success=false. Message is the server's text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}

// TransportError indicates the backend could not be reached or the
// exchange failed before a response was read.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// InvalidResponseError indicates a response body that could not be decoded
// or does not match the expected shape.
type InvalidResponseError struct {
	Op      string
	Content json.RawMessage
	Err     error
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("%s: invalid response: %v", e.Op, e.Err)
}

func (e *InvalidResponseError) Unwrap() error { return e.Err }

// DisplayMessage returns the text a view should show for err. Server
// messages are shown verbatim; anything else collapses to fallback.
func DisplayMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"success":false,"message":"NUID taken"}`, "NUID taken"},
		{"detail string", `{"detail":"User not found"}`, "User not found"},
		{"detail list", `{"detail":[{"loc":["body","nuid"],"msg":"field required"},{"msg":"value is not a valid list"}]}`, "field required; value is not a valid list"},
		{"no message", `{}`, ""},
		{"not json", `<html>bad gateway</html>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := statusError(502, []byte(tt.body))
			assert.Equal(t, 502, err.Status)
			assert.Equal(t, tt.want, err.Message)
		})
	}
}

func TestAPIErrorText(t *testing.T) {
	assert.Equal(t, "request failed with status 500", (&APIError{Status: 500}).Error())
	assert.Equal(t, "bad", (&APIError{Status: 400, Message: "bad"}).Error())
}

func TestErrorsUnwrap(t *testing.T) {
	inner := errors.New("connection refused")

	wrapped := fmt.Errorf("load: %w", &TransportError{Op: "progress", Err: inner})
	assert.ErrorIs(t, wrapped, inner)

	var te *TransportError
	assert.ErrorAs(t, wrapped, &te)

	invalid := &InvalidResponseError{Op: "progress", Err: inner}
	assert.ErrorIs(t, invalid, inner)
	assert.Contains(t, invalid.Error(), "invalid response")
}

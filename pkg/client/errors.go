package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorDetail is one entry of the error envelope a failing query returns.
type ErrorDetail struct {
	Position    []string `json:"position"`
	Code        string   `json:"code"`
	Description string   `json:"description"`
}

// APIError is a transport-surfaced failure. The core never retries or
// interprets it; recovery policy belongs to the caller.
type APIError struct {
	StatusCode int
	Errors     []ErrorDetail
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("query failed with status %d: %s: %s", e.StatusCode, e.Errors[0].Code, e.Errors[0].Description)
	}
	return fmt.Sprintf("query failed with status %d", e.StatusCode)
}

func newAPIError(statusCode int, body []byte) error {
	var envelope struct {
		Errors []ErrorDetail `json:"errors"`
	}
	// A body that is not the error envelope still yields a usable error.
	_ = json.Unmarshal(body, &envelope)
	return &APIError{StatusCode: statusCode, Errors: envelope.Errors}
}

func hasStatus(err error, statusCode int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == statusCode
}

func IsBadRequest(err error) bool   { return hasStatus(err, http.StatusBadRequest) }
func IsUnauthorized(err error) bool { return hasStatus(err, http.StatusUnauthorized) }
func IsNotFound(err error) bool     { return hasStatus(err, http.StatusNotFound) }

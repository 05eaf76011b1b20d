// Package errors provides custom error types for the chat collaborator client.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Sentinel errors for common cases
var (
	ErrInvalidResponse = errors.New("invalid response format")
	ErrNetwork         = errors.New("network error")
	ErrHTTPStatus      = errors.New("unexpected HTTP status")
	ErrEmptyPrompt     = errors.New("prompt cannot be empty")
	ErrClientClosed    = errors.New("client is closed")
)

// maxBodyInError bounds how much of an error body is kept for diagnostics
const maxBodyInError = 4096

// APIError represents a non-2xx answer from the collaborator
type APIError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP error! Status: %d", e.StatusCode)
}

// Is allows comparison with sentinel errors
func (e *APIError) Is(target error) bool {
	if target == ErrHTTPStatus {
		return true
	}
	_, ok := target.(*APIError)
	return ok
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint string) *APIError {
	return &APIError{StatusCode: statusCode, Endpoint: endpoint}
}

// NewAPIErrorWithBody creates an APIError that keeps (a prefix of) the response body
func NewAPIErrorWithBody(statusCode int, endpoint, body string) *APIError {
	if len(body) > maxBodyInError {
		body = body[:maxBodyInError]
	}
	return &APIError{StatusCode: statusCode, Endpoint: endpoint, Body: body}
}

// NetworkError represents a transport-level failure (DNS, refused connection, reset...)
type NetworkError struct {
	Operation string
	Endpoint  string
	Err       error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("network error during %s", e.Operation)
	}
	return fmt.Sprintf("network error during %s: %v", e.Operation, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is allows comparison with sentinel errors
func (e *NetworkError) Is(target error) bool {
	if target == ErrNetwork {
		return true
	}
	_, ok := target.(*NetworkError)
	return ok
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(operation string, err error) *NetworkError {
	return &NetworkError{Operation: operation, Err: err}
}

// NewNetworkErrorWithEndpoint creates a NetworkError tagged with the endpoint that failed
func NewNetworkErrorWithEndpoint(operation, endpoint string, err error) *NetworkError {
	return &NetworkError{Operation: operation, Endpoint: endpoint, Err: err}
}

// TimeoutError represents a request that exceeded the configured timeout
type TimeoutError struct {
	Message string
}

func (e *TimeoutError) Error() string {
	if e.Message == "" {
		return "request timed out"
	}
	return fmt.Sprintf("request timed out: %s", e.Message)
}

// NewTimeoutError creates a new TimeoutError
func NewTimeoutError(message string) *TimeoutError {
	return &TimeoutError{Message: message}
}

// ParseError represents a response body that could not be decoded
type ParseError struct {
	Message string
	Path    string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse error: %s", e.Message)
	}
	return fmt.Sprintf("parse error at %s: %s", e.Path, e.Message)
}

// Is allows comparison with sentinel errors
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidResponse {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// NewParseError creates a new ParseError
func NewParseError(message, path string) *ParseError {
	return &ParseError{Message: message, Path: path}
}

// IsNetworkError reports whether err is a transport failure
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNetwork) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// IsTimeoutError reports whether err is a timeout
func IsTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	var te *TimeoutError
	if errors.As(err, &te) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// IsParseError reports whether err is a response decoding failure
func IsParseError(err error) bool {
	return err != nil && errors.Is(err, ErrInvalidResponse)
}

// GetHTTPStatus returns the HTTP status carried by err, or 0
func GetHTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// GetEndpoint returns the endpoint carried by err, or ""
func GetEndpoint(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Endpoint
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Endpoint
	}
	return ""
}

// GetResponseBody returns the response body carried by err, or ""
func GetResponseBody(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Body
	}
	return ""
}

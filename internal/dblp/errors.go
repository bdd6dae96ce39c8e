package dblp

import (
	"errors"
	"fmt"
)

// Common errors returned by the DBLP client.
var (
	// ErrRateLimited indicates the rate limit has been exceeded.
	ErrRateLimited = errors.New("DBLP rate limit exceeded")

	// ErrServerError indicates a server-side failure (5xx).
	ErrServerError = errors.New("DBLP server error")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with DBLP")

	// ErrInvalidResponse indicates an unexpected API response.
	ErrInvalidResponse = errors.New("invalid response from DBLP")
)

// APIError represents an error response from the DBLP API.
type APIError struct {
	StatusCode int
	Query      string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("DBLP API error (status %d) for query %q", e.StatusCode, e.Query)
}

// IsTransient reports whether the error is worth retrying: network
// failures, rate limiting, and server-side errors. Malformed responses
// and client-side errors are not.
func IsTransient(err error) bool {
	if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrServerError) || errors.Is(err, ErrNetworkError) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}
	return false
}

package repository

import (
	"errors"
	"fmt"
)

// Provider failure taxonomy. RateLimited skips the provider immediately with
// no retry; everything else counts as ProviderUnavailable and is retried a
// bounded number of times before the next provider is tried.
var (
	ErrRateLimited       = errors.New("provider: rate limited")
	ErrMalformedResponse = errors.New("provider: malformed response")
)

// HTTPError is a non-2xx provider response other than 429.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("provider: http status %d", e.Status)
}

// StatusError maps an HTTP status code onto the taxonomy.
func StatusError(status int) error {
	if status == 429 {
		return ErrRateLimited
	}
	return &HTTPError{Status: status}
}

// IsRateLimited reports whether err is the trusted rate-limit signal.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

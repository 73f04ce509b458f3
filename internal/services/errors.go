package services

import (
	"errors"
	"fmt"
)

// ErrNoMatch means the aggregator answered but had no Spotify entry
var ErrNoMatch = errors.New("no spotify match")

// ErrInvalidURI means a supplied spotify: URI failed structural validation
var ErrInvalidURI = errors.New("invalid uri format")

// RateLimitedError is a 429 from the aggregator. RetryAfter carries the
// upstream Retry-After header verbatim when present.
type RateLimitedError struct {
	RetryAfter string
}

func (e *RateLimitedError) Error() string {
	if e.RetryAfter != "" {
		return fmt.Sprintf("odesli rate limited, retry after %s", e.RetryAfter)
	}
	return "odesli rate limited"
}

// UpstreamError is any other non-2xx aggregator response
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("odesli returned status %d", e.Status)
}

// UpstreamMalformedError is a 2xx aggregator response whose body could
// not be decoded. Body is truncated before it is stored here.
type UpstreamMalformedError struct {
	Message string
	Body    string
}

func (e *UpstreamMalformedError) Error() string {
	return "odesli response malformed: " + e.Message
}

// FetchFailedError is a transport-level failure reaching the aggregator
type FetchFailedError struct {
	Err error
}

func (e *FetchFailedError) Error() string {
	return "fetch failed: " + e.Err.Error()
}

func (e *FetchFailedError) Unwrap() error {
	return e.Err
}

package ai

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotConfigured indicates the provider has no usable credentials.
	// Permanent: the orchestrator stops sending work to the provider.
	ErrNotConfigured = errors.New("ai provider not configured")

	// ErrContentTooLarge indicates the input exceeds the configured character
	// ceiling. Permanent and surfaced to the caller, never retried.
	ErrContentTooLarge = errors.New("content exceeds maximum length")

	// ErrMalformedResponse indicates the provider answered but no valid
	// result document could be extracted. Transient.
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrProvider is the generic transient provider failure (network errors,
	// 5xx responses, timeouts).
	ErrProvider = errors.New("ai provider request failed")
)

// RateLimitError reports a vendor 429. It is typed rather than a sentinel
// because it carries the vendor's retry-after hint. The orchestrator does
// not retry the same provider on it.
type RateLimitError struct {
	Provider   string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s rate limited, retry after %s", e.Provider, e.RetryAfter)
	}
	return fmt.Sprintf("%s rate limited", e.Provider)
}

func IsRateLimit(err error) bool {
	var rle *RateLimitError
	return errors.As(err, &rle)
}

// IsRetryable reports whether the same provider may be attempted again.
// Unknown errors count as transient, which matches how vendor SDK errors
// that carry no classification should be handled.
func IsRetryable(err error) bool {
	switch {
	case err == nil:
		return false
	case IsRateLimit(err):
		return false
	case errors.Is(err, ErrNotConfigured), errors.Is(err, ErrContentTooLarge):
		return false
	default:
		return true
	}
}

// Package enrichment produces AI-generated summaries and simplified
// rewrites for articles, degrading to placeholder content whenever the
// generation capability fails, times out or is rate-limited.
package enrichment

import (
	"context"
	"errors"
	"fmt"
)

// TextGenerator abstracts a single-turn text completion capability.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerateError is the failure type returned by TextGenerator
// implementations. RateLimited carries quota exhaustion as a machine-
// checkable flag instead of a message substring.
type GenerateError struct {
	Op          string
	RateLimited bool
	Err         error
}

func (e *GenerateError) Error() string {
	if e.RateLimited {
		return fmt.Sprintf("%s: rate limited: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *GenerateError) Unwrap() error { return e.Err }

// IsRateLimited reports whether err carries the rate-limited flag.
func IsRateLimited(err error) bool {
	var genErr *GenerateError
	return errors.As(err, &genErr) && genErr.RateLimited
}

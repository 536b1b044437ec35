package common

import (
	"context"
	"strings"
	"time"
)

// FirstNonBlank returns the first value that is not empty after trimming,
// trimmed. It returns "" if every value is blank.
func FirstNonBlank(values ...string) string {
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	return ""
}

// WithTimeout is context.WithTimeout where a timeout <= 0 means no deadline.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

package core

import (
	"context"
	"time"
)

// TimeProvider abstracts time operations for the domain so the round
// scheduler and settlement flows can be tested with a fixed clock
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	Until(t time.Time) time.Duration
	Sleep(d time.Duration)
	WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc)
}

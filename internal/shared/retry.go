package shared

import (
	"context"
	"fmt"
	"time"
)

// Retry runs fn up to 1+retries times, sleeping delay between attempts.
// It returns nil on the first success, otherwise the last error wrapped
// with the attempt count. A cancelled context stops further attempts.
func Retry(ctx context.Context, retries int, delay time.Duration, fn func(ctx context.Context) error) error {
	var last error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 && delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		last = fn(ctx)
		if last == nil {
			return nil
		}
	}
	return fmt.Errorf("after %d attempts: %w", retries+1, last)
}

package ports

import (
	"context"
	"time"
)

// DailySequence hands out order sequence numbers scoped to a UTC calendar
// day. Next must be atomic under concurrency so that two orders created in
// the same instant never share a number; numbers restart from 1 at midnight
// UTC.
type DailySequence interface {
	// Next returns the next sequence number for the UTC day of the given time.
	Next(ctx context.Context, day time.Time) (int, error)
}

package schedule

import "time"

// Handle refers to a scheduled callback.
type Handle interface {
	// Cancel prevents every invocation that has not started yet. It is
	// safe to call it more than once and from inside the callback itself.
	Cancel()
}

type Scheduler interface {
	After(d time.Duration, fn func()) Handle
	Every(d time.Duration, fn func()) Handle
	Now() time.Time
}

package delivery

import "time"

// Scheduler runs f after d. Retries go through it so tests can observe
// and shorten the backoff.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type Timer interface {
	Stop() bool
}

type timeScheduler struct{}

func (timeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealScheduler schedules with the runtime timers.
func RealScheduler() Scheduler {
	return timeScheduler{}
}

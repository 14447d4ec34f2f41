package delivery

import "time"

// Policy bounds how long and how often a submission is retried.
type Policy struct {
	MaxRetries int
	Timeout    time.Duration
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		MaxRetries: 3,
		Timeout:    10 * time.Second,
		BaseDelay:  2 * time.Second,
		MaxDelay:   10 * time.Second,
	}
}

// Delay returns the wait before the given retry (1-based):
// min(BaseDelay * 2^retry, MaxDelay).
func (p Policy) Delay(retry int) time.Duration {
	if retry < 1 {
		retry = 1
	}
	d := p.BaseDelay
	for i := 0; i < retry; i++ {
		d *= 2
		if d >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	return d
}

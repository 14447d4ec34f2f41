package delivery

import (
	"context"
	"sync"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusDelivered Status = "delivered"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
	StatusCanceled  Status = "canceled"
)

// Delivery tracks one submission through its attempts.
type Delivery struct {
	mu       sync.Mutex
	status   Status
	attempts int
	retries  int
	delays   []time.Duration
	err      error
	timer    Timer
	done     chan struct{}
}

func newDelivery() *Delivery {
	return &Delivery{status: StatusPending, done: make(chan struct{})}
}

func finished(status Status, err error) *Delivery {
	d := newDelivery()
	d.finish(status, err)
	return d
}

// finish is idempotent; only the first call sets the final status.
func (d *Delivery) finish(status Status, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.status != StatusPending {
		return
	}
	d.status = status
	d.err = err
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	close(d.done)
}

func (d *Delivery) Done() <-chan struct{} {
	return d.done
}

// Wait blocks until the delivery settles or ctx ends.
func (d *Delivery) Wait(ctx context.Context) error {
	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Delivery) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// Attempts is the number of POSTs sent so far.
func (d *Delivery) Attempts() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.attempts
}

// Retries is the current retry counter; it drops back to zero on success.
func (d *Delivery) Retries() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.retries
}

// Delays lists the backoff waits scheduled between attempts.
func (d *Delivery) Delays() []time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]time.Duration(nil), d.delays...)
}

// Err is the last failure, nil once delivered.
func (d *Delivery) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

package service

import (
	"math"
	"time"
)

// RetryPolicy defines exponential backoff parameters for transient
// submission failures.
type RetryPolicy struct {
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryPolicy spaces attempts 30s, 1m, 2m, 4m, ... apart, capped at
// half an hour. Field links recover on the order of minutes, not seconds.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		InitialDelay:  30 * time.Second,
		MaxDelay:      30 * time.Minute,
		BackoffFactor: 2,
	}
}

// NextDelay returns the delay for a given attempt (1-based) with clamping.
func (r RetryPolicy) NextDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if r.InitialDelay <= 0 {
		r.InitialDelay = time.Second
	}
	if r.BackoffFactor <= 0 {
		r.BackoffFactor = 2
	}

	delay := float64(r.InitialDelay) * math.Pow(r.BackoffFactor, float64(attempt-1))
	d := time.Duration(delay)
	if r.MaxDelay > 0 && d > r.MaxDelay {
		d = r.MaxDelay
	}
	if d <= 0 {
		d = time.Second
	}
	return d
}

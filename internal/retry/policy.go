// Package retry turns configured retry settings into backoff schedules.
package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"git.home.luguber.info/inful/docaggregator/internal/config"
)

// Policy describes how often and how long to wait between retries of a
// transient failure. It is immutable after construction.
type Policy struct {
	Mode       config.RetryBackoffMode
	Initial    time.Duration
	Max        time.Duration
	MaxRetries int
}

// DefaultPolicy returns exponential backoff from 1s capped at 30s with 2 retries.
func DefaultPolicy() Policy {
	return Policy{Mode: config.RetryBackoffExponential, Initial: time.Second, Max: 30 * time.Second, MaxRetries: config.DefaultRetries}
}

// NewPolicy builds a policy from raw config fields; zero or invalid values fall back to defaults.
func NewPolicy(mode config.RetryBackoffMode, initial, maxDelay time.Duration, maxRetries int) Policy {
	p := DefaultPolicy()
	if maxRetries >= 0 {
		p.MaxRetries = maxRetries
	}
	if initial > 0 {
		p.Initial = initial
	}
	if maxDelay > 0 {
		p.Max = maxDelay
	}
	switch mode {
	case config.RetryBackoffFixed, config.RetryBackoffLinear, config.RetryBackoffExponential:
		p.Mode = mode
	}
	if p.Initial > p.Max {
		p.Initial = p.Max
	}
	return p
}

// FromBranches builds the clone retry policy from the branches config section.
func FromBranches(b config.BranchesConfig) Policy {
	return NewPolicy(b.RetryBackoff, b.RetryInitial, b.RetryMax, b.Retries)
}

// Delay returns the wait before the given retry (1-based).
func (p Policy) Delay(retry int) time.Duration {
	if retry <= 0 {
		return 0
	}
	var d time.Duration
	switch p.Mode {
	case config.RetryBackoffFixed:
		d = p.Initial
	case config.RetryBackoffLinear:
		d = time.Duration(retry) * p.Initial
	default:
		if retry > 30 {
			return p.Max
		}
		d = p.Initial * (1 << (retry - 1))
	}
	if d > p.Max {
		return p.Max
	}
	return d
}

// Validate reports a policy that cannot be applied.
func (p Policy) Validate() error {
	if p.Initial <= 0 {
		return fmt.Errorf("initial must be >0")
	}
	if p.Max <= 0 {
		return fmt.Errorf("max must be >0")
	}
	if p.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	return nil
}

// BackOff returns a backoff.BackOff that yields Delay(1..MaxRetries) and then
// stops, bound to ctx.
func (p Policy) BackOff(ctx context.Context) backoff.BackOff {
	return backoff.WithContext(&schedule{policy: p}, ctx)
}

type schedule struct {
	policy Policy
	n      int
}

func (s *schedule) NextBackOff() time.Duration {
	if s.n >= s.policy.MaxRetries {
		return backoff.Stop
	}
	s.n++
	return s.policy.Delay(s.n)
}

func (s *schedule) Reset() { s.n = 0 }

package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docaggregator/internal/config"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, config.RetryBackoffExponential, p.Mode)
	assert.Equal(t, time.Second, p.Initial)
	assert.Equal(t, 30*time.Second, p.Max)
	assert.Equal(t, 2, p.MaxRetries)
	require.NoError(t, p.Validate())
}

func TestNewPolicyOverrides(t *testing.T) {
	p := NewPolicy(config.RetryBackoffFixed, 5*time.Second, 2*time.Second, 5)
	assert.Equal(t, 2*time.Second, p.Initial, "initial clamped to max")
	assert.Equal(t, config.RetryBackoffFixed, p.Mode)
	assert.Equal(t, 5, p.MaxRetries)

	p = NewPolicy("bogus", 0, 0, -1)
	assert.Equal(t, DefaultPolicy(), p)
}

func TestDelayModes(t *testing.T) {
	fixed := NewPolicy(config.RetryBackoffFixed, 100*time.Millisecond, 500*time.Millisecond, 3)
	for i := 1; i <= 3; i++ {
		assert.Equal(t, 100*time.Millisecond, fixed.Delay(i))
	}

	linear := NewPolicy(config.RetryBackoffLinear, 100*time.Millisecond, 250*time.Millisecond, 5)
	assert.Equal(t, 100*time.Millisecond, linear.Delay(1))
	assert.Equal(t, 200*time.Millisecond, linear.Delay(2))
	assert.Equal(t, 250*time.Millisecond, linear.Delay(3))

	exp := NewPolicy(config.RetryBackoffExponential, 50*time.Millisecond, 160*time.Millisecond, 5)
	assert.Equal(t, 50*time.Millisecond, exp.Delay(1))
	assert.Equal(t, 100*time.Millisecond, exp.Delay(2))
	assert.Equal(t, 160*time.Millisecond, exp.Delay(3))
	assert.Equal(t, 160*time.Millisecond, exp.Delay(64))

	assert.Zero(t, exp.Delay(0))
	assert.Zero(t, exp.Delay(-1))
}

func TestBackOffStopsAfterMaxRetries(t *testing.T) {
	p := NewPolicy(config.RetryBackoffFixed, time.Millisecond, time.Millisecond, 2)
	attempts := 0
	err := backoff.Retry(func() error {
		attempts++
		return errors.New("transient")
	}, p.BackOff(context.Background()))
	require.Error(t, err)
	assert.Equal(t, 3, attempts)
}

func TestBackOffPermanent(t *testing.T) {
	p := NewPolicy(config.RetryBackoffFixed, time.Millisecond, time.Millisecond, 5)
	attempts := 0
	err := backoff.Retry(func() error {
		attempts++
		return backoff.Permanent(errors.New("auth"))
	}, p.BackOff(context.Background()))
	require.EqualError(t, err, "auth")
	assert.Equal(t, 1, attempts)
}

func TestFromBranches(t *testing.T) {
	p := FromBranches(config.Default().Branches)
	assert.Equal(t, DefaultPolicy(), p)
}

package daemon

import (
	"context"
	"time"

	ferrors "git.home.luguber.info/inful/docaggregator/internal/foundation/errors"
)

// Trigger asks the loop for one full run.
type Trigger struct {
	Reason string
	At     time.Time
}

// Debouncer coalesces bursts of requests into a single Trigger. A trigger is
// emitted after QuietWindow without new requests, or at the latest MaxDelay
// after the first request of a burst.
type Debouncer struct {
	quiet    time.Duration
	maxDelay time.Duration
}

func NewDebouncer(quiet, maxDelay time.Duration) (*Debouncer, error) {
	if quiet <= 0 {
		return nil, ferrors.ValidationError("quiet window must be > 0").Build()
	}
	if maxDelay < quiet {
		maxDelay = quiet
	}
	return &Debouncer{quiet: quiet, maxDelay: maxDelay}, nil
}

// Run reads reasons from in and forwards debounced triggers to out until ctx
// is done or in is closed. Sends to out never block; a trigger already
// waiting in out absorbs later ones.
func (d *Debouncer) Run(ctx context.Context, in <-chan string, out chan<- Trigger) {
	quietTimer := newStoppedTimer()
	maxTimer := newStoppedTimer()
	defer quietTimer.Stop()
	defer maxTimer.Stop()

	var (
		quietC  <-chan time.Time
		maxC    <-chan time.Time
		pending string
	)
	emit := func() {
		select {
		case out <- Trigger{Reason: pending, At: time.Now()}:
		default:
		}
		quietTimer.Stop()
		maxTimer.Stop()
		quietC, maxC, pending = nil, nil, ""
	}

	for {
		select {
		case <-ctx.Done():
			return
		case reason, ok := <-in:
			if !ok {
				return
			}
			if maxC == nil {
				maxTimer.Reset(d.maxDelay)
				maxC = maxTimer.C
			}
			pending = reason
			resetTimer(quietTimer, d.quiet)
			quietC = quietTimer.C
		case <-quietC:
			emit()
		case <-maxC:
			emit()
		}
	}
}

func newStoppedTimer() *time.Timer {
	t := time.NewTimer(time.Hour)
	if !t.Stop() {
		<-t.C
	}
	return t
}

func resetTimer(t *time.Timer, after time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(after)
}

// Package progress tracks bulk generation work and reports it to humans
// or machines.
package progress

import (
	"github.com/teranos/predef/errors"
)

// Tracker counts finished work against a fixed total.
type Tracker struct {
	total    int
	finished int
}

func NewTracker(total int) *Tracker {
	return &Tracker{total: total}
}

// Advance records n finished items. Advancing past the total is a bug in
// the caller's accounting and returns an assertion error.
func (t *Tracker) Advance(n int) error {
	if t.finished+n > t.total {
		return errors.AssertionFailedf(
			"progress overflow: %d finished + %d exceeds total %d",
			t.finished, n, t.total)
	}
	t.finished += n
	return nil
}

func (t *Tracker) Finished() int { return t.finished }
func (t *Tracker) Total() int    { return t.total }

// Done reports whether every item finished.
func (t *Tracker) Done() bool { return t.finished == t.total }

// Fraction returns completion in [0, 1]. A zero-total tracker is complete.
func (t *Tracker) Fraction() float64 {
	if t.total == 0 {
		return 1
	}
	return float64(t.finished) / float64(t.total)
}

// Emitter receives progress events during a bulk generation run.
//
// Implementations include:
//   - CLIEmitter: pretty-printed terminal output using pterm
//   - JSONEmitter: structured JSON events for machine consumption
type Emitter interface {
	// EmitStage announces a named stage of the run.
	EmitStage(stage, message string)

	// EmitAdvance reports one finished item with the tracker's counts.
	EmitAdvance(tracker *Tracker, item string)

	// EmitComplete reports the run summary.
	EmitComplete(summary map[string]interface{})

	// EmitError reports a failure in a named stage.
	EmitError(stage string, err error)
}

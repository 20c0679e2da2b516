// Package query implements the query lifecycle state machine (§4.5):
// Idle -> Running -> {Completed, Failed} -> Idle, plus the EXPLAIN
// option-list rewriting helpers.
package query

import (
	"time"

	"github.com/ehfeng/querycrafter/internal/driver"
)

// State is one of the four lifecycle states.
type State int

const (
	Idle State = iota
	Running
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Completed:
		return "Completed"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Lifecycle tracks one query's execution through the state machine.
type Lifecycle struct {
	State State

	Text      string
	StartedAt time.Time

	Result          driver.ResultSet
	ExecutionTimeMS int64
	Err             error
}

// Start transitions Idle/Completed/Failed -> Running, snapshotting text
// (the selection if one was active, else the whole buffer — the caller
// resolves which) and clearing any prior error.
func (l *Lifecycle) Start(text string, now time.Time) {
	l.Text = text
	l.StartedAt = now
	l.State = Running
	l.Err = nil
}

// Complete transitions Running -> Completed, storing the outcome. If
// reportedMS is 0 but work clearly happened (elapsed wall clock > 0), the
// wall-clock elapsed time is used instead; the result is never recorded as
// literal zero when time genuinely passed (§4.5: "never record 0 for
// non-zero micros").
func (l *Lifecycle) Complete(set driver.ResultSet, reportedMS int64, now time.Time) {
	ms := reportedMS
	if ms <= 0 {
		ms = now.Sub(l.StartedAt).Milliseconds()
	}
	if ms <= 0 {
		ms = 1
	}
	l.Result = set
	l.ExecutionTimeMS = ms
	l.State = Completed
}

// Fail transitions Running -> Failed. Failed queries are never written to
// history (§4.5).
func (l *Lifecycle) Fail(err error) {
	l.Err = err
	l.State = Failed
}

// Reset returns to Idle, ready for the next ExecuteQuery.
func (l *Lifecycle) Reset() { l.State = Idle }

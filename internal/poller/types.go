// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/siren-display/internal/region"
)

// PollResult is the outcome of one fetch.
// Exactly one of Snapshot and Err is set.
type PollResult struct {
	At       time.Time
	Duration time.Duration

	Snapshot *region.Snapshot
	Err      error // non-nil means the fetch failed
}

// State is the loop's memory between cycles.
// It lives for the life of the process and is never shared.
type State struct {
	// Last is the most recently dispatched candidate. It starts as the
	// empty snapshot; nil means the sentinel was dispatched.
	Last *region.Snapshot

	// ConsecutiveFailures counts fetch failures since the last success.
	ConsecutiveFailures int
}

// NewState returns the start-of-process state.
func NewState() State {
	return State{Last: region.Empty()}
}

// Evaluate folds one poll result into the state.
//
// A success resets the failure count and makes the snapshot the candidate.
// A failure increments the count; once it reaches threshold the candidate
// is the nil sentinel, below it there is no candidate at all.
// notify is true when the candidate differs from Last, in which case Last
// has already been updated.
func (s *State) Evaluate(res PollResult, threshold int) (candidate *region.Snapshot, notify bool) {
	if res.Err == nil {
		s.ConsecutiveFailures = 0
		candidate = res.Snapshot
		if candidate == nil {
			candidate = region.Empty()
		}
	} else {
		s.ConsecutiveFailures++
		if s.ConsecutiveFailures < threshold {
			return nil, false
		}
		candidate = nil
	}

	if region.Equal(candidate, s.Last) {
		return candidate, false
	}

	s.Last = candidate
	return candidate, true
}

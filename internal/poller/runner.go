// internal/poller/runner.go
package poller

import (
	"context"
	"time"

	"github.com/tamzrod/siren-display/internal/logfields"
)

// Step runs one cycle: fetch, evaluate, and notify on change.
// The cycle runs to completion even if ctx is cancelled meanwhile;
// the fetch is still bounded by the client's own timeout.
func (p *Poller) Step(ctx context.Context) PollResult {
	cycle := context.WithoutCancel(ctx)

	res := p.PollOnce(cycle)
	p.rec.IncPoll(outcome(res.Err))

	if res.Err != nil {
		p.log.Warn("feed fetch failed",
			logfields.Failures(p.state.ConsecutiveFailures+1),
			logfields.Threshold(p.cfg.FailureThreshold),
			logfields.Error(res.Err))
	}

	candidate, notify := p.state.Evaluate(res, p.cfg.FailureThreshold)
	p.rec.SetConsecutiveFailures(p.state.ConsecutiveFailures)

	if !notify {
		return res
	}

	p.log.Info("snapshot changed",
		logfields.Available(candidate != nil),
		logfields.Regions(candidate.Len()))

	// Consumer failures are logged by the notifier and never stop the loop.
	_ = p.notifier.Notify(cycle, candidate)
	return res
}

// Run loops Step followed by a fixed sleep until ctx is cancelled.
// Cancellation is observed between cycles only.
func (p *Poller) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		p.Step(ctx)
		p.sleep(ctx, p.cfg.Interval)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

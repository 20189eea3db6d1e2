// internal/poller/poller.go
package poller

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tamzrod/siren-display/internal/metrics"
	"github.com/tamzrod/siren-display/internal/poller/feed"
	"github.com/tamzrod/siren-display/internal/region"
)

// Client fetches one snapshot from the feed.
type Client interface {
	Fetch(ctx context.Context) (*region.Snapshot, error)
}

// Notifier receives every changed candidate.
type Notifier interface {
	Notify(ctx context.Context, snap *region.Snapshot) error
}

// Config is the runtime config the poller needs.
type Config struct {
	Interval         time.Duration
	FailureThreshold int
}

// Poller is a clock-driven, single-threaded fetch/evaluate/notify loop.
type Poller struct {
	cfg      Config
	client   Client
	notifier Notifier
	state    State

	log   *slog.Logger
	rec   metrics.Recorder
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration)
}

// Option configures a Poller.
type Option func(*Poller)

func WithLogger(l *slog.Logger) Option {
	return func(p *Poller) {
		if l != nil {
			p.log = l
		}
	}
}

func WithRecorder(r metrics.Recorder) Option {
	return func(p *Poller) {
		if r != nil {
			p.rec = r
		}
	}
}

// New creates a poller with immutable config.
func New(cfg Config, client Client, notifier Notifier, opts ...Option) (*Poller, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if cfg.FailureThreshold < 1 {
		return nil, errors.New("poller: failure threshold must be >= 1")
	}
	if client == nil {
		return nil, errors.New("poller: client required")
	}
	if notifier == nil {
		return nil, errors.New("poller: notifier required")
	}

	p := &Poller{
		cfg:      cfg,
		client:   client,
		notifier: notifier,
		state:    NewState(),
		log:      slog.Default(),
		rec:      metrics.NoopRecorder{},
		now:      time.Now,
		sleep:    sleepCtx,
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// State returns a copy of the loop state.
func (p *Poller) State() State { return p.state }

// PollOnce performs exactly one fetch.
func (p *Poller) PollOnce(ctx context.Context) PollResult {
	start := p.now()
	snap, err := p.client.Fetch(ctx)

	res := PollResult{At: start, Duration: p.now().Sub(start)}
	if err != nil {
		res.Err = err
		return res
	}
	res.Snapshot = snap
	return res
}

func outcome(err error) metrics.PollOutcome {
	var de *feed.DecodeError
	switch {
	case err == nil:
		return metrics.PollSuccess
	case errors.As(err, &de):
		return metrics.PollDecode
	default:
		return metrics.PollTransport
	}
}

// internal/dispatch/dispatcher.go
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/tamzrod/siren-display/internal/logfields"
	"github.com/tamzrod/siren-display/internal/metrics"
	"github.com/tamzrod/siren-display/internal/region"
)

// Consumer receives every dispatched snapshot.
// A nil snapshot means the feed is unavailable.
type Consumer interface {
	Name() string
	OnSnapshot(ctx context.Context, snap *region.Snapshot) error
}

// Dispatcher fans a snapshot out to its consumers in registration order.
// A failing consumer is logged and skipped; it never stops the others.
// Consumers are registered during setup, before the polling loop starts.
type Dispatcher struct {
	consumers []Consumer
	log       *slog.Logger
	rec       metrics.Recorder

	closeOnce sync.Once
	closeErr  error
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for consumer failures.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(d *Dispatcher) {
		if r != nil {
			d.rec = r
		}
	}
}

// New returns an empty dispatcher.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		log: slog.Default(),
		rec: metrics.NoopRecorder{},
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Register appends c to the notification order.
func (d *Dispatcher) Register(c Consumer) {
	if c == nil {
		return
	}
	d.consumers = append(d.consumers, c)
}

// Len returns the number of registered consumers.
func (d *Dispatcher) Len() int { return len(d.consumers) }

// Notify delivers snap to every consumer synchronously.
// The returned error joins consumer failures and is informational only;
// every consumer has been called by the time Notify returns.
func (d *Dispatcher) Notify(ctx context.Context, snap *region.Snapshot) error {
	d.rec.IncDispatch(snap != nil)

	var errs []string
	for _, c := range d.consumers {
		if err := d.notifyOne(ctx, c, snap); err != nil {
			d.rec.IncConsumerFailure(c.Name())
			d.log.Warn("consumer failed",
				logfields.Consumer(c.Name()),
				logfields.Available(snap != nil),
				logfields.Error(err))
			errs = append(errs, fmt.Sprintf("%s: %v", c.Name(), err))
		}
	}

	if len(errs) > 0 {
		return errors.New("dispatch: " + strings.Join(errs, " | "))
	}
	return nil
}

func (d *Dispatcher) notifyOne(ctx context.Context, c Consumer, snap *region.Snapshot) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return c.OnSnapshot(ctx, snap)
}

// Close closes every consumer that implements io.Closer, in reverse
// registration order. Safe to call more than once.
func (d *Dispatcher) Close() error {
	d.closeOnce.Do(func() {
		var errs []error
		for i := len(d.consumers) - 1; i >= 0; i-- {
			c, ok := d.consumers[i].(io.Closer)
			if !ok {
				continue
			}
			if err := c.Close(); err != nil {
				d.log.Warn("consumer close failed",
					logfields.Consumer(d.consumers[i].Name()),
					logfields.Error(err))
				errs = append(errs, fmt.Errorf("%s: %w", d.consumers[i].Name(), err))
			}
		}
		d.closeErr = errors.Join(errs...)
	})
	return d.closeErr
}

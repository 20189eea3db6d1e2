// internal/dispatch/dispatcher_test.go
package dispatch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/siren-display/internal/metrics"
	"github.com/tamzrod/siren-display/internal/region"
)

type recordingConsumer struct {
	name   string
	err    error
	panics bool
	calls  *[]string
	got    []*region.Snapshot
	closed int
}

func (r *recordingConsumer) Name() string { return r.name }

func (r *recordingConsumer) OnSnapshot(_ context.Context, snap *region.Snapshot) error {
	*r.calls = append(*r.calls, r.name)
	r.got = append(r.got, snap)
	if r.panics {
		panic("kaboom")
	}
	return r.err
}

func (r *recordingConsumer) Close() error {
	r.closed++
	*r.calls = append(*r.calls, "close:"+r.name)
	return nil
}

type plainConsumer struct{ n int }

func (p *plainConsumer) Name() string { return "plain" }
func (p *plainConsumer) OnSnapshot(context.Context, *region.Snapshot) error {
	p.n++
	return nil
}

type countingRecorder struct {
	metrics.NoopRecorder
	dispatches int
	failures   map[string]int
}

func (c *countingRecorder) IncDispatch(bool) { c.dispatches++ }
func (c *countingRecorder) IncConsumerFailure(name string) {
	if c.failures == nil {
		c.failures = map[string]int{}
	}
	c.failures[name]++
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNotify_OrderAndIsolation(t *testing.T) {
	var calls []string
	first := &recordingConsumer{name: "first", err: errors.New("display offline"), calls: &calls}
	second := &recordingConsumer{name: "second", panics: true, calls: &calls}
	third := &recordingConsumer{name: "third", calls: &calls}

	d := New(WithLogger(quietLogger()))
	d.Register(first)
	d.Register(second)
	d.Register(third)

	snap := region.NewSnapshot(map[string]region.Status{"A": region.StatusFull})
	err := d.Notify(context.Background(), snap)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "first: display offline")
	assert.Contains(t, err.Error(), "second: panic: kaboom")
	assert.Equal(t, []string{"first", "second", "third"}, calls)
	require.Len(t, third.got, 1)
	assert.True(t, region.Equal(snap, third.got[0]))
}

func TestNotify_SentinelDelivered(t *testing.T) {
	var calls []string
	c := &recordingConsumer{name: "c", calls: &calls}

	d := New(WithLogger(quietLogger()))
	d.Register(c)

	require.NoError(t, d.Notify(context.Background(), nil))
	require.Len(t, c.got, 1)
	assert.Nil(t, c.got[0])
}

func TestClose_ReverseOrderOnce(t *testing.T) {
	var calls []string
	a := &recordingConsumer{name: "a", calls: &calls}
	b := &recordingConsumer{name: "b", calls: &calls}

	d := New(WithLogger(quietLogger()))
	d.Register(a)
	d.Register(&plainConsumer{})
	d.Register(b)
	d.Register(nil)

	assert.Equal(t, 3, d.Len())
	require.NoError(t, d.Close())
	require.NoError(t, d.Close())

	assert.Equal(t, []string{"close:b", "close:a"}, calls)
	assert.Equal(t, 1, a.closed)
	assert.Equal(t, 1, b.closed)
}

func TestNotify_RecordsMetrics(t *testing.T) {
	var calls []string
	rec := &countingRecorder{}

	d := New(WithLogger(quietLogger()), WithRecorder(rec))
	d.Register(&recordingConsumer{name: "bad", err: errors.New("x"), calls: &calls})

	_ = d.Notify(context.Background(), region.Empty())
	_ = d.Notify(context.Background(), nil)

	assert.Equal(t, 2, rec.dispatches)
	assert.Equal(t, 2, rec.failures["bad"])
}

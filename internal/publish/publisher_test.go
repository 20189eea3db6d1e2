// internal/publish/publisher_test.go
package publish

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/siren-display/internal/region"
)

type fakeConn struct {
	subjects []string
	payloads [][]byte
	err      error
	drained  bool
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.payloads = append(f.payloads, data)
	return nil
}

func (f *fakeConn) Drain() error {
	f.drained = true
	return nil
}

type wireMessage struct {
	ID        string            `json:"id"`
	At        time.Time         `json:"at"`
	Available bool              `json:"available"`
	Regions   map[string]string `json:"regions"`
	Counts    region.Counts     `json:"counts"`
}

func newPublisher(t *testing.T, conn *fakeConn) *Publisher {
	t.Helper()
	p, err := New(conn, "sirens.snapshot", []string{"A", "B"}, nil)
	require.NoError(t, err)
	p.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return p
}

func TestPublish_Live(t *testing.T) {
	conn := &fakeConn{}
	p := newPublisher(t, conn)

	snap := region.NewSnapshot(map[string]region.Status{"A": region.StatusPartial})
	require.NoError(t, p.OnSnapshot(context.Background(), snap))

	require.Len(t, conn.payloads, 1)
	assert.Equal(t, "sirens.snapshot", conn.subjects[0])

	var msg wireMessage
	require.NoError(t, json.Unmarshal(conn.payloads[0], &msg))

	_, err := uuid.Parse(msg.ID)
	assert.NoError(t, err)
	assert.True(t, msg.Available)
	assert.Equal(t, map[string]string{"A": "partial"}, msg.Regions)
	assert.Equal(t, region.Counts{Partial: 1, Nothing: 1}, msg.Counts)
	assert.True(t, msg.At.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))
}

func TestPublish_Sentinel(t *testing.T) {
	conn := &fakeConn{}
	p := newPublisher(t, conn)

	require.NoError(t, p.OnSnapshot(context.Background(), nil))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(conn.payloads[0], &raw))
	assert.Equal(t, false, raw["available"])
	assert.Nil(t, raw["regions"])
}

func TestPublish_UniqueIDs(t *testing.T) {
	conn := &fakeConn{}
	p := newPublisher(t, conn)

	require.NoError(t, p.OnSnapshot(context.Background(), region.Empty()))
	require.NoError(t, p.OnSnapshot(context.Background(), region.Empty()))

	var a, b wireMessage
	require.NoError(t, json.Unmarshal(conn.payloads[0], &a))
	require.NoError(t, json.Unmarshal(conn.payloads[1], &b))
	assert.NotEqual(t, a.ID, b.ID)
}

func TestPublish_ErrorWrapped(t *testing.T) {
	boom := errors.New("connection closed")
	conn := &fakeConn{err: boom}
	p := newPublisher(t, conn)

	err := p.OnSnapshot(context.Background(), region.Empty())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestClose_Drains(t *testing.T) {
	conn := &fakeConn{}
	p := newPublisher(t, conn)

	assert.Equal(t, "nats", p.Name())
	require.NoError(t, p.Close())
	assert.True(t, conn.drained)
}

func TestNew_Rejects(t *testing.T) {
	_, err := New(nil, "s", nil, nil)
	assert.Error(t, err)

	_, err = New(&fakeConn{}, "", nil, nil)
	assert.Error(t, err)
}

// internal/publish/publisher.go
package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/tamzrod/siren-display/internal/logfields"
	"github.com/tamzrod/siren-display/internal/region"
)

// Conn is the subset of *nats.Conn the publisher uses.
type Conn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// Message is one dispatched candidate on the wire.
type Message struct {
	ID        string           `json:"id"`
	At        time.Time        `json:"at"`
	Available bool             `json:"available"`
	Regions   *region.Snapshot `json:"regions"`
	Counts    region.Counts    `json:"counts"`
}

// Publisher forwards every dispatched candidate to a NATS subject.
type Publisher struct {
	conn     Conn
	subject  string
	universe []string
	log      *slog.Logger
	now      func() time.Time
}

// New wraps an established connection.
func New(conn Conn, subject string, universe []string, log *slog.Logger) (*Publisher, error) {
	if conn == nil {
		return nil, errors.New("publish: connection required")
	}
	if subject == "" {
		return nil, errors.New("publish: subject required")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Publisher{
		conn:     conn,
		subject:  subject,
		universe: universe,
		log:      log,
		now:      time.Now,
	}, nil
}

// Connect dials url and returns a publisher on subject.
func Connect(url, subject string, universe []string, log *slog.Logger) (*Publisher, error) {
	nc, err := nats.Connect(url, nats.Name("siren-display"))
	if err != nil {
		return nil, fmt.Errorf("publish: connect %s: %w", url, err)
	}
	p, err := New(nc, subject, universe, log)
	if err != nil {
		nc.Close()
		return nil, err
	}
	p.log.Info("nats publisher connected", logfields.URL(url), logfields.Subject(subject))
	return p, nil
}

func (p *Publisher) Name() string { return "nats" }

// OnSnapshot publishes snap. The sentinel goes out with available=false
// and null regions.
func (p *Publisher) OnSnapshot(_ context.Context, snap *region.Snapshot) error {
	msg := Message{
		ID:        uuid.NewString(),
		At:        p.now().UTC(),
		Available: snap != nil,
		Regions:   snap,
		Counts:    region.Tally(snap, p.universe),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("publish: marshal: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish: %s: %w", p.subject, err)
	}

	p.log.Debug("snapshot published",
		logfields.Subject(p.subject),
		logfields.Available(msg.Available),
		logfields.Regions(snap.Len()))
	return nil
}

// Close drains pending messages and closes the connection.
func (p *Publisher) Close() error {
	return p.conn.Drain()
}

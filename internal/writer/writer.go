// internal/writer/writer.go
package writer

import (
	"context"
	"errors"
	"io"

	"github.com/tamzrod/siren-display/internal/region"
	"github.com/tamzrod/siren-display/internal/status"
)

// Mirror is a dispatch consumer that keeps a Modbus register block in
// step with the dispatched snapshots, for PLCs and SCADA panels.
type Mirror struct {
	plan   Plan
	status StatusWriter
	closer io.Closer
}

// New builds a mirror writing through cli. closer may be nil.
func New(plan Plan, cli endpointClient, closer io.Closer) (*Mirror, error) {
	if cli == nil {
		return nil, errors.New("writer: endpoint client required")
	}
	if len(plan.Regions) == 0 {
		return nil, errors.New("writer: plan has no regions")
	}
	return &Mirror{
		plan:   plan,
		status: newBlockWriter(plan, cli),
		closer: closer,
	}, nil
}

func (m *Mirror) Name() string { return "modbus" }

// OnSnapshot writes the register view of snap. The sentinel marks the
// block stale and clears the region registers.
func (m *Mirror) OnSnapshot(_ context.Context, snap *region.Snapshot) error {
	return m.status.WriteStatus(status.FromRegions(snap, m.plan.Regions))
}

// Close releases the endpoint connection.
func (m *Mirror) Close() error {
	if m.closer == nil {
		return nil
	}
	return m.closer.Close()
}

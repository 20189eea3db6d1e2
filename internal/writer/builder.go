// internal/writer/builder.go
package writer

import (
	"errors"
	"time"

	cfg "github.com/tamzrod/siren-display/internal/config"
	wmodbus "github.com/tamzrod/siren-display/internal/writer/modbus"
)

// BuildPlan converts the modbus config and region universe into a Plan.
// Assumes config has already passed validation.
func BuildPlan(c cfg.ModbusConfig, universe []string) (Plan, error) {
	if c.Endpoint == "" {
		return Plan{}, errors.New("writer: modbus.endpoint required")
	}

	regions := make([]string, len(universe))
	copy(regions, universe)

	return Plan{
		Endpoint:    c.Endpoint,
		UnitID:      c.UnitID,
		BaseAddress: c.BaseAddress,
		DeviceName:  c.DeviceName,
		Regions:     regions,
	}, nil
}

// Build connects to the endpoint and returns a ready Mirror.
func Build(c cfg.ModbusConfig, universe []string) (*Mirror, error) {
	plan, err := BuildPlan(c, universe)
	if err != nil {
		return nil, err
	}

	cli, err := wmodbus.NewEndpointClient(wmodbus.Config{
		Endpoint: plan.Endpoint,
		UnitID:   plan.UnitID,
		Timeout:  time.Duration(c.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, err
	}

	m, err := New(plan, cli, cli)
	if err != nil {
		_ = cli.Close()
		return nil, err
	}
	return m, nil
}

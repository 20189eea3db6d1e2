// internal/writer/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// MaxRegistersPerWrite is the FC16 limit on registers per request.
const MaxRegistersPerWrite = 123

// EndpointClient is a single TCP connection to one register endpoint.
// Requests are serialized; the handler is not safe for concurrent use.
type EndpointClient struct {
	mu      sync.Mutex
	handler *modbus.TCPClientHandler
	client  modbus.Client
}

type Config struct {
	Endpoint string
	UnitID   uint8
	Timeout  time.Duration
}

// NewEndpointClient connects to cfg.Endpoint.
func NewEndpointClient(cfg Config) (*EndpointClient, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("writer modbus: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout
	h.SlaveId = cfg.UnitID

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("writer modbus: connect %s: %w", cfg.Endpoint, err)
	}

	return &EndpointClient{
		handler: h,
		client:  modbus.NewClient(h),
	}, nil
}

func (c *EndpointClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handler.Close()
}

// WriteRegisters writes regs starting at addr (FC16), split into
// requests of at most MaxRegistersPerWrite registers.
func (c *EndpointClient) WriteRegisters(addr uint16, regs []uint16) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for off := 0; off < len(regs); off += MaxRegistersPerWrite {
		end := off + MaxRegistersPerWrite
		if end > len(regs) {
			end = len(regs)
		}
		chunk := regs[off:end]

		start := addr + uint16(off)
		if _, err := c.client.WriteMultipleRegisters(start, uint16(len(chunk)), packRegisters(chunk)); err != nil {
			return fmt.Errorf("writer modbus: fc16 addr=%d qty=%d: %w", start, len(chunk), err)
		}
	}
	return nil
}

func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}

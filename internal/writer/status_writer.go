// internal/writer/status_writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/siren-display/internal/status"
)

// StatusWriter is the delivery-only contract for the register block.
// It receives a snapshot and writes it verbatim.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}

// blockWriter writes the full block on first use and after any failure,
// and only the changed register runs otherwise.
type blockWriter struct {
	plan Plan
	cli  endpointClient

	needFull bool
	last     []uint16
	nameRegs []uint16
}

func newBlockWriter(plan Plan, cli endpointClient) *blockWriter {
	return &blockWriter{
		plan:     plan,
		cli:      cli,
		needFull: true, // full re-assert on first successful write
		nameRegs: status.EncodeDeviceName(plan.DeviceName),
	}
}

// WriteStatus delivers a snapshot into register memory.
// On any write failure, the next call re-asserts the full block.
func (bw *blockWriter) WriteStatus(s status.Snapshot) error {
	if bw.cli == nil {
		return fmt.Errorf("status writer: missing client for endpoint %s", bw.plan.Endpoint)
	}
	if len(s.Regions) != len(bw.plan.Regions) {
		return fmt.Errorf("status writer: got %d region codes, plan has %d", len(s.Regions), len(bw.plan.Regions))
	}
	if int(bw.plan.BaseAddress)+status.HeaderSlots+len(s.Regions) > 0x10000 {
		return errors.New("status writer: block does not fit the register space")
	}

	regs := status.Encode(s, bw.nameRegs)

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if bw.needFull || len(bw.last) != len(regs) {
		if err := bw.cli.WriteRegisters(bw.plan.BaseAddress, regs); err != nil {
			bw.needFull = true
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}
		bw.needFull = false
		bw.last = regs
		return nil
	}

	// ------------------------------------------------------------
	// Incremental: one write per contiguous run of changed registers
	// ------------------------------------------------------------
	var errs []string
	for i := 0; i < len(regs); {
		if regs[i] == bw.last[i] {
			i++
			continue
		}
		j := i
		for j < len(regs) && regs[j] != bw.last[j] {
			j++
		}

		addr := bw.plan.BaseAddress + uint16(i)
		if err := bw.cli.WriteRegisters(addr, regs[i:j]); err != nil {
			errs = append(errs, fmt.Sprintf("slots %d-%d write failed: %v", i, j-1, err))
		} else {
			copy(bw.last[i:j], regs[i:j])
		}
		i = j
	}

	if len(errs) > 0 {
		// Any partial failure introduces doubt: re-assert on next write.
		bw.needFull = true
		return errors.New("status writer: " + strings.Join(errs, " | "))
	}

	return nil
}

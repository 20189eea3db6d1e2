// internal/writer/types.go
package writer

// Plan is the fully-built register layout for the mirror.
type Plan struct {
	Endpoint    string
	UnitID      uint8
	BaseAddress uint16
	DeviceName  string

	// Regions fixes the register order: region i lives at
	// BaseAddress + status.HeaderSlots + i.
	Regions []string
}

// endpointClient is the exact contract the writer uses.
type endpointClient interface {
	WriteRegisters(addr uint16, regs []uint16) error
}

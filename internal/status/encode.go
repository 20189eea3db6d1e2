// internal/status/encode.go
package status

// Encode converts a Snapshot into the full register block:
// header followed by one register per region.
// Layout is protocol-locked.
// No IO. No side effects.
func Encode(s Snapshot, nameRegs []uint16) []uint16 {
	regs := make([]uint16, HeaderSlots+len(s.Regions))

	regs[SlotHealthCode] = s.Health
	regs[SlotRegionCount] = clamp(len(s.Regions))
	regs[SlotFullCount] = clamp(s.Counts.Full)
	regs[SlotPartialCount] = clamp(s.Counts.Partial)
	regs[SlotNoDataCount] = clamp(s.Counts.NoData)
	regs[SlotNothingCount] = clamp(s.Counts.Nothing)

	// Slots SlotReservedStart..SlotReservedEnd are RESERVED and left as zero.

	for i := 0; i < SlotDeviceNameSlots && i < len(nameRegs); i++ {
		regs[SlotDeviceNameStart+i] = nameRegs[i]
	}

	copy(regs[HeaderSlots:], s.Regions)
	return regs
}

// EncodeDeviceName packs up to 16 ASCII characters into 8 registers.
// Each register stores two ASCII bytes in big-endian order.
func EncodeDeviceName(name string) []uint16 {
	out := make([]uint16, SlotDeviceNameSlots)

	b := []byte(name)
	if len(b) > DeviceNameMaxChars {
		b = b[:DeviceNameMaxChars]
	}

	// sanitize to printable ASCII
	for i := 0; i < len(b); i++ {
		if b[i] < 0x20 || b[i] > 0x7E {
			b[i] = '?'
		}
	}

	for i := 0; i < DeviceNameMaxChars; i += 2 {
		var hi, lo byte
		if i < len(b) {
			hi = b[i]
		}
		if i+1 < len(b) {
			lo = b[i+1]
		}
		out[i/2] = uint16(hi)<<8 | uint16(lo)
	}

	return out
}

func clamp(n int) uint16 {
	if n < 0 {
		return 0
	}
	if n > 0xFFFF {
		return 0xFFFF
	}
	return uint16(n)
}

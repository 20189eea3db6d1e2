// internal/status/constants.go
package status

// Siren status block layout constants.
// These values define the register protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// HeaderSlots is the fixed size of the header in front of the region registers.
const HeaderSlots = 20

// ---- HEADER SLOT INDICES ----

// SlotHealthCode holds the feed health state.
const SlotHealthCode = 0

// SlotRegionCount holds the number of region registers after the header.
const SlotRegionCount = 1

// SlotFullCount .. SlotNothingCount hold the legend counts.
const (
	SlotFullCount    = 2
	SlotPartialCount = 3
	SlotNoDataCount  = 4
	SlotNothingCount = 5
)

// ---- RESERVED RANGE ----

// Slots 6-10 are reserved for future use.
const SlotReservedStart = 6
const SlotReservedEnd = 10

// ---- DEVICE NAME ----

// SlotDeviceNameStart is the first slot used for the device name.
const SlotDeviceNameStart = 11

// SlotDeviceNameSlots is the number of slots reserved for the device name.
const SlotDeviceNameSlots = 8

// SlotDeviceNameEnd is the last slot used for the device name (inclusive).
const SlotDeviceNameEnd = SlotDeviceNameStart + SlotDeviceNameSlots - 1

// ---- LIMITS ----

// DeviceNameMaxChars is the maximum number of ASCII characters stored for device name.
const DeviceNameMaxChars = 16

// ---- HEALTH CODES ----

// HealthUnknown represents the boot state before the first dispatch.
const HealthUnknown uint16 = 0

// HealthOK means the region registers reflect a live snapshot.
const HealthOK uint16 = 1

// HealthError is reserved for local delivery faults.
const HealthError uint16 = 2

// HealthStale means the feed is unavailable; region registers are cleared.
const HealthStale uint16 = 3

// ---- REGION CODES ----

const (
	RegionUnknown uint16 = 0
	RegionFull    uint16 = 1
	RegionPartial uint16 = 2
	RegionNoData  uint16 = 3
)

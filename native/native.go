// Package native declares the capability interfaces padcore expects from a
// platform's controller-enumeration API. The session core only consumes
// these shapes; it never reaches into a platform API directly, so it can be
// driven by a fake implementation in tests.
package native

// Backend is the injected handle to the platform controller subsystem.
type Backend interface {
	// Controllers enumerates the currently attached controllers. The order
	// is whatever the platform reports and need not be stable across calls.
	Controllers() ([]Controller, error)

	// Subscribe registers hot-plug callbacks. Both callbacks are invoked on
	// an execution context owned by the backend, concurrently with any
	// polling of Controllers.
	Subscribe(added, removed func(Controller)) error
}

// Controller is one attached physical controller.
//
// AxisCount, ButtonCount and SwitchCount are fixed for the lifetime of the
// handle; Reading fills caller-owned slices of exactly those lengths.
// Implementations must tolerate concurrent calls: the polling goroutine
// captures readings while the consumer goroutine resolves identity and
// queries metadata.
type Controller interface {
	// StableID is a persistent identifier that survives disconnects and
	// reboots but not port changes. It is the key used to recognise a
	// controller across hot-plug.
	StableID() string

	// DisplayName returns a human-readable device name.
	DisplayName() (string, error)

	VendorID() (uint16, error)
	ProductID() (uint16, error)

	// IsWireless reports whether the controller is connected wirelessly.
	IsWireless() (bool, error)

	AxisCount() int
	ButtonCount() int
	SwitchCount() int

	// Reading copies the current sample into the provided slices and
	// returns the sample's monotonically non-decreasing timestamp. Axis
	// values are normalized to [0, 1]. The slice lengths must match the
	// controller's counts.
	Reading(buttons []bool, switches []SwitchPosition, axes []float64) (uint64, error)

	// Battery returns the current battery report for wireless controllers.
	Battery() (BatteryReport, error)

	// Mapped returns the richer semantic gamepad handle, if the platform
	// recognises this controller as a standard gamepad. Its presence gates
	// force-feedback support.
	Mapped() (MappedGamepad, bool)

	// ForceFeedbackMotorCount reports how many rumble motors are
	// inspectable on the raw handle.
	ForceFeedbackMotorCount() (int, error)
}

// MappedGamepad is the optional force-feedback-capable handle of a
// controller. Effect playback itself is outside the core; the handle is
// only surfaced to consumers.
type MappedGamepad interface {
	// Rumble sets the low- and high-frequency motor levels in [0, 1].
	Rumble(low, high float64) error
}

// SwitchPosition is a discrete switch (hat) reading, mirroring the native
// API's nine positions.
type SwitchPosition int32

const (
	SwitchCenter SwitchPosition = iota
	SwitchUp
	SwitchUpRight
	SwitchRight
	SwitchDownRight
	SwitchDown
	SwitchDownLeft
	SwitchLeft
	SwitchUpLeft
)

// BatteryStatus mirrors the native battery state enumeration.
type BatteryStatus int32

const (
	BatteryNotPresent BatteryStatus = iota
	BatteryDischarging
	BatteryIdle
	BatteryCharging
)

// BatteryReport is a point-in-time battery sample.
type BatteryReport struct {
	Status BatteryStatus
	// Capacities in milliwatt-hours; zero when the platform does not
	// report them.
	FullChargeMilliwattHours int32
	RemainingMilliwattHours  int32
}

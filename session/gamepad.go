package session

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/padcore/padcore/event"
	"github.com/padcore/padcore/native"
)

// Bus type codes used by controller-mapping databases.
const (
	busUSB       = 0x03
	busBluetooth = 0x05
)

// GUID is the 16-byte controller fingerprint used to look up entries in
// community mapping databases. The byte layout follows the SDL convention
// so existing mapping files keep matching.
type GUID [16]byte

func (g GUID) String() string {
	return hex.EncodeToString(g[:])
}

// AxisInfo describes the public value range of an axis.
type AxisInfo struct {
	Min int32
	Max int32
	// Deadzone is nil when none is applied; deadzones are left to the
	// consumer or mapping layer.
	Deadzone *uint32
}

// PowerState classifies a controller's power source.
type PowerState int

const (
	PowerUnknown PowerState = iota
	PowerWired
	PowerDischarging
	PowerCharging
	PowerCharged
)

func (s PowerState) String() string {
	switch s {
	case PowerWired:
		return "Wired"
	case PowerDischarging:
		return "Discharging"
	case PowerCharging:
		return "Charging"
	case PowerCharged:
		return "Charged"
	default:
		return "Unknown"
	}
}

// PowerStatus is a point-in-time power reading. Percent is meaningful only
// for the Discharging and Charging states.
type PowerStatus struct {
	State   PowerState
	Percent uint8
}

func (p PowerStatus) String() string {
	switch p.State {
	case PowerDischarging, PowerCharging:
		return fmt.Sprintf("%s(%d%%)", p.State, p.Percent)
	default:
		return p.State.String()
	}
}

// Gamepad is the session-local descriptor of one physical controller. A
// Gamepad is created the first time a controller is observed and is never
// removed from the session's table; a controller that disconnects and
// reconnects is matched back to its existing Gamepad by persistent
// identifier, so its session id stays stable.
type Gamepad struct {
	id        int
	name      string
	guid      GUID
	connected bool

	ctrl     native.Controller
	stableID string

	// mapped is the richer semantic gamepad handle, when the platform
	// recognises the controller as a standard gamepad. Its presence gates
	// force-feedback support.
	mapped    native.MappedGamepad
	hasMapped bool

	axes    []event.Code
	buttons []event.Code
}

func newGamepad(id int, ctrl native.Controller) *Gamepad {
	name, err := ctrl.DisplayName()
	if err != nil || name == "" {
		name = "unknown"
	}

	// Construction-time query failures fall back to documented defaults:
	// zero hardware ids and a wired bus type.
	vendor, err := ctrl.VendorID()
	if err != nil {
		vendor = 0
	}
	product, err := ctrl.ProductID()
	if err != nil {
		product = 0
	}
	wireless, err := ctrl.IsWireless()
	if err != nil {
		wireless = false
	}

	mapped, hasMapped := ctrl.Mapped()

	g := &Gamepad{
		id:        id,
		name:      name,
		guid:      fingerprint(wireless, vendor, product),
		connected: true,
		ctrl:      ctrl,
		stableID:  ctrl.StableID(),
		mapped:    mapped,
		hasMapped: hasMapped,
	}

	g.buttons = make([]event.Code, ctrl.ButtonCount())
	for i := range g.buttons {
		g.buttons[i] = event.Code{Kind: event.KindButton, Index: uint16(i)}
	}
	g.axes = make([]event.Code, ctrl.AxisCount())
	for i := range g.axes {
		g.axes[i] = event.Code{Kind: event.KindAxis, Index: uint16(i)}
	}

	return g
}

// fingerprint derives the mapping-database GUID from the bus type and the
// hardware vendor and product ids, with the version field fixed at zero.
// Final layout (matching SDL): 16-bit little-endian fields
// bus, 0, vendor, 0, product, 0, version, 0.
func fingerprint(wireless bool, vendor, product uint16) GUID {
	bus := uint16(busUSB)
	if wireless {
		bus = busBluetooth
	}
	var g GUID
	binary.LittleEndian.PutUint16(g[0:2], bus)
	binary.LittleEndian.PutUint16(g[4:6], vendor)
	binary.LittleEndian.PutUint16(g[8:10], product)
	// Bytes 2-3 (crc), 6-7, 10-11 and 12-15 (version, driver info) stay
	// zero.
	return g
}

// ID returns the session-local device id.
func (g *Gamepad) ID() int { return g.id }

// Name returns the display name reported by the controller, or "unknown".
func (g *Gamepad) Name() string { return g.name }

// GUID returns the mapping-database fingerprint.
func (g *Gamepad) GUID() GUID { return g.guid }

// PersistentID returns the platform identifier that survives disconnects
// and reboots (but not port changes).
func (g *Gamepad) PersistentID() string { return g.stableID }

// IsConnected reports whether the controller is currently attached. The
// flag tracks the Connected/Disconnected events resolved by the session.
func (g *Gamepad) IsConnected() bool { return g.connected }

// Buttons returns the ordered button codes of this controller.
func (g *Gamepad) Buttons() []event.Code { return g.buttons }

// Axes returns the ordered axis codes of this controller.
func (g *Gamepad) Axes() []event.Code { return g.axes }

// AxisInfo returns the value range for an axis code. Every axis spans the
// full signed 16-bit range with no deadzone.
func (g *Gamepad) AxisInfo(code event.Code) (AxisInfo, bool) {
	if code.Kind != event.KindAxis || int(code.Index) >= len(g.axes) {
		return AxisInfo{}, false
	}
	return AxisInfo{Min: -32768, Max: 32767}, true
}

// PowerStatus queries the controller's power source. The result is derived
// on demand and never cached; any query failure collapses to Unknown.
func (g *Gamepad) PowerStatus() PowerStatus {
	status, err := g.powerStatus()
	if err != nil {
		return PowerStatus{State: PowerUnknown}
	}
	return status
}

func (g *Gamepad) powerStatus() (PowerStatus, error) {
	wireless, err := g.ctrl.IsWireless()
	if err != nil {
		return PowerStatus{}, err
	}
	if !wireless {
		return PowerStatus{State: PowerWired}, nil
	}

	report, err := g.ctrl.Battery()
	if err != nil {
		return PowerStatus{}, err
	}
	switch report.Status {
	case native.BatteryDischarging, native.BatteryCharging:
		if report.FullChargeMilliwattHours <= 0 {
			return PowerStatus{}, fmt.Errorf("battery report has no full-charge capacity")
		}
		percent := uint8(float32(report.RemainingMilliwattHours) / float32(report.FullChargeMilliwattHours) * 100)
		switch {
		case percent == 100:
			return PowerStatus{State: PowerCharged}, nil
		case report.Status == native.BatteryDischarging:
			return PowerStatus{State: PowerDischarging, Percent: percent}, nil
		default:
			return PowerStatus{State: PowerCharging, Percent: percent}, nil
		}
	case native.BatteryNotPresent:
		return PowerStatus{State: PowerWired}, nil
	case native.BatteryIdle:
		return PowerStatus{State: PowerCharged}, nil
	default:
		return PowerStatus{State: PowerUnknown}, nil
	}
}

// FFSupported reports whether the controller can play force-feedback
// effects: it must expose the mapped gamepad handle and an inspectable,
// non-empty motor list.
func (g *Gamepad) FFSupported() bool {
	if !g.hasMapped {
		return false
	}
	motors, err := g.ctrl.ForceFeedbackMotorCount()
	return err == nil && motors > 0
}

// FFDevice returns the force-feedback handle, if present.
func (g *Gamepad) FFDevice() (native.MappedGamepad, bool) {
	return g.mapped, g.hasMapped
}

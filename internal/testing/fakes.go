// Package testing provides fake native backends and controllers for
// exercising the session core without real hardware.
package testing

import (
	"sync"

	"github.com/padcore/padcore/native"
)

// FakeBackend is an in-memory native.Backend. Attach and Detach mimic the
// platform's hot-plug notifications by invoking the subscribed callbacks
// synchronously.
type FakeBackend struct {
	mu      sync.Mutex
	ctrls   []*FakeController
	added   func(native.Controller)
	removed func(native.Controller)
	enumErr error
}

func NewFakeBackend(ctrls ...*FakeController) *FakeBackend {
	return &FakeBackend{ctrls: ctrls}
}

// SetEnumerateError makes subsequent Controllers calls fail with err.
func (b *FakeBackend) SetEnumerateError(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enumErr = err
}

func (b *FakeBackend) Controllers() ([]native.Controller, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.enumErr != nil {
		return nil, b.enumErr
	}
	out := make([]native.Controller, 0, len(b.ctrls))
	for _, c := range b.ctrls {
		out = append(out, c)
	}
	return out, nil
}

func (b *FakeBackend) Subscribe(added, removed func(native.Controller)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.added = added
	b.removed = removed
	return nil
}

// Attach adds the controller to the enumeration set and fires the added
// callback, like a plug-in notification.
func (b *FakeBackend) Attach(c *FakeController) {
	b.mu.Lock()
	b.ctrls = append(b.ctrls, c)
	added := b.added
	b.mu.Unlock()
	if added != nil {
		added(c)
	}
}

// Detach removes the controller from the enumeration set and fires the
// removed callback.
func (b *FakeBackend) Detach(c *FakeController) {
	b.mu.Lock()
	for i, have := range b.ctrls {
		if have == c {
			b.ctrls = append(b.ctrls[:i], b.ctrls[i+1:]...)
			break
		}
	}
	removed := b.removed
	b.mu.Unlock()
	if removed != nil {
		removed(c)
	}
}

// FakeController is a scriptable native.Controller. State mutations do not
// advance the sample timestamp on their own; call Tick to publish a new
// sample, which is what lets tests cover the unchanged-timestamp path.
type FakeController struct {
	mu sync.Mutex

	ID       string
	Name     string
	Vendor   uint16
	Product  uint16
	Wireless bool

	NameErr    error
	ReadErr    error
	BatteryRep native.BatteryReport
	BatteryErr error

	MappedHandle native.MappedGamepad
	Motors       int
	MotorsErr    error

	axes     []float64
	buttons  []bool
	switches []native.SwitchPosition
	time     uint64
}

func NewFakeController(id string, axes, buttons, switches int) *FakeController {
	return &FakeController{
		ID:       id,
		Name:     "Fake Controller",
		axes:     make([]float64, axes),
		buttons:  make([]bool, buttons),
		switches: make([]native.SwitchPosition, switches),
		time:     1,
	}
}

func (c *FakeController) StableID() string { return c.ID }

func (c *FakeController) DisplayName() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.NameErr != nil {
		return "", c.NameErr
	}
	return c.Name, nil
}

func (c *FakeController) VendorID() (uint16, error)  { return c.Vendor, nil }
func (c *FakeController) ProductID() (uint16, error) { return c.Product, nil }

func (c *FakeController) IsWireless() (bool, error) { return c.Wireless, nil }

func (c *FakeController) AxisCount() int   { return len(c.axes) }
func (c *FakeController) ButtonCount() int { return len(c.buttons) }
func (c *FakeController) SwitchCount() int { return len(c.switches) }

func (c *FakeController) Reading(buttons []bool, switches []native.SwitchPosition, axes []float64) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ReadErr != nil {
		return 0, c.ReadErr
	}
	copy(buttons, c.buttons)
	copy(switches, c.switches)
	copy(axes, c.axes)
	return c.time, nil
}

func (c *FakeController) Battery() (native.BatteryReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.BatteryErr != nil {
		return native.BatteryReport{}, c.BatteryErr
	}
	return c.BatteryRep, nil
}

func (c *FakeController) Mapped() (native.MappedGamepad, bool) {
	return c.MappedHandle, c.MappedHandle != nil
}

func (c *FakeController) ForceFeedbackMotorCount() (int, error) {
	if c.MotorsErr != nil {
		return 0, c.MotorsErr
	}
	return c.Motors, nil
}

// SetAxis sets a normalized [0, 1] axis value without advancing the sample
// timestamp.
func (c *FakeController) SetAxis(i int, v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.axes[i] = v
}

// SetButton sets a button state without advancing the sample timestamp.
func (c *FakeController) SetButton(i int, pressed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buttons[i] = pressed
}

// SetReadError makes subsequent Reading calls fail with err (nil clears).
func (c *FakeController) SetReadError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ReadErr = err
}

// Tick advances the sample timestamp, marking the current state as a new
// hardware sample.
func (c *FakeController) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.time++
}

// FakeMapped records rumble calls for assertions.
type FakeMapped struct {
	mu    sync.Mutex
	Calls [][2]float64
}

func (m *FakeMapped) Rumble(low, high float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, [2]float64{low, high})
	return nil
}

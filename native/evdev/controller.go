//go:build linux

package evdev

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/padcore/padcore/native"
)

// Joystick ioctls (linux/joystick.h).
const (
	jsiocgAxes    = 0x80016a11
	jsiocgButtons = 0x80016a12
	jsiocgName    = 0x80006a13 + (128 << 16)
)

// js_event type bits.
const (
	jsEventButton = 0x01
	jsEventAxis   = 0x02
	jsEventInit   = 0x80
)

// jsEvent mirrors the kernel's 8-byte struct js_event.
type jsEvent struct {
	Time   uint32
	Value  int16
	Type   uint8
	Number uint8
}

const jsEventSize = 8

// Controller is one /dev/input/jsN device. The kernel delivers deltas as
// queued js_event records; Reading folds any pending records into the held
// state and returns it as a snapshot, so the session core sees the same
// shape it would get from a snapshot-native platform API.
type Controller struct {
	mu sync.Mutex

	// fd is a raw non-blocking descriptor. os.File is avoided on purpose:
	// the runtime poller would park Reading until data arrives, stalling
	// the whole polling cycle; unix.Read returns EAGAIN instead.
	fd   int
	path string
	name string

	// stableID survives disconnects: the sysfs uniq value (a MAC for
	// bluetooth devices) when present, hardware ids and name otherwise.
	stableID string

	vendor   uint16
	product  uint16
	wireless bool

	// batteryDir is the sysfs power_supply node, empty when the device
	// reports none.
	batteryDir string

	axes    []float64
	buttons []bool
	time    uint64
	closed  bool
}

func openController(path string) (*Controller, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	c := &Controller{fd: fd, path: path}

	var axisCount, buttonCount uint8
	if err := ioctl(fd, jsiocgAxes, unsafe.Pointer(&axisCount)); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("querying axis count: %w", err)
	}
	if err := ioctl(fd, jsiocgButtons, unsafe.Pointer(&buttonCount)); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("querying button count: %w", err)
	}
	nameBuf := make([]byte, 128)
	if err := ioctl(fd, jsiocgName, unsafe.Pointer(&nameBuf[0])); err == nil {
		c.name = string(nameBuf[:clen(nameBuf)])
	}

	// Axes start centered; the first queued init events correct this
	// before the session core ever diffs two samples.
	c.axes = make([]float64, axisCount)
	for i := range c.axes {
		c.axes[i] = 0.5
	}
	c.buttons = make([]bool, buttonCount)
	c.time = 1

	c.readSysfsIdentity()
	return c, nil
}

// readSysfsIdentity fills vendor/product/uniq/battery info from
// /sys/class/input/jsN/device. Failures leave the documented defaults:
// zero ids and a wired device.
func (c *Controller) readSysfsIdentity() {
	sysDev := filepath.Join("/sys/class/input", filepath.Base(c.path), "device")

	c.vendor = readHexID(filepath.Join(sysDev, "id", "vendor"))
	c.product = readHexID(filepath.Join(sysDev, "id", "product"))

	uniq := readTrimmed(filepath.Join(sysDev, "uniq"))
	if uniq != "" {
		c.stableID = uniq
		c.wireless = true
	} else {
		c.stableID = fmt.Sprintf("%04x:%04x/%s", c.vendor, c.product, c.name)
	}

	// The parent device exposes a power_supply node for battery-powered
	// controllers.
	matches, _ := filepath.Glob(filepath.Join(sysDev, "device", "power_supply", "*"))
	if len(matches) > 0 {
		c.batteryDir = matches[0]
		c.wireless = true
	}
}

func (c *Controller) StableID() string { return c.stableID }

func (c *Controller) DisplayName() (string, error) {
	if c.name == "" {
		return "", fmt.Errorf("device %s reported no name", c.path)
	}
	return c.name, nil
}

func (c *Controller) VendorID() (uint16, error) { return c.vendor, nil }
func (c *Controller) ProductID() (uint16, error) { return c.product, nil }

func (c *Controller) IsWireless() (bool, error) { return c.wireless, nil }

func (c *Controller) AxisCount() int   { return len(c.axes) }
func (c *Controller) ButtonCount() int { return len(c.buttons) }

// SwitchCount is always zero: joydev reports hats as axis pairs.
func (c *Controller) SwitchCount() int { return 0 }

// Reading drains queued js_event records into the held state and copies it
// out. When no records are pending, the previous sample timestamp is
// returned unchanged, which the session core treats as "no new data".
func (c *Controller) Reading(buttons []bool, switches []native.SwitchPosition, axes []float64) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, fmt.Errorf("device %s is closed", c.path)
	}

	buf := make([]byte, jsEventSize*64)
	for {
		n, err := unix.Read(c.fd, buf)
		if n > 0 {
			c.fold(buf[:n-n%jsEventSize])
		}
		if err != nil {
			if isWouldBlock(err) {
				break
			}
			return 0, fmt.Errorf("reading %s: %w", c.path, err)
		}
		if n < len(buf) {
			break
		}
	}

	copy(buttons, c.buttons)
	copy(axes, c.axes)
	_ = switches
	return c.time, nil
}

func (c *Controller) fold(data []byte) {
	for off := 0; off+jsEventSize <= len(data); off += jsEventSize {
		ev := jsEvent{
			Time:   binary.LittleEndian.Uint32(data[off:]),
			Value:  int16(binary.LittleEndian.Uint16(data[off+4:])),
			Type:   data[off+6],
			Number: data[off+7],
		}
		switch ev.Type &^ jsEventInit {
		case jsEventButton:
			if int(ev.Number) < len(c.buttons) {
				c.buttons[ev.Number] = ev.Value != 0
			}
		case jsEventAxis:
			if int(ev.Number) < len(c.axes) {
				c.axes[ev.Number] = normalizeAxis(ev.Value)
			}
		}
		// Synthetic init events replay current state at open time; they
		// update values but are not fresh hardware data.
		if ev.Type&jsEventInit == 0 {
			c.time = uint64(ev.Time)
		}
	}
}

func (c *Controller) Battery() (native.BatteryReport, error) {
	if c.batteryDir == "" {
		return native.BatteryReport{}, fmt.Errorf("device %s has no battery node", c.path)
	}
	capacity, err := strconv.Atoi(readTrimmed(filepath.Join(c.batteryDir, "capacity")))
	if err != nil {
		return native.BatteryReport{}, fmt.Errorf("reading battery capacity: %w", err)
	}
	status, err := batteryStatus(readTrimmed(filepath.Join(c.batteryDir, "status")))
	if err != nil {
		return native.BatteryReport{}, err
	}
	// sysfs reports percent directly; express it against a full charge of
	// 100 so the session's percentage math holds.
	return native.BatteryReport{
		Status:                   status,
		FullChargeMilliwattHours: 100,
		RemainingMilliwattHours:  int32(capacity),
	}, nil
}

// Mapped always reports absent: joydev exposes no semantic gamepad
// mapping, so force feedback is unsupported through this backend.
func (c *Controller) Mapped() (native.MappedGamepad, bool) { return nil, false }

func (c *Controller) ForceFeedbackMotorCount() (int, error) { return 0, nil }

func (c *Controller) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		unix.Close(c.fd)
		c.closed = true
	}
}

// normalizeAxis maps the kernel's [-32767, 32767] axis range onto [0, 1].
func normalizeAxis(v int16) float64 {
	return (float64(v) + 32767) / 65534
}

func batteryStatus(s string) (native.BatteryStatus, error) {
	switch s {
	case "Full", "Not charging":
		return native.BatteryIdle, nil
	case "Charging":
		return native.BatteryCharging, nil
	case "Discharging":
		return native.BatteryDischarging, nil
	default:
		return 0, fmt.Errorf("unrecognised battery status %q", s)
	}
}

func ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

func isWouldBlock(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK)
}

func readHexID(path string) uint16 {
	s := strings.TrimPrefix(readTrimmed(path), "0x")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0
	}
	return uint16(v)
}

func readTrimmed(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func clen(b []byte) int {
	for i, c := range b {
		if c == 0 {
			return i
		}
	}
	return len(b)
}

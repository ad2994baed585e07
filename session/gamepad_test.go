package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padcore/padcore/event"
	th "github.com/padcore/padcore/internal/testing"
	"github.com/padcore/padcore/native"
)

func TestFingerprintDeterminism(t *testing.T) {
	a := fingerprint(false, 0x045e, 0x028e)
	b := fingerprint(false, 0x045e, 0x028e)
	assert.Equal(t, a, b, "fingerprint must be byte-identical across constructions")
}

func TestFingerprintLayout(t *testing.T) {
	tests := []struct {
		name     string
		wireless bool
		vendor   uint16
		product  uint16
		want     GUID
	}{
		{
			name:    "wired xbox pad",
			vendor:  0x045e,
			product: 0x028e,
			want: GUID{
				0x03, 0x00, 0x00, 0x00, // usb bus, little-endian
				0x5e, 0x04, 0x00, 0x00, // vendor, little-endian
				0x8e, 0x02, 0x00, 0x00, // product, little-endian
				0x00, 0x00, 0x00, 0x00, // version 0
			},
		},
		{
			name:     "bluetooth dualshock",
			wireless: true,
			vendor:   0x054c,
			product:  0x05c4,
			want: GUID{
				0x05, 0x00, 0x00, 0x00,
				0x4c, 0x05, 0x00, 0x00,
				0xc4, 0x05, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x00,
			},
		},
		{
			name: "zero ids",
			want: GUID{0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fingerprint(tt.wireless, tt.vendor, tt.product)
			assert.Equal(t, tt.want, got, "layout must byte-match the mapping-database convention")
		})
	}
}

func TestNewGamepadCodes(t *testing.T) {
	ctrl := th.NewFakeController("dev-1", 4, 10, 1)
	g := newGamepad(0, ctrl)

	require.Len(t, g.Buttons(), 10)
	require.Len(t, g.Axes(), 4)
	assert.Equal(t, event.Code{Kind: event.KindButton, Index: 0}, g.Buttons()[0])
	assert.Equal(t, event.Code{Kind: event.KindButton, Index: 9}, g.Buttons()[9])
	assert.Equal(t, event.Code{Kind: event.KindAxis, Index: 3}, g.Axes()[3])
	assert.True(t, g.IsConnected())
}

func TestNewGamepadNameFallback(t *testing.T) {
	ctrl := th.NewFakeController("dev-1", 1, 1, 0)
	ctrl.NameErr = errors.New("query failed")
	g := newGamepad(0, ctrl)
	assert.Equal(t, "unknown", g.Name())
}

func TestAxisInfo(t *testing.T) {
	ctrl := th.NewFakeController("dev-1", 2, 1, 0)
	g := newGamepad(0, ctrl)

	info, ok := g.AxisInfo(event.Code{Kind: event.KindAxis, Index: 1})
	require.True(t, ok)
	assert.Equal(t, int32(-32768), info.Min)
	assert.Equal(t, int32(32767), info.Max)
	assert.Nil(t, info.Deadzone, "deadzone is left to the mapping layer")

	_, ok = g.AxisInfo(event.Code{Kind: event.KindButton, Index: 0})
	assert.False(t, ok)
	_, ok = g.AxisInfo(event.Code{Kind: event.KindAxis, Index: 2})
	assert.False(t, ok)
}

func TestPowerStatus(t *testing.T) {
	tests := []struct {
		name     string
		wireless bool
		report   native.BatteryReport
		err      error
		want     PowerStatus
	}{
		{
			name: "wired",
			want: PowerStatus{State: PowerWired},
		},
		{
			name:     "discharging",
			wireless: true,
			report: native.BatteryReport{
				Status:                   native.BatteryDischarging,
				FullChargeMilliwattHours: 8000,
				RemainingMilliwattHours:  2000,
			},
			want: PowerStatus{State: PowerDischarging, Percent: 25},
		},
		{
			name:     "charging",
			wireless: true,
			report: native.BatteryReport{
				Status:                   native.BatteryCharging,
				FullChargeMilliwattHours: 8000,
				RemainingMilliwattHours:  6000,
			},
			want: PowerStatus{State: PowerCharging, Percent: 75},
		},
		{
			name:     "charging at full reports charged",
			wireless: true,
			report: native.BatteryReport{
				Status:                   native.BatteryCharging,
				FullChargeMilliwattHours: 8000,
				RemainingMilliwattHours:  8000,
			},
			want: PowerStatus{State: PowerCharged},
		},
		{
			name:     "idle reports charged",
			wireless: true,
			report:   native.BatteryReport{Status: native.BatteryIdle},
			want:     PowerStatus{State: PowerCharged},
		},
		{
			name:     "battery not present reports wired",
			wireless: true,
			report:   native.BatteryReport{Status: native.BatteryNotPresent},
			want:     PowerStatus{State: PowerWired},
		},
		{
			name:     "query failure collapses to unknown",
			wireless: true,
			err:      errors.New("battery query failed"),
			want:     PowerStatus{State: PowerUnknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := th.NewFakeController("dev-1", 1, 1, 0)
			ctrl.Wireless = tt.wireless
			ctrl.BatteryRep = tt.report
			ctrl.BatteryErr = tt.err
			g := newGamepad(0, ctrl)
			assert.Equal(t, tt.want, g.PowerStatus())
		})
	}
}

func TestFFSupported(t *testing.T) {
	tests := []struct {
		name   string
		mapped native.MappedGamepad
		motors int
		err    error
		want   bool
	}{
		{"mapped with motors", &th.FakeMapped{}, 2, nil, true},
		{"mapped without motors", &th.FakeMapped{}, 0, nil, false},
		{"mapped but motor query fails", &th.FakeMapped{}, 2, errors.New("nope"), false},
		{"unmapped", nil, 2, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := th.NewFakeController("dev-1", 1, 1, 0)
			ctrl.MappedHandle = tt.mapped
			ctrl.Motors = tt.motors
			ctrl.MotorsErr = tt.err
			g := newGamepad(0, ctrl)
			assert.Equal(t, tt.want, g.FFSupported())

			_, hasFF := g.FFDevice()
			assert.Equal(t, tt.mapped != nil, hasFF)
		})
	}
}

func TestPowerStatusString(t *testing.T) {
	assert.Equal(t, "Wired", PowerStatus{State: PowerWired}.String())
	assert.Equal(t, "Discharging(25%)", PowerStatus{State: PowerDischarging, Percent: 25}.String())
	assert.Equal(t, "Charging(75%)", PowerStatus{State: PowerCharging, Percent: 75}.String())
	assert.Equal(t, "Unknown", PowerStatus{}.String())
}

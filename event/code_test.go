package event_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/padcore/padcore/event"
)

func TestCodeBitsRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		code event.Code
		bits uint32
	}{
		{"first button", event.Code{Kind: event.KindButton, Index: 0}, 0x0000_0000},
		{"second button", event.Code{Kind: event.KindButton, Index: 1}, 0x0000_0001},
		{"first axis", event.Code{Kind: event.KindAxis, Index: 0}, 0x0001_0000},
		{"axis with high index", event.Code{Kind: event.KindAxis, Index: 513}, 0x0001_0201},
		{"switch", event.Code{Kind: event.KindSwitch, Index: 2}, 0x0002_0002},
		{"max index", event.Code{Kind: event.KindButton, Index: 65535}, 0x0000_ffff},
		{"max index axis", event.Code{Kind: event.KindAxis, Index: 65535}, 0x0001_ffff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.bits, tt.code.Bits(), "packed form must be bit-for-bit stable")
			assert.Equal(t, tt.code, event.CodeFromBits(tt.code.Bits()), "unpacking must recover the code exactly")
		})
	}
}

func TestCodeOrdering(t *testing.T) {
	button9 := event.Code{Kind: event.KindButton, Index: 9}
	axis0 := event.Code{Kind: event.KindAxis, Index: 0}
	axis1 := event.Code{Kind: event.KindAxis, Index: 1}

	assert.True(t, button9.Less(axis0), "buttons order before axes regardless of index")
	assert.True(t, axis0.Less(axis1))
	assert.False(t, axis1.Less(axis0))
	assert.False(t, axis0.Less(axis0))
}

func TestCodeString(t *testing.T) {
	assert.Equal(t, "Button(3)", event.Code{Kind: event.KindButton, Index: 3}.String())
	assert.Equal(t, "Axis(11)", event.Code{Kind: event.KindAxis, Index: 11}.String())
	assert.Equal(t, "Switch(0)", event.Code{Kind: event.KindSwitch, Index: 0}.String())
}

func TestEventTypeStrings(t *testing.T) {
	code := event.Code{Kind: event.KindButton, Index: 4}
	assert.Equal(t, "Connected", event.Connected{}.String())
	assert.Equal(t, "Disconnected", event.Disconnected{}.String())
	assert.Equal(t, "ButtonPressed(Button(4))", event.ButtonPressed{Code: code}.String())
	assert.Equal(t, "ButtonReleased(Button(4))", event.ButtonReleased{Code: code}.String())
	assert.Equal(t, "AxisValueChanged(-32768, Axis(1))",
		event.AxisValueChanged{Value: -32768, Code: event.Code{Kind: event.KindAxis, Index: 1}}.String())
}

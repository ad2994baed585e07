package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padcore/padcore/event"
	"github.com/padcore/padcore/native"
)

func TestDiffButtons(t *testing.T) {
	tests := []struct {
		name string
		prev []bool
		cur  []bool
		want []event.Type
	}{
		{
			name: "press first of two",
			prev: []bool{false, true},
			cur:  []bool{true, true},
			want: []event.Type{event.ButtonPressed{Code: event.Code{Kind: event.KindButton, Index: 0}}},
		},
		{
			name: "release single",
			prev: []bool{true},
			cur:  []bool{false},
			want: []event.Type{event.ButtonReleased{Code: event.Code{Kind: event.KindButton, Index: 0}}},
		},
		{
			name: "no change",
			prev: []bool{true, false},
			cur:  []bool{true, false},
			want: nil,
		},
		{
			name: "both change",
			prev: []bool{false, true},
			cur:  []bool{true, false},
			want: []event.Type{
				event.ButtonPressed{Code: event.Code{Kind: event.KindButton, Index: 0}},
				event.ButtonReleased{Code: event.Code{Kind: event.KindButton, Index: 1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := &reading{buttons: tt.prev, time: 1}
			cur := &reading{buttons: tt.cur, time: 2}
			assert.Equal(t, tt.want, diff(prev, cur))
		})
	}
}

func TestDiffAxesCompleteness(t *testing.T) {
	prev := &reading{axes: []float64{0.5, 0.25, 0.5, 1.0}, time: 1}
	cur := &reading{axes: []float64{0.5, 0.75, 0.5, 0.0}, time: 2}

	got := diff(prev, cur)
	require.Len(t, got, 2, "exactly one event per changed axis")

	first, ok := got[0].(event.AxisValueChanged)
	require.True(t, ok)
	assert.Equal(t, event.Code{Kind: event.KindAxis, Index: 1}, first.Code)

	second, ok := got[1].(event.AxisValueChanged)
	require.True(t, ok)
	assert.Equal(t, event.Code{Kind: event.KindAxis, Index: 3}, second.Code)
}

func TestDiffAxisValueRemap(t *testing.T) {
	tests := []struct {
		name string
		raw  float64
		want int32
	}{
		{"full positive", 1.0, 65535},
		{"full negative", 0.0, -65535},
		{"center", 0.5, 0},
		{"quarter", 0.25, -32768},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := &reading{axes: []float64{0.123}, time: 1}
			cur := &reading{axes: []float64{tt.raw}, time: 2}
			got := diff(prev, cur)
			require.Len(t, got, 1)
			changed, ok := got[0].(event.AxisValueChanged)
			require.True(t, ok)
			assert.Equal(t, tt.want, changed.Value)
		})
	}
}

func TestDiffAxesBeforeButtons(t *testing.T) {
	prev := &reading{axes: []float64{0.5}, buttons: []bool{false}, time: 1}
	cur := &reading{axes: []float64{1.0}, buttons: []bool{true}, time: 2}

	got := diff(prev, cur)
	require.Len(t, got, 2)
	assert.IsType(t, event.AxisValueChanged{}, got[0])
	assert.IsType(t, event.ButtonPressed{}, got[1])
}

func TestDiffIgnoresSwitches(t *testing.T) {
	prev := &reading{switches: []native.SwitchPosition{native.SwitchCenter}, time: 1}
	cur := &reading{switches: []native.SwitchPosition{native.SwitchUp}, time: 2}
	assert.Empty(t, diff(prev, cur), "switch position changes are not surfaced as events")
}

func TestDiffExactComparison(t *testing.T) {
	// Equality is exact, not threshold based: even a tiny delta emits.
	prev := &reading{axes: []float64{0.5}, time: 1}
	cur := &reading{axes: []float64{0.5000001}, time: 2}
	assert.Len(t, diff(prev, cur), 1)
}

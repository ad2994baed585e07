package session

import (
	"math"

	"github.com/padcore/padcore/event"
	"github.com/padcore/padcore/native"
)

// axisScale is the maximum magnitude of the public integer axis range. Raw
// [0, 1] samples are remapped to a signed full-range value centered at the
// midpoint.
const axisScale = math.MaxUint16

// reading is one timestamped capture of every axis, button and switch value
// of a controller. Slice lengths are fixed for the lifetime of the
// controller handle, so two readings of the same controller always have
// matching shapes.
type reading struct {
	axes     []float64
	buttons  []bool
	switches []native.SwitchPosition
	time     uint64
}

func newReading(ctrl native.Controller) (*reading, error) {
	r := &reading{
		axes:     make([]float64, ctrl.AxisCount()),
		buttons:  make([]bool, ctrl.ButtonCount()),
		switches: make([]native.SwitchPosition, ctrl.SwitchCount()),
	}
	if err := r.update(ctrl); err != nil {
		return nil, err
	}
	return r, nil
}

// update recaptures the sample in place, reusing the existing buffers.
func (r *reading) update(ctrl native.Controller) error {
	t, err := ctrl.Reading(r.buttons, r.switches, r.axes)
	if err != nil {
		return err
	}
	r.time = t
	return nil
}

func (r *reading) clone() *reading {
	return &reading{
		axes:     append([]float64(nil), r.axes...),
		buttons:  append([]bool(nil), r.buttons...),
		switches: append([]native.SwitchPosition(nil), r.switches...),
		time:     r.time,
	}
}

// diff lists the discrete transitions from prev to cur, axes before
// buttons. Axis comparison is exact, not threshold based. The caller is
// responsible for skipping the diff entirely when both readings carry the
// same sample timestamp.
func diff(prev, cur *reading) []event.Type {
	var changed []event.Type
	for i := range cur.axes {
		if prev.axes[i] != cur.axes[i] {
			value := int32(math.Round((cur.axes[i] - 0.5) * 2 * axisScale))
			changed = append(changed, event.AxisValueChanged{
				Value: value,
				Code:  event.Code{Kind: event.KindAxis, Index: uint16(i)},
			})
		}
	}
	for i := range cur.buttons {
		if prev.buttons[i] != cur.buttons[i] {
			code := event.Code{Kind: event.KindButton, Index: uint16(i)}
			if cur.buttons[i] {
				changed = append(changed, event.ButtonPressed{Code: code})
			} else {
				changed = append(changed, event.ButtonReleased{Code: code})
			}
		}
	}
	// Switch position changes are not surfaced as events yet.
	return changed
}

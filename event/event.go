// Package event defines the public event stream types of padcore: the
// resolved Event carried to consumers, its payload variants, and the packed
// Code identifying individual axes and buttons.
package event

import (
	"fmt"
	"time"
)

// Event is one resolved state transition of a single controller.
type Event struct {
	// ID is the session-local device id assigned by the Session. It is
	// stable for the lifetime of the process and survives reconnects.
	ID int
	// Type is the payload describing what changed.
	Type Type
	// Time is when the transition was observed.
	Time time.Time
}

func (e Event) String() string {
	return fmt.Sprintf("device %d: %s", e.ID, e.Type)
}

// Type is the payload of an Event. The concrete types are Connected,
// Disconnected, ButtonPressed, ButtonReleased and AxisValueChanged.
// Switch-position changes are deliberately not surfaced yet.
type Type interface {
	fmt.Stringer
	isEventType()
}

// Connected reports that a controller was attached or re-attached.
type Connected struct{}

// Disconnected reports that a controller was detached.
type Disconnected struct{}

// ButtonPressed reports a button transition to pressed.
type ButtonPressed struct {
	Code Code
}

// ButtonReleased reports a button transition to released.
type ButtonReleased struct {
	Code Code
}

// AxisValueChanged reports a new axis value, remapped to the full signed
// 16-bit range centered at the axis midpoint.
type AxisValueChanged struct {
	Value int32
	Code  Code
}

func (Connected) isEventType()        {}
func (Disconnected) isEventType()     {}
func (ButtonPressed) isEventType()    {}
func (ButtonReleased) isEventType()   {}
func (AxisValueChanged) isEventType() {}

func (Connected) String() string    { return "Connected" }
func (Disconnected) String() string { return "Disconnected" }

func (t ButtonPressed) String() string {
	return fmt.Sprintf("ButtonPressed(%s)", t.Code)
}

func (t ButtonReleased) String() string {
	return fmt.Sprintf("ButtonReleased(%s)", t.Code)
}

func (t AxisValueChanged) String() string {
	return fmt.Sprintf("AxisValueChanged(%d, %s)", t.Value, t.Code)
}

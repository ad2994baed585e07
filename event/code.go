package event

import "fmt"

// Kind discriminates what a Code refers to on a controller.
type Kind uint16

const (
	KindButton Kind = iota
	KindAxis
	KindSwitch
)

func (k Kind) String() string {
	switch k {
	case KindButton:
		return "Button"
	case KindAxis:
		return "Axis"
	case KindSwitch:
		return "Switch"
	default:
		return fmt.Sprintf("Kind(%d)", uint16(k))
	}
}

// Code identifies a single axis, button or switch of a controller as a
// (kind, zero-based index) pair. Codes are comparable; two Codes are equal
// iff both kind and index match, and they order lexicographically by
// (kind, index).
type Code struct {
	Kind  Kind
	Index uint16
}

// Bits packs the code into its stable 32-bit wire form: the high 16 bits
// carry the kind discriminant, the low 16 bits the index. Consumers rely on
// this exact packing for displayable, comparable codes, so it must not
// change.
func (c Code) Bits() uint32 {
	return uint32(c.Kind)<<16 | uint32(c.Index)
}

// CodeFromBits is the inverse of Bits.
func CodeFromBits(bits uint32) Code {
	return Code{
		Kind:  Kind(bits >> 16),
		Index: uint16(bits & 0xffff),
	}
}

// Less reports whether c orders before other under (kind, index) ordering.
func (c Code) Less(other Code) bool {
	if c.Kind != other.Kind {
		return c.Kind < other.Kind
	}
	return c.Index < other.Index
}

func (c Code) String() string {
	return fmt.Sprintf("%s(%d)", c.Kind, c.Index)
}

// SPDX-License-Identifier: Unlicense OR MIT

// Package event contains the types shared by event sources
// and event handlers.
package event

import "strings"

// Event is the marker interface for hardware and synthetic
// events accepted by an input flow.
type Event interface {
	ImplementsEvent()
}

// Kind is the kind of a notification delivered to element
// callbacks. Kinds are bit flags so that a set of kinds can be
// matched at once.
type Kind uint32

const (
	// Cancel is delivered when the current gesture is
	// interrupted by the system.
	Cancel Kind = 1 << iota
	// Press of a pointer button.
	Press
	// Release of a pointer button.
	Release
	// Motion of a pointer with no button pressed.
	Motion
	// Drag is motion of a pointer while a button is pressed.
	Drag
	// Enter is delivered when the pointer enters an element.
	Enter
	// Leave is delivered when the pointer leaves an element.
	Leave
	// Action is a press followed by a release on the same element.
	Action
	// Scroll of a pointer.
	Scroll
	// KeyPress of a keyboard key.
	KeyPress
	// KeyRelease of a keyboard key.
	KeyRelease
	// FocusIn is delivered when an element gains the keyboard focus.
	FocusIn
	// FocusOut is delivered when an element loses the keyboard focus.
	FocusOut
)

const (
	// Pointer is the set of kinds caused by pointer buttons and motion.
	Pointer = Press | Release | Motion | Drag | Action | Scroll
	// Crossing is the set of enter and leave kinds.
	Crossing = Enter | Leave
	// Key is the set of keyboard kinds.
	Key = KeyPress | KeyRelease
	// Focus is the set of focus kinds.
	Focus = FocusIn | FocusOut
)

// Contain reports whether k contains all the kinds in k2.
func (k Kind) Contain(k2 Kind) bool {
	return k&k2 == k2
}

func (k Kind) String() string {
	if k == 0 {
		return "None"
	}
	var buf strings.Builder
	for kk := Kind(1); kk > 0 && kk <= FocusOut; kk <<= 1 {
		if k&kk == 0 {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte('|')
		}
		buf.WriteString(kk.string())
	}
	return buf.String()
}

func (k Kind) string() string {
	switch k {
	case Cancel:
		return "Cancel"
	case Press:
		return "Press"
	case Release:
		return "Release"
	case Motion:
		return "Motion"
	case Drag:
		return "Drag"
	case Enter:
		return "Enter"
	case Leave:
		return "Leave"
	case Action:
		return "Action"
	case Scroll:
		return "Scroll"
	case KeyPress:
		return "KeyPress"
	case KeyRelease:
		return "KeyRelease"
	case FocusIn:
		return "FocusIn"
	case FocusOut:
		return "FocusOut"
	default:
		panic("unknown Kind")
	}
}

// ParseKind returns the single kind named s, as returned by
// Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k := Kind(1); k <= FocusOut; k <<= 1 {
		if strings.EqualFold(k.string(), s) {
			return k, true
		}
	}
	return 0, false
}

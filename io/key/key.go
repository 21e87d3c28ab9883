// SPDX-License-Identifier: Unlicense OR MIT

// Package key implements key events and the focus event.
package key

import (
	"fmt"
	"strings"
)

// A FocusEvent is generated when an element gains or loses
// the keyboard focus of a flow.
type FocusEvent struct {
	Focus bool
}

// An Event is generated when a key is pressed or released.
type Event struct {
	// Name of the key.
	Name Name
	// Modifiers is the set of active modifiers when the key was pressed.
	Modifiers Modifiers
	// State is the state of the key when the event was fired.
	State State
}

// State is the state of a key during an event.
type State uint8

const (
	// Press is the state of a pressed key.
	Press State = iota
	// Release is the state of a key that has been released.
	Release
)

// Modifiers
type Modifiers uint32

const (
	// ModCtrl is the ctrl modifier key.
	ModCtrl Modifiers = 1 << iota
	// ModCommand is the command modifier key
	// found on Apple keyboards.
	ModCommand
	// ModShift is the shift modifier key.
	ModShift
	// ModAlt is the alt modifier key, or the option
	// key on Apple keyboards.
	ModAlt
	// ModSuper is the "logo" modifier key, often
	// represented by a Windows logo.
	ModSuper
)

// Name is the identifier for a keyboard key.
//
// For letters, the upper case form is used.
type Name string

const (
	// Names for special keys.
	NameLeftArrow      Name = "←"
	NameRightArrow     Name = "→"
	NameUpArrow        Name = "↑"
	NameDownArrow      Name = "↓"
	NameReturn         Name = "⏎"
	NameEnter          Name = "⌤"
	NameEscape         Name = "⎋"
	NameHome           Name = "⇱"
	NameEnd            Name = "⇲"
	NameDeleteBackward Name = "⌫"
	NameDeleteForward  Name = "⌦"
	NameTab            Name = "Tab"
	NameSpace          Name = "Space"
	NameCtrl           Name = "Ctrl"
	NameShift          Name = "Shift"
	NameAlt            Name = "Alt"
	NameSuper          Name = "Super"
	NameCommand        Name = "⌘"
	NameF1             Name = "F1"
	NameF10            Name = "F10"
)

// aliases maps spelled out key names to their Name.
var aliases = map[string]Name{
	"left":      NameLeftArrow,
	"right":     NameRightArrow,
	"up":        NameUpArrow,
	"down":      NameDownArrow,
	"return":    NameReturn,
	"enter":     NameEnter,
	"escape":    NameEscape,
	"esc":       NameEscape,
	"home":      NameHome,
	"end":       NameEnd,
	"backspace": NameDeleteBackward,
	"delete":    NameDeleteForward,
	"tab":       NameTab,
	"space":     NameSpace,
}

// Contain reports whether m contains all modifiers
// in m2.
func (m Modifiers) Contain(m2 Modifiers) bool {
	return m&m2 == m2
}

// ParseChord parses a key chord such as "Ctrl-Shift-S" or "Escape"
// into a key name and its required modifiers.
func ParseChord(s string) (Name, Modifiers, error) {
	parts := strings.Split(s, "-")
	// A trailing "-" names the minus key.
	if strings.HasSuffix(s, "--") || s == "-" {
		parts = append(parts[:len(parts)-2], "-")
	}
	var mods Modifiers
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(p) {
		case "ctrl":
			mods |= ModCtrl
		case "cmd", "command", string(NameCommand):
			mods |= ModCommand
		case "shift":
			mods |= ModShift
		case "alt":
			mods |= ModAlt
		case "super":
			mods |= ModSuper
		default:
			return "", 0, fmt.Errorf("key: unknown modifier %q in %q", p, s)
		}
	}
	last := parts[len(parts)-1]
	if last == "" {
		return "", 0, fmt.Errorf("key: missing key name in %q", s)
	}
	if n, ok := aliases[strings.ToLower(last)]; ok {
		return n, mods, nil
	}
	return Name(strings.ToUpper(last)), mods, nil
}

func (Event) ImplementsEvent()      {}
func (FocusEvent) ImplementsEvent() {}

func (m Modifiers) String() string {
	var strs []string
	if m.Contain(ModCtrl) {
		strs = append(strs, string(NameCtrl))
	}
	if m.Contain(ModCommand) {
		strs = append(strs, string(NameCommand))
	}
	if m.Contain(ModShift) {
		strs = append(strs, string(NameShift))
	}
	if m.Contain(ModAlt) {
		strs = append(strs, string(NameAlt))
	}
	if m.Contain(ModSuper) {
		strs = append(strs, string(NameSuper))
	}
	return strings.Join(strs, "-")
}

func (s State) String() string {
	switch s {
	case Press:
		return "Press"
	case Release:
		return "Release"
	default:
		panic("invalid State")
	}
}

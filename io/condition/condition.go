// SPDX-License-Identifier: Unlicense OR MIT

/*
Package condition implements the predicates that decide whether an
element callback fires for a notification.

A Condition is evaluated against a Context describing the
notification being dispatched and the element being considered.
Conditions are queries: evaluating one has no side effects. The
predefined conditions such as Press or Action are shared by the
whole program and are never mutated.

Conditions compare by identity unless they say otherwise. Button,
Modifiers and Key conditions compare by value, so two registrations
of OnKey("S", key.ModCtrl) are the same trigger.
*/
package condition

import (
	"github.com/google/uuid"

	"github.com/chebizarro/ubit-sub003/f32"
	"github.com/chebizarro/ubit-sub003/io/event"
	"github.com/chebizarro/ubit-sub003/io/key"
	"github.com/chebizarro/ubit-sub003/io/pointer"
	"github.com/chebizarro/ubit-sub003/io/view"
)

// Condition is a predicate over a dispatch Context and an element.
type Condition interface {
	// Matches returns the canonical condition for other if the
	// receiver and other are the same trigger, or nil.
	Matches(other Condition) Condition
	// Verifies reports whether the condition holds for element e.
	Verifies(ctx *Context, e view.Handle) bool
	// SetParentModes declares on owner the capabilities it needs
	// for the condition to ever hold.
	SetParentModes(sink view.CapabilitySink, owner view.Handle)
}

// Context describes the notification being dispatched.
type Context struct {
	// Kind is the single kind of the notification.
	Kind event.Kind
	// Flow identifies the input flow dispatching the notification.
	Flow uuid.UUID
	// Source is the element the notification targets: the deepest
	// element of the pointer chain, the captured element, or the
	// focused element.
	Source view.Handle
	// Tree is the view tree the flow dispatches into.
	Tree view.Tree
	// Position is the pointer position in root coordinates.
	Position f32.Point
	// Scroll is the scroll amount of Scroll notifications.
	Scroll f32.Point
	// Buttons is the set of buttons that changed state for Press,
	// Release and Action, and the set of held buttons otherwise.
	Buttons pointer.Buttons
	// Modifiers is the set of active key modifiers.
	Modifiers key.Modifiers
	// Key is the key name for key notifications.
	Key key.Name
}

// On matches notifications by kind.
type On struct {
	kinds event.Kind
	name  string
}

// Button matches pointer notifications caused by specific buttons.
// Buttons compare by value.
type Button struct {
	kinds   event.Kind
	buttons pointer.Buttons
}

// Modifiers matches notifications while specific key modifiers are
// held. Modifiers compare by value.
type Modifiers struct {
	kinds event.Kind
	mods  key.Modifiers
}

// Key matches the press of a key chord. Keys compare by value.
type Key struct {
	name key.Name
	mods key.Modifiers
}

// Func adapts a predicate to a Condition.
type Func struct {
	kinds event.Kind
	f     func(ctx *Context, e view.Handle) bool
}

// The predefined conditions.
var (
	Cancel     = &On{kinds: event.Cancel, name: "Cancel"}
	Press      = &On{kinds: event.Press, name: "Press"}
	Release    = &On{kinds: event.Release, name: "Release"}
	Motion     = &On{kinds: event.Motion, name: "Motion"}
	Drag       = &On{kinds: event.Drag, name: "Drag"}
	Enter      = &On{kinds: event.Enter, name: "Enter"}
	Leave      = &On{kinds: event.Leave, name: "Leave"}
	Action     = &On{kinds: event.Action, name: "Action"}
	Scroll     = &On{kinds: event.Scroll, name: "Scroll"}
	KeyPress   = &On{kinds: event.KeyPress, name: "KeyPress"}
	KeyRelease = &On{kinds: event.KeyRelease, name: "KeyRelease"}
	FocusIn    = &On{kinds: event.FocusIn, name: "FocusIn"}
	FocusOut   = &On{kinds: event.FocusOut, name: "FocusOut"}
	// AnyPointer matches every pointer button and motion notification.
	AnyPointer = &On{kinds: event.Pointer, name: "AnyPointer"}
)

var predefined = []*On{
	Cancel, Press, Release, Motion, Drag, Enter, Leave, Action,
	Scroll, KeyPress, KeyRelease, FocusIn, FocusOut, AnyPointer,
}

// Lookup returns the predefined condition with the given name.
func Lookup(name string) (*On, bool) {
	for _, c := range predefined {
		if c.name == name {
			return c, true
		}
	}
	return nil, false
}

// Same returns c if c and other are the same instance, or nil. It is
// the default Matches behaviour.
func Same(c, other Condition) Condition {
	if c == other {
		return c
	}
	return nil
}

// CapabilityFor returns the capabilities an element needs to receive
// notifications of the given kinds.
func CapabilityFor(kinds event.Kind) view.Capability {
	var c view.Capability
	if kinds&(event.Press|event.Release|event.Action) != 0 {
		c |= view.CapButton
	}
	if kinds&(event.Motion|event.Drag) != 0 {
		c |= view.CapMotion
	}
	if kinds&event.Crossing != 0 {
		c |= view.CapCrossing
	}
	if kinds&event.Scroll != 0 {
		c |= view.CapScroll
	}
	if kinds&event.Key != 0 {
		c |= view.CapKey
	}
	if kinds&event.Focus != 0 {
		c |= view.CapFocus
	}
	return c
}

// NewOn returns a condition matching any of kinds. Every call returns
// a distinct trigger.
func NewOn(kinds event.Kind) *On {
	return &On{kinds: kinds, name: kinds.String()}
}

// Kinds returns the kinds c matches.
func (c *On) Kinds() event.Kind { return c.kinds }

func (c *On) Matches(other Condition) Condition {
	return Same(c, other)
}

func (c *On) Verifies(ctx *Context, e view.Handle) bool {
	return ctx.Kind&c.kinds != 0
}

func (c *On) SetParentModes(sink view.CapabilitySink, owner view.Handle) {
	sink.SetCapability(owner, CapabilityFor(c.kinds))
}

func (c *On) String() string { return c.name }

// OnButton returns a condition matching notifications of the given
// kinds caused by all of buttons.
func OnButton(kinds event.Kind, buttons pointer.Buttons) *Button {
	return &Button{kinds: kinds, buttons: buttons}
}

func (c *Button) Matches(other Condition) Condition {
	if o, ok := other.(*Button); ok && o != nil && *o == *c {
		return c
	}
	return nil
}

func (c *Button) Verifies(ctx *Context, e view.Handle) bool {
	return ctx.Kind&c.kinds != 0 && ctx.Buttons.Contain(c.buttons)
}

func (c *Button) SetParentModes(sink view.CapabilitySink, owner view.Handle) {
	sink.SetCapability(owner, CapabilityFor(c.kinds))
}

func (c *Button) String() string {
	return c.kinds.String() + "(" + c.buttons.String() + ")"
}

// WithModifiers returns a condition matching notifications of the
// given kinds while all of mods are held.
func WithModifiers(kinds event.Kind, mods key.Modifiers) *Modifiers {
	return &Modifiers{kinds: kinds, mods: mods}
}

func (c *Modifiers) Matches(other Condition) Condition {
	if o, ok := other.(*Modifiers); ok && o != nil && *o == *c {
		return c
	}
	return nil
}

func (c *Modifiers) Verifies(ctx *Context, e view.Handle) bool {
	return ctx.Kind&c.kinds != 0 && ctx.Modifiers.Contain(c.mods)
}

func (c *Modifiers) SetParentModes(sink view.CapabilitySink, owner view.Handle) {
	sink.SetCapability(owner, CapabilityFor(c.kinds))
}

func (c *Modifiers) String() string {
	return c.mods.String() + "+" + c.kinds.String()
}

// OnKey returns a condition matching presses of the named key with
// exactly mods held.
func OnKey(name key.Name, mods key.Modifiers) *Key {
	return &Key{name: name, mods: mods}
}

// ParseKey returns the Key condition for a chord such as "Ctrl-S".
func ParseKey(chord string) (*Key, error) {
	name, mods, err := key.ParseChord(chord)
	if err != nil {
		return nil, err
	}
	return OnKey(name, mods), nil
}

func (c *Key) Matches(other Condition) Condition {
	if o, ok := other.(*Key); ok && o != nil && *o == *c {
		return c
	}
	return nil
}

func (c *Key) Verifies(ctx *Context, e view.Handle) bool {
	return ctx.Kind == event.KeyPress && ctx.Key == c.name && ctx.Modifiers == c.mods
}

func (c *Key) SetParentModes(sink view.CapabilitySink, owner view.Handle) {
	sink.SetCapability(owner, view.CapKey)
}

func (c *Key) String() string {
	if c.mods == 0 {
		return string(c.name)
	}
	return c.mods.String() + "-" + string(c.name)
}

// NewFunc returns a condition that holds for notifications of the
// given kinds for which f returns true. f must not have side effects.
func NewFunc(kinds event.Kind, f func(ctx *Context, e view.Handle) bool) *Func {
	if f == nil {
		panic("condition: nil predicate")
	}
	return &Func{kinds: kinds, f: f}
}

func (c *Func) Matches(other Condition) Condition {
	return Same(c, other)
}

func (c *Func) Verifies(ctx *Context, e view.Handle) bool {
	return ctx.Kind&c.kinds != 0 && c.f(ctx, e)
}

func (c *Func) SetParentModes(sink view.CapabilitySink, owner view.Handle) {
	sink.SetCapability(owner, CapabilityFor(c.kinds))
}

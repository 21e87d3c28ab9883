// SPDX-License-Identifier: Unlicense OR MIT

package condition

import (
	"testing"

	"github.com/chebizarro/ubit-sub003/f32"
	"github.com/chebizarro/ubit-sub003/io/event"
	"github.com/chebizarro/ubit-sub003/io/pointer"
	"github.com/chebizarro/ubit-sub003/io/view"
)

// counting records how many times it was evaluated.
type counting struct {
	result bool
	calls  int
}

func (c *counting) Matches(other Condition) Condition { return Same(c, other) }
func (c *counting) Verifies(*Context, view.Handle) bool {
	c.calls++
	return c.result
}
func (c *counting) SetParentModes(view.CapabilitySink, view.Handle) {}

func TestMultiShortCircuits(t *testing.T) {
	first := &counting{result: false}
	second := &counting{result: true}
	third := &counting{result: true}
	m := NewMulti(first, second, third)
	if !m.Verifies(&Context{}, view.Handle{}) {
		t.Fatal("Multi with a true member does not verify")
	}
	if first.calls != 1 || second.calls != 1 || third.calls != 0 {
		t.Errorf("calls = %d, %d, %d; want 1, 1, 0", first.calls, second.calls, third.calls)
	}
	if NewMulti().Verifies(&Context{}, view.Handle{}) {
		t.Error("empty Multi verifies")
	}
}

func TestMultiMatchesInOrder(t *testing.T) {
	b1 := OnButton(event.Press, pointer.ButtonPrimary)
	b2 := OnButton(event.Press, pointer.ButtonPrimary)
	m := NewMulti(Release, b1, b2)
	probe := OnButton(event.Press, pointer.ButtonPrimary)
	if got := m.Matches(probe); got != b1 {
		t.Errorf("Matches returned %v, want the first equal member", got)
	}
	if got := m.Matches(Release); got != Release {
		t.Errorf("Matches(Release) = %v", got)
	}
	if got := m.Matches(m); got != m {
		t.Errorf("Multi does not match itself")
	}
	if got := m.Matches(Press); got != nil {
		t.Errorf("Matches(Press) = %v, want nil", got)
	}
}

func TestMultiAddRemove(t *testing.T) {
	m := NewMulti()
	if m.Add(Press).Add(Release).Add(Press) != m {
		t.Fatal("Add does not chain")
	}
	m.Remove(Press)
	got := m.Conditions()
	if len(got) != 2 || got[0] != Release || got[1] != Press {
		t.Errorf("after Remove: %v", m)
	}
	m.Remove(Action)
	if m.Len() != 2 {
		t.Errorf("removing an absent condition changed the set: %v", m)
	}
	// Remove is by identity, not by value.
	m.Add(OnButton(event.Press, pointer.ButtonPrimary))
	m.Remove(OnButton(event.Press, pointer.ButtonPrimary))
	if m.Len() != 3 {
		t.Errorf("Remove matched by value: %v", m)
	}
	if s := NewMulti(Press, Action).String(); s != "[Press,Action]" {
		t.Errorf("String() = %q", s)
	}
}

func TestMultiAddNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Add(nil) did not panic")
		}
	}()
	NewMulti().Add(nil)
}

func TestMultiAddDeclaresCapabilities(t *testing.T) {
	a := view.NewArena()
	h := a.Add(view.Handle{}, "h", f32.Rect(0, 0, 10, 10))
	m := NewMulti(Press)
	m.SetParentModes(a, h)
	if got := a.Capabilities(h); got != view.CapButton {
		t.Fatalf("capabilities = %v, want %v", got, view.CapButton)
	}
	m.Add(Enter)
	if got, want := a.Capabilities(h), view.CapButton|view.CapCrossing; got != want {
		t.Errorf("capabilities after Add = %v, want %v", got, want)
	}
}

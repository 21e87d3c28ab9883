// SPDX-License-Identifier: Unlicense OR MIT

package condition

import (
	"testing"

	"github.com/chebizarro/ubit-sub003/f32"
	"github.com/chebizarro/ubit-sub003/io/event"
	"github.com/chebizarro/ubit-sub003/io/key"
	"github.com/chebizarro/ubit-sub003/io/pointer"
	"github.com/chebizarro/ubit-sub003/io/view"
)

func TestOnVerifies(t *testing.T) {
	ctx := &Context{Kind: event.Press}
	if !Press.Verifies(ctx, view.Handle{}) {
		t.Error("Press does not verify a press")
	}
	if Release.Verifies(ctx, view.Handle{}) {
		t.Error("Release verifies a press")
	}
	if !AnyPointer.Verifies(ctx, view.Handle{}) {
		t.Error("AnyPointer does not verify a press")
	}
	if AnyPointer.Verifies(&Context{Kind: event.KeyPress}, view.Handle{}) {
		t.Error("AnyPointer verifies a key press")
	}
}

func TestIdentityMatches(t *testing.T) {
	if Press.Matches(Press) != Press {
		t.Error("Press does not match itself")
	}
	if Press.Matches(Release) != nil {
		t.Error("Press matches Release")
	}
	a, b := NewOn(event.Press), NewOn(event.Press)
	if a.Matches(b) != nil {
		t.Error("distinct On instances match")
	}
	f := NewFunc(event.Press, func(*Context, view.Handle) bool { return true })
	if f.Matches(f) != f || f.Matches(Press) != nil {
		t.Error("Func does not compare by identity")
	}
}

func TestValueMatches(t *testing.T) {
	b1 := OnButton(event.Press, pointer.ButtonPrimary)
	b2 := OnButton(event.Press, pointer.ButtonPrimary)
	b3 := OnButton(event.Press, pointer.ButtonSecondary)
	if b1.Matches(b2) != b1 {
		t.Error("equal Button conditions do not match")
	}
	if b1.Matches(b3) != nil {
		t.Error("different Button conditions match")
	}
	m1 := WithModifiers(event.Action, key.ModShift)
	m2 := WithModifiers(event.Action, key.ModShift)
	if m1.Matches(m2) != m1 || m1.Matches(b1) != nil {
		t.Error("Modifiers do not compare by value")
	}
	k1, err := ParseKey("Ctrl-S")
	if err != nil {
		t.Fatal(err)
	}
	if k2 := OnKey("S", key.ModCtrl); k1.Matches(k2) != k1 {
		t.Error("equal Key conditions do not match")
	}
	if _, err := ParseKey("Bogus-S"); err == nil {
		t.Error("ParseKey accepted an unknown modifier")
	}
}

func TestButtonAndKeyVerifies(t *testing.T) {
	right := OnButton(event.Press|event.Action, pointer.ButtonSecondary)
	if !right.Verifies(&Context{Kind: event.Action, Buttons: pointer.ButtonSecondary}, view.Handle{}) {
		t.Error("secondary action not verified")
	}
	if right.Verifies(&Context{Kind: event.Press, Buttons: pointer.ButtonPrimary}, view.Handle{}) {
		t.Error("primary press verified by secondary condition")
	}
	save := OnKey("S", key.ModCtrl)
	if !save.Verifies(&Context{Kind: event.KeyPress, Key: "S", Modifiers: key.ModCtrl}, view.Handle{}) {
		t.Error("Ctrl-S not verified")
	}
	if save.Verifies(&Context{Kind: event.KeyPress, Key: "S", Modifiers: key.ModCtrl | key.ModShift}, view.Handle{}) {
		t.Error("Ctrl-Shift-S verified as Ctrl-S")
	}
	if save.Verifies(&Context{Kind: event.KeyRelease, Key: "S", Modifiers: key.ModCtrl}, view.Handle{}) {
		t.Error("key release verified")
	}
}

func TestFuncUsesContext(t *testing.T) {
	a := view.NewArena()
	h := a.Add(view.Handle{}, "h", f32.Rect(0, 0, 10, 10))
	inLeftHalf := NewFunc(event.Press, func(ctx *Context, e view.Handle) bool {
		return ctx.Position.X < 5 && ctx.Tree.Alive(e)
	})
	if !inLeftHalf.Verifies(&Context{Kind: event.Press, Tree: a, Position: f32.Pt(2, 2)}, h) {
		t.Error("predicate not applied")
	}
	if inLeftHalf.Verifies(&Context{Kind: event.Press, Tree: a, Position: f32.Pt(7, 2)}, h) {
		t.Error("predicate ignored")
	}
}

func TestSetParentModes(t *testing.T) {
	a := view.NewArena()
	h := a.Add(view.Handle{}, "h", f32.Rect(0, 0, 10, 10))
	NewMulti(Enter, Drag, OnKey("A", 0)).SetParentModes(a, h)
	want := view.CapCrossing | view.CapMotion | view.CapKey
	if got := a.Capabilities(h); got != want {
		t.Errorf("capabilities = %v, want %v", got, want)
	}
}

func TestLookup(t *testing.T) {
	for _, c := range predefined {
		got, ok := Lookup(c.String())
		if !ok || got != c {
			t.Errorf("Lookup(%q) = %v, %v", c.String(), got, ok)
		}
	}
	if _, ok := Lookup("Nope"); ok {
		t.Error("Lookup found an unknown condition")
	}
}

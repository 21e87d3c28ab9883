// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"testing"

	"github.com/chebizarro/ubit-sub003/f32"
	"github.com/chebizarro/ubit-sub003/io/condition"
	"github.com/chebizarro/ubit-sub003/io/key"
	"github.com/chebizarro/ubit-sub003/io/pointer"
)

func TestRouterMultiPointer(t *testing.T) {
	s := newPanelScene(t)
	s.recordAll(condition.Press, "button", "other")
	s.recordAll(condition.Drag, "button", "other")
	r := NewRouter(s.arena, s.reg, s.timer, Config{Reporter: s.rep})

	r.Queue(
		pointer.Event{PointerID: 1, Kind: pointer.Press, Position: f32.Pt(20, 20), Buttons: pointer.ButtonPrimary},
		pointer.Event{PointerID: 2, Kind: pointer.Press, Position: f32.Pt(150, 150), Buttons: pointer.ButtonPrimary},
		// Each pointer keeps its own capture.
		pointer.Event{PointerID: 1, Kind: pointer.Move, Position: f32.Pt(150, 150), Buttons: pointer.ButtonPrimary},
		pointer.Event{PointerID: 2, Kind: pointer.Move, Position: f32.Pt(20, 20), Buttons: pointer.ButtonPrimary},
	)
	s.assertLog("Press button", "Press other", "Drag button", "Drag other")
	if n := len(r.Flows()); n != 2 {
		t.Fatalf("%d flows attached, want 2", n)
	}
	f1, _ := r.Flow(1)
	f2, _ := r.Flow(2)
	if p, _ := f1.Pressed(); p != s.el("button") {
		t.Error("flow 1 lost its capture")
	}
	if p, _ := f2.Pressed(); p != s.el("other") {
		t.Error("flow 2 lost its capture")
	}
}

func TestRouterKeyboard(t *testing.T) {
	s := newPanelScene(t)
	s.recordAll(condition.KeyPress, "button", "other")
	s.recordAll(condition.Cancel, "button")
	r := NewRouter(s.arena, s.reg, s.timer, Config{Reporter: s.rep})

	first := r.Attach(3)
	second := r.Attach(4)
	first.SetFocus(s.el("button"))
	second.SetFocus(s.el("other"))
	r.Queue(key.Event{Name: "A"})
	s.assertLog("KeyPress button")

	r.SetKeyboard(4)
	r.Queue(key.Event{Name: "A"})
	s.assertLog("KeyPress other")

	// Detaching the keyboard flow hands the keyboard to the oldest flow.
	r.Queue(pointer.Event{PointerID: 4, Kind: pointer.Press, Position: f32.Pt(20, 20), Buttons: pointer.ButtonPrimary})
	if !r.Detach(4) {
		t.Fatal("Detach of attached flow failed")
	}
	s.assertLog("Cancel button")
	if r.Detach(4) {
		t.Error("second Detach succeeded")
	}
	if kb, ok := r.Keyboard(); !ok || kb != first {
		t.Error("keyboard not moved to the remaining flow")
	}
	r.Queue(key.Event{Name: "A"})
	s.assertLog("KeyPress button")
}

func TestRouterKeyWithoutFlows(t *testing.T) {
	s := newPanelScene(t)
	r := NewRouter(s.arena, s.reg, s.timer, Config{Reporter: s.rep})
	r.Queue(key.Event{Name: "A"})
	if _, ok := r.Keyboard(); !ok {
		t.Error("key event did not attach a keyboard flow")
	}
}

// SPDX-License-Identifier: Unlicense OR MIT

package view

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/chebizarro/ubit-sub003/f32"
)

func names(a *Arena, hs []Handle) []string {
	var s []string
	for _, h := range hs {
		s = append(s, a.Name(h))
	}
	return s
}

func TestArenaHitTest(t *testing.T) {
	a := NewArena()
	root := a.Add(Handle{}, "root", f32.Rect(0, 0, 200, 200))
	panel := a.Add(root, "panel", f32.Rect(0, 0, 100, 100))
	button := a.Add(panel, "button", f32.Rect(10, 10, 50, 50))
	// Overlaps button and is added later, so it is on top.
	a.Add(panel, "overlay", f32.Rect(40, 40, 60, 60))

	tests := []struct {
		p    f32.Point
		want []string
	}{
		{f32.Pt(20, 20), []string{"root", "panel", "button"}},
		{f32.Pt(45, 45), []string{"root", "panel", "overlay"}},
		{f32.Pt(150, 150), []string{"root"}},
		{f32.Pt(300, 300), nil},
	}
	for _, tc := range tests {
		if diff := cmp.Diff(tc.want, names(a, a.HitTest(tc.p))); diff != "" {
			t.Errorf("HitTest(%v) mismatch (-want +got):\n%s", tc.p, diff)
		}
	}
	if diff := cmp.Diff([]string{"root", "panel", "button"}, names(a, a.Path(button))); diff != "" {
		t.Errorf("Path mismatch (-want +got):\n%s", diff)
	}
}

func TestArenaChildClippedByParent(t *testing.T) {
	a := NewArena()
	root := a.Add(Handle{}, "root", f32.Rect(0, 0, 10, 10))
	a.Add(root, "outside", f32.Rect(20, 20, 30, 30))
	if got := a.HitTest(f32.Pt(25, 25)); len(got) != 0 {
		t.Errorf("hit child outside its parent: %v", names(a, got))
	}
}

func TestArenaRemove(t *testing.T) {
	a := NewArena()
	root := a.Add(Handle{}, "root", f32.Rect(0, 0, 100, 100))
	panel := a.Add(root, "panel", f32.Rect(0, 0, 50, 50))
	button := a.Add(panel, "button", f32.Rect(0, 0, 10, 10))

	a.Remove(panel)
	if a.Alive(panel) || a.Alive(button) {
		t.Fatal("removed subtree still alive")
	}
	if !a.Alive(root) {
		t.Fatal("root died with its child")
	}
	if got := a.Path(button); got != nil {
		t.Errorf("Path of removed element = %v", got)
	}
	if a.IsDescendant(button, root) {
		t.Error("removed element is still a descendant")
	}
	// Reusing the slot must not revive stale handles.
	reused := a.Add(root, "new", f32.Rect(0, 0, 10, 10))
	if reused == panel || reused == button {
		t.Fatalf("stale handle equals new handle %v", reused)
	}
	if a.Alive(panel) || a.Alive(button) {
		t.Error("stale handle revived by slot reuse")
	}
	if diff := cmp.Diff([]string{"root", "new"}, names(a, a.HitTest(f32.Pt(5, 5)))); diff != "" {
		t.Errorf("HitTest after reuse (-want +got):\n%s", diff)
	}
	// Removing twice is harmless.
	a.Remove(panel)
}

func TestArenaRootsAndRaise(t *testing.T) {
	a := NewArena()
	win := a.Add(Handle{}, "window", f32.Rect(0, 0, 100, 100))
	menu := a.Add(Handle{}, "menu", f32.Rect(10, 10, 40, 40))
	item := a.Add(menu, "item", f32.Rect(10, 10, 40, 20))
	if diff := cmp.Diff([]string{"menu", "item"}, names(a, a.HitTest(f32.Pt(15, 15)))); diff != "" {
		t.Errorf("popup root not on top (-want +got):\n%s", diff)
	}
	a.Raise(win)
	if diff := cmp.Diff([]string{"window"}, names(a, a.HitTest(f32.Pt(15, 15)))); diff != "" {
		t.Errorf("Raise had no effect (-want +got):\n%s", diff)
	}
	if !a.IsDescendant(item, menu) || !a.IsDescendant(menu, menu) {
		t.Error("IsDescendant failed inside menu")
	}
	if a.IsDescendant(item, win) {
		t.Error("item reported inside window")
	}
}

func TestArenaCapabilities(t *testing.T) {
	a := NewArena()
	h := a.Add(Handle{}, "h", f32.Rect(0, 0, 1, 1))
	var sink CapabilitySink = a
	sink.SetCapability(h, CapButton)
	sink.SetCapability(h, CapMotion)
	if got := a.Capabilities(h); got != CapButton|CapMotion {
		t.Errorf("Capabilities = %v", got)
	}
	if s := (CapButton | CapKey).String(); s != "Button|Key" {
		t.Errorf("Capability.String() = %q", s)
	}
	a.Remove(h)
	if got := a.Capabilities(h); got != 0 {
		t.Errorf("dead handle has capabilities %v", got)
	}
}

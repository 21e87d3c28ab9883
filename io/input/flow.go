// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/chebizarro/ubit-sub003/f32"
	"github.com/chebizarro/ubit-sub003/io/condition"
	"github.com/chebizarro/ubit-sub003/io/event"
	"github.com/chebizarro/ubit-sub003/io/key"
	"github.com/chebizarro/ubit-sub003/io/pointer"
	"github.com/chebizarro/ubit-sub003/io/timer"
	"github.com/chebizarro/ubit-sub003/io/view"
)

// Config configures flows and their menu managers.
type Config struct {
	// OpenDelay and CloseDelay are the menu hover delays. Zero
	// values select DefaultOpenDelay and DefaultCloseDelay.
	OpenDelay  time.Duration
	CloseDelay time.Duration
	// Reporter receives dispatch warnings. A nil Reporter writes
	// to the standard logger.
	Reporter Reporter
}

// Delays returns the menu delays of c, substituting the defaults for
// zero values.
func (c Config) Delays() (openDelay, closeDelay time.Duration) {
	openDelay, closeDelay = c.OpenDelay, c.CloseDelay
	if openDelay == 0 {
		openDelay = DefaultOpenDelay
	}
	if closeDelay == 0 {
		closeDelay = DefaultCloseDelay
	}
	return openDelay, closeDelay
}

// Flow is the dispatch state of one input device.
//
// A Flow is Idle when the pointer is over no element, Hovering when
// it is over a chain of elements, and Pressing while a button press
// captures the pressed element. Element handles held by the flow are
// checked for liveness before every use, so the application may
// remove elements between events.
type Flow struct {
	id    uuid.UUID
	pid   pointer.ID
	tree  view.Tree
	reg   *Registry
	rep   Reporter
	menus *MenuManager

	pos     f32.Point
	buttons pointer.Buttons
	mods    key.Modifiers

	// entered is the chain under the pointer, root to leaf.
	entered []view.Handle
	// pressed is the element captured by the current press. It may
	// be dead if the element was removed during the press.
	pressed view.Handle
	// captured is the chain of pressed at press time.
	captured []view.Handle
	focus    view.Handle
}

// NewFlow returns an idle flow for the pointer pid dispatching into
// the elements of reg's tree.
func NewFlow(pid pointer.ID, tree view.Tree, reg *Registry, sched timer.Scheduler, cfg Config) *Flow {
	rep := cfg.Reporter
	if rep == nil {
		rep = LogReporter{}
	}
	menus := NewMenuManager(tree, sched, rep)
	menus.SetDelays(cfg.Delays())
	return &Flow{
		id:    uuid.New(),
		pid:   pid,
		tree:  tree,
		reg:   reg,
		rep:   rep,
		menus: menus,
	}
}

// ID returns the identity of the flow, unique across flows.
func (f *Flow) ID() uuid.UUID { return f.id }

// PointerID returns the pointer the flow tracks.
func (f *Flow) PointerID() pointer.ID { return f.pid }

// Menus returns the menu manager of the flow.
func (f *Flow) Menus() *MenuManager { return f.menus }

// Position returns the last pointer position.
func (f *Flow) Position() f32.Point { return f.pos }

// Buttons returns the buttons held at the last pointer event.
func (f *Flow) Buttons() pointer.Buttons { return f.buttons }

// Entered returns the chain of live elements under the pointer,
// from the root to the deepest element.
func (f *Flow) Entered() []view.Handle {
	return f.live(f.entered)
}

// Pressed returns the element captured by the current press. The
// returned handle may be dead; check it with the tree before use.
func (f *Flow) Pressed() (view.Handle, bool) {
	return f.pressed, f.pressed.Valid()
}

// Focus returns the keyboard focus, or the zero Handle.
func (f *Flow) Focus() view.Handle {
	if !f.tree.Alive(f.focus) {
		return view.Handle{}
	}
	return f.focus
}

// SetFocus moves the keyboard focus to h, notifying the old focus
// with FocusOut and h with FocusIn. The zero Handle clears the focus.
func (f *Flow) SetFocus(h view.Handle) {
	if h.Valid() && !f.tree.Alive(h) {
		f.rep.Warnf("input: focusing removed element %v", h)
		return
	}
	old := f.Focus()
	if old == h {
		return
	}
	f.focus = h
	if old.Valid() {
		f.deliverTo(event.FocusOut, old, old)
	}
	if h.Valid() && f.focus == h {
		f.deliverTo(event.FocusIn, h, h)
	}
}

// Push dispatches e to the elements of the tree. The dispatch runs to
// completion before Push returns. Supported events are pointer.Event,
// key.Event and key.FocusEvent.
func (f *Flow) Push(e event.Event) {
	f.menus.prune()
	f.entered = f.live(f.entered)
	if !f.tree.Alive(f.focus) {
		f.focus = view.Handle{}
	}
	switch e := e.(type) {
	case pointer.Event:
		f.pushPointer(e)
	case key.Event:
		f.pushKey(e)
	case key.FocusEvent:
		if h := f.Focus(); h.Valid() {
			k := event.FocusOut
			if e.Focus {
				k = event.FocusIn
			}
			f.deliverTo(k, h, h)
		}
	default:
		f.rep.Warnf("input: flow %v: unsupported event %T", f.id, e)
	}
}

// Close ends the current gesture, closes every menu and forgets the
// element state. The flow is idle afterwards and may be reused.
func (f *Flow) Close() {
	f.cancel()
	f.menus.CloseAllMenus(true)
	if h := f.Focus(); h.Valid() {
		f.focus = view.Handle{}
		f.deliverTo(event.FocusOut, h, h)
	}
}

func (f *Flow) pushPointer(e pointer.Event) {
	prev := f.buttons
	f.pos, f.buttons, f.mods = e.Position, e.Buttons, e.Modifiers
	switch e.Kind {
	case pointer.Cancel:
		f.cancel()
	case pointer.Move:
		if f.pressed.Valid() {
			f.deliverChain(event.Drag, f.pressed, f.captureChain(), e.Buttons, e.Scroll)
			return
		}
		chain := f.tree.HitTest(e.Position)
		f.updateHover(chain)
		if leaf, ok := last(chain); ok {
			f.deliverTo(event.Motion, leaf, leaf)
		}
	case pointer.Press:
		changed := e.Buttons &^ prev
		if changed == 0 {
			changed = e.Buttons
		}
		if f.pressed.Valid() {
			// Another button of the same pointer; the capture holds.
			f.deliverChain(event.Press, f.pressed, f.captureChain(), changed, e.Scroll)
			return
		}
		chain := f.tree.HitTest(e.Position)
		f.updateHover(chain)
		if f.menus.Len() > 0 && f.menus.Grabbed() && !f.menus.ContainsChain(chain) {
			f.menus.CloseAllMenus(true)
			// Closing menus may have changed the tree.
			chain = f.tree.HitTest(e.Position)
			f.updateHover(chain)
		}
		leaf, ok := last(chain)
		if !ok {
			return
		}
		f.pressed = leaf
		f.captured = chain
		f.deliverChain(event.Press, leaf, chain, changed, e.Scroll)
	case pointer.Release:
		changed := prev &^ e.Buttons
		if changed == 0 {
			changed = prev
		}
		if !f.pressed.Valid() {
			f.updateHover(f.tree.HitTest(e.Position))
			return
		}
		pressed, captured := f.pressed, f.captureChain()
		f.pressed, f.captured = view.Handle{}, nil
		f.deliverChain(event.Release, pressed, captured, changed, e.Scroll)
		chain := f.tree.HitTest(e.Position)
		if leaf, ok := last(chain); ok && leaf == pressed {
			f.deliverChain(event.Action, pressed, chain, changed, e.Scroll)
		}
		// Callbacks may have changed the tree.
		f.updateHover(f.tree.HitTest(e.Position))
	case pointer.Scroll:
		if f.pressed.Valid() {
			f.deliverChain(event.Scroll, f.pressed, f.captureChain(), e.Buttons, e.Scroll)
			return
		}
		chain := f.tree.HitTest(e.Position)
		f.updateHover(chain)
		if leaf, ok := last(chain); ok {
			f.deliverChain(event.Scroll, leaf, chain, e.Buttons, e.Scroll)
		}
	}
}

func (f *Flow) pushKey(e key.Event) {
	f.mods = e.Modifiers
	kind := event.KeyPress
	if e.State == key.Release {
		kind = event.KeyRelease
	}
	target := f.focus
	if f.menus.Grabbed() && (!target.Valid() || !f.menus.ContainsView(target)) {
		target = f.menus.Active()
	}
	consumed := false
	if target.Valid() {
		ev := f.newEvent(kind, target, f.buttons, f32.Point{})
		ev.Key = e.Name
		consumed = f.propagate(ev, f.tree.Path(target))
	}
	if !consumed && kind == event.KeyPress && e.Name == key.NameEscape && f.menus.Len() > 0 {
		f.menus.CloseSubMenus(f.menus.Active(), true)
	}
}

// cancel interrupts the press and the hover.
func (f *Flow) cancel() {
	if f.pressed.Valid() {
		pressed, captured := f.pressed, f.captureChain()
		f.pressed, f.captured = view.Handle{}, nil
		f.deliverChain(event.Cancel, pressed, captured, f.buttons, f32.Point{})
	}
	f.updateHover(nil)
	f.menus.CancelDelayedOpen()
	f.menus.CancelDelayedClose()
}

// updateHover replaces the entered chain with chain. Elements left
// are notified deepest first, then elements entered are notified
// shallowest first.
func (f *Flow) updateHover(chain []view.Handle) {
	old := f.entered
	f.entered = slices.Clone(chain)
	for i := len(old) - 1; i >= 0; i-- {
		h := old[i]
		if slices.Contains(chain, h) {
			continue
		}
		f.menus.hoverLeft(h)
		f.deliverTo(event.Leave, h, h)
	}
	for _, h := range chain {
		if slices.Contains(old, h) {
			continue
		}
		f.menus.hoverEntered(h)
		f.deliverTo(event.Enter, h, h)
	}
}

// captureChain returns the chain receiving captured notifications:
// the current path of the pressed element, or the chain recorded at
// press time if the element was removed.
func (f *Flow) captureChain() []view.Handle {
	if p := f.tree.Path(f.pressed); p != nil {
		return p
	}
	return f.captured
}

// deliverTo delivers a notification of kind to h alone.
func (f *Flow) deliverTo(kind event.Kind, source, h view.Handle) {
	if !f.tree.Alive(h) {
		return
	}
	ev := f.newEvent(kind, source, f.buttons, f32.Point{})
	f.reg.dispatch(ev, h)
}

// deliverChain delivers a notification from the deepest element of
// chain to its root, stopping when a callback consumes it.
func (f *Flow) deliverChain(kind event.Kind, source view.Handle, chain []view.Handle, buttons pointer.Buttons, scroll f32.Point) bool {
	ev := f.newEvent(kind, source, buttons, scroll)
	return f.propagate(ev, chain)
}

func (f *Flow) propagate(ev *Event, chain []view.Handle) bool {
	for i := len(chain) - 1; i >= 0; i-- {
		h := chain[i]
		if !f.tree.Alive(h) {
			continue
		}
		f.reg.dispatch(ev, h)
		if ev.Consumed() {
			return true
		}
	}
	return false
}

func (f *Flow) newEvent(kind event.Kind, source view.Handle, buttons pointer.Buttons, scroll f32.Point) *Event {
	return &Event{Context: condition.Context{
		Kind:      kind,
		Flow:      f.id,
		Source:    source,
		Tree:      f.tree,
		Position:  f.pos,
		Scroll:    scroll,
		Buttons:   buttons,
		Modifiers: f.mods,
	}}
}

func (f *Flow) live(hs []view.Handle) []view.Handle {
	var alive []view.Handle
	for _, h := range hs {
		if f.tree.Alive(h) {
			alive = append(alive, h)
		}
	}
	return alive
}

func last(chain []view.Handle) (view.Handle, bool) {
	if len(chain) == 0 {
		return view.Handle{}, false
	}
	return chain[len(chain)-1], true
}

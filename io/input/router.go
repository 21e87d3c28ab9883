// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"golang.org/x/exp/slices"

	"github.com/chebizarro/ubit-sub003/io/event"
	"github.com/chebizarro/ubit-sub003/io/key"
	"github.com/chebizarro/ubit-sub003/io/pointer"
	"github.com/chebizarro/ubit-sub003/io/timer"
	"github.com/chebizarro/ubit-sub003/io/view"
)

// Router routes events to one Flow per pointer. Pointer events go to
// the flow of their PointerID, which is attached on first use. Key
// events go to the keyboard flow: the first attached flow unless set
// with SetKeyboard.
type Router struct {
	tree  view.Tree
	reg   *Registry
	sched timer.Scheduler
	cfg   Config

	flows    map[pointer.ID]*Flow
	order    []pointer.ID
	keyboard pointer.ID
	hasKbd   bool
}

// NewRouter returns a router without flows.
func NewRouter(tree view.Tree, reg *Registry, sched timer.Scheduler, cfg Config) *Router {
	if cfg.Reporter == nil {
		cfg.Reporter = LogReporter{}
	}
	return &Router{
		tree:  tree,
		reg:   reg,
		sched: sched,
		cfg:   cfg,
		flows: make(map[pointer.ID]*Flow),
	}
}

// Attach returns the flow for pid, creating it if needed.
func (r *Router) Attach(pid pointer.ID) *Flow {
	if f, ok := r.flows[pid]; ok {
		return f
	}
	f := NewFlow(pid, r.tree, r.reg, r.sched, r.cfg)
	r.flows[pid] = f
	r.order = append(r.order, pid)
	if !r.hasKbd {
		r.keyboard, r.hasKbd = pid, true
	}
	return f
}

// Detach closes and forgets the flow for pid. It reports whether the
// flow existed. Detaching the keyboard flow moves the keyboard to the
// oldest remaining flow.
func (r *Router) Detach(pid pointer.ID) bool {
	f, ok := r.flows[pid]
	if !ok {
		return false
	}
	f.Close()
	delete(r.flows, pid)
	if i := slices.Index(r.order, pid); i != -1 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	if r.hasKbd && r.keyboard == pid {
		r.hasKbd = false
		if len(r.order) > 0 {
			r.keyboard, r.hasKbd = r.order[0], true
		}
	}
	return true
}

// Flow returns the flow for pid.
func (r *Router) Flow(pid pointer.ID) (*Flow, bool) {
	f, ok := r.flows[pid]
	return f, ok
}

// Flows returns the attached flows in attach order.
func (r *Router) Flows() []*Flow {
	fs := make([]*Flow, 0, len(r.order))
	for _, pid := range r.order {
		fs = append(fs, r.flows[pid])
	}
	return fs
}

// SetKeyboard makes the flow for pid receive key events, attaching it
// if needed.
func (r *Router) SetKeyboard(pid pointer.ID) *Flow {
	f := r.Attach(pid)
	r.keyboard, r.hasKbd = pid, true
	return f
}

// Keyboard returns the flow receiving key events.
func (r *Router) Keyboard() (*Flow, bool) {
	if !r.hasKbd {
		return nil, false
	}
	return r.Flow(r.keyboard)
}

// Queue dispatches events in order.
func (r *Router) Queue(events ...event.Event) {
	for _, e := range events {
		switch e := e.(type) {
		case pointer.Event:
			r.Attach(e.PointerID).Push(e)
		case key.Event, key.FocusEvent:
			f, ok := r.Keyboard()
			if !ok {
				f = r.Attach(0)
			}
			f.Push(e)
		default:
			r.cfg.Reporter.Warnf("input: router: unsupported event %T", e)
		}
	}
}

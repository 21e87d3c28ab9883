// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"errors"

	"golang.org/x/exp/slices"

	"github.com/chebizarro/ubit-sub003/io/condition"
	"github.com/chebizarro/ubit-sub003/io/view"
)

var (
	// ErrNilCondition is returned when registering a callback
	// without a condition.
	ErrNilCondition = errors.New("input: nil condition")
	// ErrNilCallback is returned when registering a nil callback.
	ErrNilCallback = errors.New("input: nil callback")
	// ErrDeadElement is returned when registering a callback on an
	// element that is no longer in the tree.
	ErrDeadElement = errors.New("input: element not in tree")
)

// Callback is invoked for notifications whose condition holds.
type Callback interface {
	Invoke(e *Event)
}

// CallbackFunc adapts a function to a Callback.
type CallbackFunc func(e *Event)

// Registry holds the callbacks registered on elements. A Registry is
// shared by every flow dispatching into the same tree.
//
// Triggers of elements removed from the tree are forgotten when a
// notification reaches them and, amortized, during Register.
type Registry struct {
	tree     view.Tree
	sink     view.CapabilitySink
	rep      Reporter
	bindings map[view.Handle][]*binding
	// registered counts Register calls since the last Prune.
	registered int
}

// binding is a trigger on an element and the callbacks it fires.
type binding struct {
	cond      condition.Condition
	callbacks []trigger
}

// trigger is a callback and the canonical condition it was
// registered for, which may be a member of the binding's condition.
type trigger struct {
	cond condition.Condition
	cb   Callback
}

func (f CallbackFunc) Invoke(e *Event) {
	f(e)
}

// NewRegistry returns a registry for elements of tree. If tree is
// also a view.CapabilitySink, registering a condition declares its
// capabilities on the element. A nil rep reports to the standard
// logger.
func NewRegistry(tree view.Tree, rep Reporter) *Registry {
	if rep == nil {
		rep = LogReporter{}
	}
	r := &Registry{
		tree:     tree,
		rep:      rep,
		bindings: make(map[view.Handle][]*binding),
	}
	r.sink, _ = tree.(view.CapabilitySink)
	return r
}

// Register arranges for cb to be invoked when c holds for a
// notification dispatched to e. If a condition already registered on
// e matches c, cb joins that trigger and fires on the matching
// condition only.
func (r *Registry) Register(e view.Handle, c condition.Condition, cb Callback) error {
	var err error
	switch {
	case c == nil:
		err = ErrNilCondition
	case isNilCallback(cb):
		err = ErrNilCallback
	case !r.tree.Alive(e):
		err = ErrDeadElement
	}
	if err != nil {
		r.rep.Errorf("%v (element %v)", err, e)
		return err
	}
	r.registered++
	if r.registered >= len(r.bindings) {
		r.Prune()
	}
	bs := r.bindings[e]
	for _, b := range bs {
		if canon := b.cond.Matches(c); canon != nil {
			b.callbacks = append(b.callbacks, trigger{cond: canon, cb: cb})
			return nil
		}
	}
	r.bindings[e] = append(bs, &binding{cond: c, callbacks: []trigger{{cond: c, cb: cb}}})
	if r.sink != nil {
		c.SetParentModes(r.sink, e)
	}
	return nil
}

// Unregister removes the callbacks on e registered for c. If c
// matches a whole trigger, the trigger and all its callbacks are
// removed; if it matches a member of a trigger's condition, only the
// callbacks registered for that member are. It reports whether
// anything was removed.
func (r *Registry) Unregister(e view.Handle, c condition.Condition) bool {
	bs := r.bindings[e]
	for i, b := range bs {
		canon := b.cond.Matches(c)
		if canon == nil {
			continue
		}
		if condition.Same(canon, b.cond) != nil {
			r.setBindings(e, slices.Delete(bs, i, i+1))
			return true
		}
		n := len(b.callbacks)
		b.callbacks = slices.DeleteFunc(b.callbacks, func(t trigger) bool {
			return condition.Same(t.cond, canon) != nil
		})
		if len(b.callbacks) == 0 {
			r.setBindings(e, slices.Delete(bs, i, i+1))
		}
		if len(b.callbacks) != n {
			return true
		}
	}
	return false
}

func (r *Registry) setBindings(e view.Handle, bs []*binding) {
	if len(bs) == 0 {
		delete(r.bindings, e)
	} else {
		r.bindings[e] = bs
	}
}

// Forget removes every trigger on e.
func (r *Registry) Forget(e view.Handle) {
	delete(r.bindings, e)
}

// Prune forgets the triggers of elements no longer in the tree and
// returns how many elements were forgotten.
func (r *Registry) Prune() int {
	r.registered = 0
	n := 0
	for e := range r.bindings {
		if !r.tree.Alive(e) {
			delete(r.bindings, e)
			n++
		}
	}
	return n
}

// Triggers returns the number of triggers registered on e.
func (r *Registry) Triggers(e view.Handle) int {
	return len(r.bindings[e])
}

// dispatch fires the callbacks on e whose condition holds for ev. It
// skips e if e lacks the capability for the notification kind.
func (r *Registry) dispatch(ev *Event, e view.Handle) {
	bs := r.bindings[e]
	if len(bs) == 0 {
		return
	}
	if !r.tree.Alive(e) {
		r.Forget(e)
		return
	}
	if need := condition.CapabilityFor(ev.Kind); need != 0 && r.sink != nil {
		if r.tree.Capabilities(e)&need == 0 {
			return
		}
	}
	ev.Current = e
	// Callbacks may register and unregister triggers.
	for _, b := range slices.Clone(bs) {
		if !b.cond.Verifies(&ev.Context, e) {
			continue
		}
		for _, t := range slices.Clone(b.callbacks) {
			if condition.Same(t.cond, b.cond) != nil || t.cond.Verifies(&ev.Context, e) {
				r.invoke(t.cb, ev)
			}
		}
	}
}

func (r *Registry) invoke(cb Callback, ev *Event) {
	defer func() {
		if err := recover(); err != nil {
			r.rep.Warnf("input: %v callback on %v panicked: %v", ev.Kind, ev.Current, err)
		}
	}()
	cb.Invoke(ev)
}

func isNilCallback(cb Callback) bool {
	if cb == nil {
		return true
	}
	f, ok := cb.(CallbackFunc)
	return ok && f == nil
}

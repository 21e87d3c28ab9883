// SPDX-License-Identifier: Unlicense OR MIT

package view

import (
	"golang.org/x/exp/slices"

	"github.com/chebizarro/ubit-sub003/f32"
)

// Arena is a Tree that stores its elements in a slice indexed by
// handle. Removing an element bumps the generation of its slot, which
// invalidates every outstanding Handle to it.
//
// Elements have bounds in root coordinates. An element is only hit if
// its parent is hit, and later siblings are above earlier ones. Several
// roots may coexist; popups are typically added as new roots so that
// they sit above the main window.
type Arena struct {
	nodes []node
	free  []uint32
	roots []Handle
}

type node struct {
	gen      uint32
	live     bool
	name     string
	parent   Handle
	children []Handle
	bounds   f32.Rectangle
	caps     Capability
}

// NewArena returns an empty tree.
func NewArena() *Arena {
	// Slot 0 is never used so that index 0 never looks valid.
	return &Arena{nodes: make([]node, 1)}
}

// Add adds an element with the given name and bounds as the topmost
// child of parent. A zero parent adds a new topmost root. Add panics
// if parent is valid but dead.
func (a *Arena) Add(parent Handle, name string, bounds f32.Rectangle) Handle {
	if parent.Valid() && !a.Alive(parent) {
		panic("view: Add to a removed parent")
	}
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.nodes = append(a.nodes, node{})
		idx = uint32(len(a.nodes) - 1)
	}
	n := &a.nodes[idx]
	n.gen++
	if n.gen == 0 {
		n.gen = 1
	}
	n.live = true
	n.name = name
	n.parent = parent
	n.children = n.children[:0]
	n.bounds = bounds
	n.caps = 0
	h := Handle{index: idx, gen: n.gen}
	if parent.Valid() {
		p := a.node(parent)
		p.children = append(p.children, h)
	} else {
		a.roots = append(a.roots, h)
	}
	return h
}

// Remove removes h and its subtree. Removing a dead handle is a no-op.
func (a *Arena) Remove(h Handle) {
	n := a.node(h)
	if n == nil {
		return
	}
	if p := a.node(n.parent); p != nil {
		p.children = removeHandle(p.children, h)
	} else {
		a.roots = removeHandle(a.roots, h)
	}
	a.release(h)
}

func (a *Arena) release(h Handle) {
	n := a.node(h)
	for _, c := range n.children {
		a.release(c)
	}
	n.children = n.children[:0]
	n.live = false
	n.parent = Handle{}
	// Bump the generation now so that h is dead even before
	// the slot is reused.
	n.gen++
	if n.gen == 0 {
		n.gen = 1
	}
	a.free = append(a.free, h.index)
}

// Raise moves h above its siblings.
func (a *Arena) Raise(h Handle) {
	n := a.node(h)
	if n == nil {
		return
	}
	if p := a.node(n.parent); p != nil {
		p.children = append(removeHandle(p.children, h), h)
	} else {
		a.roots = append(removeHandle(a.roots, h), h)
	}
}

// SetBounds replaces the bounds of h.
func (a *Arena) SetBounds(h Handle, r f32.Rectangle) {
	if n := a.node(h); n != nil {
		n.bounds = r
	}
}

// Bounds returns the bounds of h.
func (a *Arena) Bounds(h Handle) f32.Rectangle {
	if n := a.node(h); n != nil {
		return n.bounds
	}
	return f32.Rectangle{}
}

// Name returns the name h was added with.
func (a *Arena) Name(h Handle) string {
	if n := a.node(h); n != nil {
		return n.name
	}
	return ""
}

// Parent returns the parent of h, or the zero Handle for roots and
// dead handles.
func (a *Arena) Parent(h Handle) Handle {
	if n := a.node(h); n != nil {
		return n.parent
	}
	return Handle{}
}

// Children returns the children of h, bottom to top.
func (a *Arena) Children(h Handle) []Handle {
	if n := a.node(h); n != nil {
		return slices.Clone(n.children)
	}
	return nil
}

func (a *Arena) HitTest(p f32.Point) []Handle {
	var chain []Handle
	level := a.roots
	for {
		hit := Handle{}
		for i := len(level) - 1; i >= 0; i-- {
			if p.In(a.nodes[level[i].index].bounds) {
				hit = level[i]
				break
			}
		}
		if !hit.Valid() {
			return chain
		}
		chain = append(chain, hit)
		level = a.nodes[hit.index].children
	}
}

func (a *Arena) IsDescendant(v, anc Handle) bool {
	if !a.Alive(anc) {
		return false
	}
	for n := a.node(v); n != nil; n = a.node(n.parent) {
		if v == anc {
			return true
		}
		v = n.parent
	}
	return false
}

func (a *Arena) Path(h Handle) []Handle {
	var path []Handle
	for n := a.node(h); n != nil; n = a.node(n.parent) {
		path = append(path, h)
		h = n.parent
	}
	slices.Reverse(path)
	return path
}

func (a *Arena) Alive(h Handle) bool {
	return a.node(h) != nil
}

func (a *Arena) Capabilities(h Handle) Capability {
	if n := a.node(h); n != nil {
		return n.caps
	}
	return 0
}

// SetCapability adds c to the capabilities of owner.
func (a *Arena) SetCapability(owner Handle, c Capability) {
	if n := a.node(owner); n != nil {
		n.caps |= c
	}
}

// node returns the live node for h, or nil.
func (a *Arena) node(h Handle) *node {
	if !h.Valid() || int(h.index) >= len(a.nodes) {
		return nil
	}
	n := &a.nodes[h.index]
	if !n.live || n.gen != h.gen {
		return nil
	}
	return n
}

func removeHandle(hs []Handle, h Handle) []Handle {
	if i := slices.Index(hs, h); i != -1 {
		return slices.Delete(hs, i, i+1)
	}
	return hs
}

// SPDX-License-Identifier: Unlicense OR MIT

/*
Package view defines the view tree consumed by input flows.

The tree is owned by the application. Input flows only hit-test
points, ask for ancestry, and check liveness; they never change
the tree structure. Elements are referred to by Handle values
that go stale when the element is removed, so a flow holding a
handle across events must check Alive before using it.
*/
package view

import (
	"fmt"
	"strings"

	"github.com/chebizarro/ubit-sub003/f32"
)

// Handle refers to an element of a view tree. The zero Handle
// refers to no element.
type Handle struct {
	index uint32
	gen   uint32
}

// Capability is a set of event classes an element has declared
// interest in.
type Capability uint32

const (
	// CapButton is set by elements that react to pointer
	// presses, releases and actions.
	CapButton Capability = 1 << iota
	// CapMotion is set by elements that react to pointer
	// motion and drags.
	CapMotion
	// CapCrossing is set by elements that react to the pointer
	// entering or leaving them.
	CapCrossing
	// CapScroll is set by elements that react to scrolling.
	CapScroll
	// CapKey is set by elements that react to key events.
	CapKey
	// CapFocus is set by elements that react to focus changes.
	CapFocus
)

// Tree is the query interface of a view tree. Results reflect the
// tree at call time.
type Tree interface {
	// HitTest returns the chain of elements containing p,
	// ordered from the root to the deepest element.
	HitTest(p f32.Point) []Handle
	// IsDescendant reports whether v is anc or is contained in
	// the subtree of anc.
	IsDescendant(v, anc Handle) bool
	// Path returns the chain of elements from the root to h,
	// or nil if h is not alive.
	Path(h Handle) []Handle
	// Alive reports whether h refers to an element currently
	// in the tree.
	Alive(h Handle) bool
	// Capabilities returns the capabilities declared for h.
	Capabilities(h Handle) Capability
}

// CapabilitySink records the capabilities elements declare.
type CapabilitySink interface {
	SetCapability(owner Handle, c Capability)
}

// Valid reports whether h refers to an element at all. A valid
// handle may still be dead.
func (h Handle) Valid() bool {
	return h.gen != 0
}

func (h Handle) String() string {
	if !h.Valid() {
		return "nil"
	}
	return fmt.Sprintf("#%d.%d", h.index, h.gen)
}

func (c Capability) String() string {
	var strs []string
	names := [...]string{"Button", "Motion", "Crossing", "Scroll", "Key", "Focus"}
	for i, n := range names {
		if c&(1<<i) != 0 {
			strs = append(strs, n)
		}
	}
	return strings.Join(strs, "|")
}

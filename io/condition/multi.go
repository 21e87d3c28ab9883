// SPDX-License-Identifier: Unlicense OR MIT

package condition

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/chebizarro/ubit-sub003/io/view"
)

// Multi is an ordered set of conditions that holds when any of its
// members holds. Multi does not own its members.
//
// Members added after SetParentModes declare their capabilities on
// every element the Multi was declared on.
type Multi struct {
	conds    []Condition
	declared []declaration
}

type declaration struct {
	sink  view.CapabilitySink
	owner view.Handle
}

// NewMulti returns a Multi containing conds in order.
func NewMulti(conds ...Condition) *Multi {
	m := new(Multi)
	for _, c := range conds {
		m.Add(c)
	}
	return m
}

// Add appends c and returns m. Adding a nil condition panics.
func (m *Multi) Add(c Condition) *Multi {
	if c == nil {
		panic("condition: Add of nil Condition")
	}
	m.conds = append(m.conds, c)
	for _, d := range m.declared {
		c.SetParentModes(d.sink, d.owner)
	}
	return m
}

// Remove removes the first member identical to c and returns m.
// Removing an absent condition does nothing.
func (m *Multi) Remove(c Condition) *Multi {
	if i := slices.Index(m.conds, c); i != -1 {
		m.conds = slices.Delete(m.conds, i, i+1)
	}
	return m
}

// Len returns the number of members.
func (m *Multi) Len() int {
	return len(m.conds)
}

// Conditions returns a copy of the members in order.
func (m *Multi) Conditions() []Condition {
	return slices.Clone(m.conds)
}

// Matches returns m if other is m itself, and otherwise the first
// member, in insertion order, that matches other.
func (m *Multi) Matches(other Condition) Condition {
	if Same(m, other) != nil {
		return m
	}
	for _, c := range m.conds {
		if r := c.Matches(other); r != nil {
			return r
		}
	}
	return nil
}

func (m *Multi) Verifies(ctx *Context, e view.Handle) bool {
	for _, c := range m.conds {
		if c.Verifies(ctx, e) {
			return true
		}
	}
	return false
}

func (m *Multi) SetParentModes(sink view.CapabilitySink, owner view.Handle) {
	d := declaration{sink: sink, owner: owner}
	if !slices.Contains(m.declared, d) {
		m.declared = append(m.declared, d)
	}
	for _, c := range m.conds {
		c.SetParentModes(sink, owner)
	}
}

func (m *Multi) String() string {
	var strs []string
	for _, c := range m.conds {
		if s, ok := c.(fmt.Stringer); ok {
			strs = append(strs, s.String())
		} else {
			strs = append(strs, "?")
		}
	}
	return "[" + strings.Join(strs, ",") + "]"
}

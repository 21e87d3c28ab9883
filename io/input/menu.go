// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"time"

	"golang.org/x/exp/slices"

	"github.com/chebizarro/ubit-sub003/io/timer"
	"github.com/chebizarro/ubit-sub003/io/view"
)

const (
	// DefaultOpenDelay is the hover delay before a submenu opens.
	DefaultOpenDelay = 300 * time.Millisecond
	// DefaultCloseDelay is the delay before a submenu the pointer
	// left is closed.
	DefaultCloseDelay = 400 * time.Millisecond
)

// Display shows and hides menus, typically by mapping and unmapping
// a popup window. The menu handle passed to Hide may already be dead.
type Display interface {
	Show(menu, opener view.Handle)
	Hide(menu view.Handle)
}

// MenuManager tracks the stack of open menus of a flow, ordered from
// the root menu to the deepest submenu. Each menu on the stack was
// opened from an element inside its predecessor, or from an element
// outside every menu for the root menu.
//
// While the stack is not empty the manager holds the pointer grab of
// its flow: presses outside every open menu close the stack instead
// of being routed only to the elements underneath.
type MenuManager struct {
	tree  view.Tree
	sched timer.Scheduler
	rep   Reporter

	openDelay  time.Duration
	closeDelay time.Duration

	stack   []menuEntry
	top     view.Handle
	grabbed bool

	pendingOpen  *pendingOpen
	pendingClose *pendingClose
}

type menuEntry struct {
	menu    view.Handle
	opener  view.Handle
	display Display
}

type pendingOpen struct {
	timer   timer.Handle
	opener  view.Handle
	menu    view.Handle
	display Display
}

type pendingClose struct {
	timer timer.Handle
	menu  view.Handle
}

// NewMenuManager returns an empty manager. A nil rep reports to the
// standard logger.
func NewMenuManager(tree view.Tree, sched timer.Scheduler, rep Reporter) *MenuManager {
	if rep == nil {
		rep = LogReporter{}
	}
	return &MenuManager{
		tree:       tree,
		sched:      sched,
		rep:        rep,
		openDelay:  DefaultOpenDelay,
		closeDelay: DefaultCloseDelay,
	}
}

// SetDelays sets the delays used by OpenMenuAfterDelay and
// CloseMenuAfterDelay. Timers already armed keep their deadline.
func (m *MenuManager) SetDelays(openDelay, closeDelay time.Duration) {
	m.openDelay, m.closeDelay = openDelay, closeDelay
}

// Delays returns the open and close delays.
func (m *MenuManager) Delays() (openDelay, closeDelay time.Duration) {
	return m.openDelay, m.closeDelay
}

// OpenMenu opens menu from opener and makes it the active menu.
//
// If opener is inside an open menu, the submenus of that menu are
// closed first and menu becomes its submenu. If opener is outside
// every open menu, the whole stack is closed and menu becomes the new
// root menu. Opening a menu that is already open closes its submenus.
// Display may be nil.
func (m *MenuManager) OpenMenu(opener, menu view.Handle, d Display) {
	if !m.tree.Alive(menu) {
		m.rep.Warnf("input: opening removed menu %v", menu)
		return
	}
	if p := m.pendingOpen; p != nil && p.menu == menu {
		m.CancelDelayedOpen()
	}
	if i := m.index(menu); i != -1 {
		m.closeFrom(i + 1)
		m.keepFrom(i)
		m.grabbed = true
		return
	}
	parent := -1
	for i := len(m.stack) - 1; i >= 0; i-- {
		if m.tree.IsDescendant(opener, m.stack[i].menu) {
			parent = i
			break
		}
	}
	m.closeFrom(parent + 1)
	m.keepFrom(parent)
	if len(m.stack) == 0 {
		m.top = menu
	}
	m.stack = append(m.stack, menuEntry{menu: menu, opener: opener, display: d})
	m.grabbed = true
	if d != nil {
		d.Show(menu, opener)
	}
}

// CloseSubMenus closes the menus deeper than from, and from itself if
// including is set. If from is not open, every menu is closed and the
// top menu reference is cleared.
func (m *MenuManager) CloseSubMenus(from view.Handle, including bool) {
	i := m.index(from)
	if i == -1 {
		// A stale reference resets the whole stack.
		m.rep.Warnf("input: closing submenus of %v, which is not open", from)
		m.CloseAllMenus(true)
		return
	}
	if including {
		m.closeFrom(i)
	} else {
		m.closeFrom(i + 1)
	}
}

// CloseAllMenus closes every open menu, cancels the delayed actions
// and releases the pointer grab. The top menu reference is kept unless
// clearTop is set, so that a stack that was only emptied can be told
// apart from a reset one.
func (m *MenuManager) CloseAllMenus(clearTop bool) {
	m.CancelDelayedOpen()
	m.CancelDelayedClose()
	m.closeFrom(0)
	m.grabbed = false
	if clearTop {
		m.top = view.Handle{}
	}
}

// OpenMenuAfterDelay arms a timer that opens menu from opener after
// the open delay. Arming replaces any pending delayed open. The timer
// is cancelled when the pointer leaves opener, and the open does
// nothing if opener or menu was removed meanwhile.
func (m *MenuManager) OpenMenuAfterDelay(opener, menu view.Handle, d Display) {
	m.CancelDelayedOpen()
	p := &pendingOpen{opener: opener, menu: menu, display: d}
	p.timer = m.sched.Schedule(m.openDelay, func() {
		if m.pendingOpen != p {
			return
		}
		m.pendingOpen = nil
		if !m.tree.Alive(p.opener) || !m.tree.Alive(p.menu) {
			return
		}
		m.OpenMenu(p.opener, p.menu, p.display)
	})
	m.pendingOpen = p
}

// CloseMenuAfterDelay arms a timer that closes menu and its submenus
// after the close delay. Arming replaces any pending delayed close. The
// timer is cancelled when the pointer enters menu again, and the close
// does nothing if menu is no longer open when it fires.
func (m *MenuManager) CloseMenuAfterDelay(menu view.Handle) {
	m.CancelDelayedClose()
	if m.index(menu) == -1 {
		return
	}
	p := &pendingClose{menu: menu}
	p.timer = m.sched.Schedule(m.closeDelay, func() {
		if m.pendingClose != p {
			return
		}
		m.pendingClose = nil
		if i := m.index(p.menu); i != -1 {
			m.closeFrom(i)
		}
	})
	m.pendingClose = p
}

// CancelDelayedOpen cancels the pending delayed open, if any, and
// reports whether there was one.
func (m *MenuManager) CancelDelayedOpen() bool {
	p := m.pendingOpen
	if p == nil {
		return false
	}
	m.pendingOpen = nil
	m.sched.Cancel(p.timer)
	return true
}

// CancelDelayedClose cancels the pending delayed close, if any, and
// reports whether there was one.
func (m *MenuManager) CancelDelayedClose() bool {
	p := m.pendingClose
	if p == nil {
		return false
	}
	m.pendingClose = nil
	m.sched.Cancel(p.timer)
	return true
}

// Contains reports whether menu is open.
func (m *MenuManager) Contains(menu view.Handle) bool {
	return m.index(menu) != -1
}

// ContainsView reports whether v is inside an open menu.
func (m *MenuManager) ContainsView(v view.Handle) bool {
	for _, e := range m.stack {
		if m.tree.IsDescendant(v, e.menu) {
			return true
		}
	}
	return false
}

// ContainsChain reports whether any element of chain is inside an
// open menu.
func (m *MenuManager) ContainsChain(chain []view.Handle) bool {
	for i := len(chain) - 1; i >= 0; i-- {
		if m.ContainsView(chain[i]) {
			return true
		}
	}
	return false
}

// Active returns the deepest open menu, or the zero Handle.
func (m *MenuManager) Active() view.Handle {
	if len(m.stack) == 0 {
		return view.Handle{}
	}
	return m.stack[len(m.stack)-1].menu
}

// Top returns the root menu of the current or most recent stack.
func (m *MenuManager) Top() view.Handle {
	return m.top
}

// Stack returns the open menus from the root menu to the deepest.
func (m *MenuManager) Stack() []view.Handle {
	s := make([]view.Handle, len(m.stack))
	for i, e := range m.stack {
		s[i] = e.menu
	}
	return s
}

// Len returns the number of open menus.
func (m *MenuManager) Len() int {
	return len(m.stack)
}

// Grabbed reports whether the manager holds the pointer grab.
func (m *MenuManager) Grabbed() bool {
	return m.grabbed
}

// Opener returns the element menu was opened from.
func (m *MenuManager) Opener(menu view.Handle) (view.Handle, bool) {
	if i := m.index(menu); i != -1 {
		return m.stack[i].opener, true
	}
	return view.Handle{}, false
}

// prune closes the menus that were removed from the tree, along
// with their submenus.
func (m *MenuManager) prune() {
	i := slices.IndexFunc(m.stack, func(e menuEntry) bool { return !m.tree.Alive(e.menu) })
	if i != -1 {
		m.closeFrom(i)
	}
}

// hoverLeft is called when the pointer leaves h.
func (m *MenuManager) hoverLeft(h view.Handle) {
	if p := m.pendingOpen; p != nil && p.opener == h {
		m.CancelDelayedOpen()
	}
}

// hoverEntered is called when the pointer enters h.
func (m *MenuManager) hoverEntered(h view.Handle) {
	if p := m.pendingClose; p != nil && m.tree.IsDescendant(h, p.menu) {
		m.CancelDelayedClose()
	}
}

func (m *MenuManager) index(menu view.Handle) int {
	if !menu.Valid() {
		return -1
	}
	return slices.IndexFunc(m.stack, func(e menuEntry) bool { return e.menu == menu })
}

// closeFrom closes the menus at index i and deeper, deepest first.
func (m *MenuManager) closeFrom(i int) {
	if i < 0 {
		i = 0
	}
	for len(m.stack) > i {
		n := len(m.stack) - 1
		e := m.stack[n]
		m.stack = m.stack[:n]
		if p := m.pendingClose; p != nil && p.menu == e.menu {
			m.CancelDelayedClose()
		}
		if p := m.pendingOpen; p != nil && m.tree.IsDescendant(p.opener, e.menu) {
			m.CancelDelayedOpen()
		}
		if e.display != nil {
			e.display.Hide(e.menu)
		}
	}
	if len(m.stack) == 0 {
		m.grabbed = false
	}
}

// keepFrom cancels a pending close of the menu at index i or of one of
// its ancestors, since the menu is being made active.
func (m *MenuManager) keepFrom(i int) {
	p := m.pendingClose
	if p == nil || i < 0 {
		return
	}
	if j := m.index(p.menu); j != -1 && j <= i {
		m.CancelDelayedClose()
	}
}

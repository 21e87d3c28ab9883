// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"github.com/chebizarro/ubit-sub003/io/condition"
	"github.com/chebizarro/ubit-sub003/io/view"
)

// Event is the notification passed to callbacks. The embedded
// Context is the one conditions were verified against.
type Event struct {
	condition.Context
	// Current is the element whose callbacks are running. It
	// differs from Source while a notification propagates to the
	// ancestors of its source.
	Current view.Handle

	consumed bool
}

// Consume stops the propagation of the notification to the
// ancestors of Current. The remaining callbacks of Current still run.
func (e *Event) Consume() {
	e.consumed = true
}

// Consumed reports whether a callback consumed the notification.
func (e *Event) Consumed() bool {
	return e.consumed
}

// SPDX-License-Identifier: Unlicense OR MIT

/*
Package input implements input flows and the menu stack.

A [Flow] tracks the live state of one input device: the pointer
position, the chain of elements under the pointer, the element
holding an active press, and the keyboard focus. Events pushed to a
Flow are dispatched to element callbacks registered in a [Registry]
when their [condition.Condition] holds. Pointer presses capture the
pressed element: drags and the release go to it regardless of where
the pointer is.

Every Flow owns a [MenuManager] that tracks the stack of open popup
menus. While menus are open the flow holds a pointer grab: a press
outside every open menu closes them all before it reaches the
elements underneath.

The [Router] keeps one Flow per pointer ID for multi-pointer
setups. Flows never share state besides the view tree and the
registry, which they only read.

Everything in this package runs on a single goroutine. Delayed menu
actions are timer callbacks run by the owner of the [timer.Scheduler]
from the same goroutine.
*/
package input

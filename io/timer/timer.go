// SPDX-License-Identifier: Unlicense OR MIT

/*
Package timer implements one-shot timers for a single-threaded
event loop.

Timer callbacks never run on their own goroutine. The loop owning a
Queue asks for the next wakeup time, waits for it or for the next
input event, and calls Advance, which runs the due callbacks in
deadline order. A cancelled timer is removed from the queue, so its
callback never runs.
*/
package timer

import (
	"time"

	"golang.org/x/exp/slices"
)

// Handle identifies a scheduled callback. The zero Handle is never
// returned by Schedule.
type Handle uint64

// Scheduler schedules one-shot callbacks.
type Scheduler interface {
	// Schedule arranges for f to be called once after d.
	Schedule(d time.Duration, f func()) Handle
	// Cancel prevents the callback for h from running. It reports
	// whether the callback was still pending.
	Cancel(h Handle) bool
}

// Queue is a Scheduler driven by explicit calls to Advance.
// The zero value is ready to use, with its clock at the zero time.
type Queue struct {
	now     time.Time
	last    Handle
	pending []entry
}

type entry struct {
	h        Handle
	deadline time.Time
	f        func()
}

// NewQueue returns a Queue with its clock set to now.
func NewQueue(now time.Time) *Queue {
	return &Queue{now: now}
}

// Now returns the time of the most recent Advance.
func (q *Queue) Now() time.Time {
	return q.now
}

func (q *Queue) Schedule(d time.Duration, f func()) Handle {
	if d < 0 {
		d = 0
	}
	q.last++
	e := entry{h: q.last, deadline: q.now.Add(d), f: f}
	// Keep pending sorted by deadline; equal deadlines run in
	// scheduling order.
	i, _ := slices.BinarySearchFunc(q.pending, e, func(a, b entry) int {
		if a.deadline.After(b.deadline) {
			return 1
		}
		return -1
	})
	q.pending = slices.Insert(q.pending, i, e)
	return e.h
}

func (q *Queue) Cancel(h Handle) bool {
	i := slices.IndexFunc(q.pending, func(e entry) bool { return e.h == h })
	if i == -1 {
		return false
	}
	q.pending = slices.Delete(q.pending, i, i+1)
	return true
}

// Pending returns the number of scheduled callbacks.
func (q *Queue) Pending() int {
	return len(q.pending)
}

// WakeupTime returns the deadline of the earliest pending callback.
func (q *Queue) WakeupTime() (time.Time, bool) {
	if len(q.pending) == 0 {
		return time.Time{}, false
	}
	return q.pending[0].deadline, true
}

// Advance moves the clock to now and runs every callback due at or
// before now. Callbacks may schedule and cancel timers; a callback
// scheduled with a zero delay during Advance runs in the same call.
// Advance returns the number of callbacks run. The clock never moves
// backwards.
func (q *Queue) Advance(now time.Time) int {
	if now.After(q.now) {
		q.now = now
	}
	n := 0
	for len(q.pending) > 0 && !q.pending[0].deadline.After(q.now) {
		e := q.pending[0]
		q.pending = slices.Delete(q.pending, 0, 1)
		e.f()
		n++
	}
	return n
}

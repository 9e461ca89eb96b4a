/*
 * Ridge32 - Event scheduler
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package sched is the discrete-event queue bus devices use to schedule
// their own future callbacks (a disk seek completing, a timer tick). The
// core interpreter does not depend on it -- the Processor's own timer
// ticking is driven directly by its step counter -- but it is the
// primitive any bus.Device implementation outside the core's scope would
// build on, so it ships here rather than being invented ad hoc per device.
package sched

// Event is one pending callback, ordered by When (an opaque caller clock
// unit -- cycles, steps, or milliseconds, whichever the host harness uses
// consistently across every AddEvent call).
type Event struct {
	When uint64
	Fn   func()
	next *Event
}

// Queue is a singly-linked, time-ordered event list. It is not safe for
// concurrent use -- the host harness owns it from a single goroutine, same
// as the Processor's Step loop.
type Queue struct {
	head *Event
	now  uint64
}

// New returns an empty Queue with its clock at zero.
func New() *Queue {
	return &Queue{}
}

// Now returns the current value of the queue's clock.
func (q *Queue) Now() uint64 {
	return q.now
}

// AddEvent inserts an event to fire at now+delay, keeping the list ordered
// by absolute time. It returns the event so the caller can CancelEvent it
// later.
func (q *Queue) AddEvent(delay uint64, fn func()) *Event {
	ev := &Event{When: q.now + delay, Fn: fn}

	if q.head == nil || ev.When < q.head.When {
		ev.next = q.head
		q.head = ev
		return ev
	}
	prev := q.head
	for prev.next != nil && prev.next.When <= ev.When {
		prev = prev.next
	}
	ev.next = prev.next
	prev.next = ev
	return ev
}

// CancelEvent removes ev from the queue if it is still pending. Canceling
// an event that already fired, or that belongs to a different queue, is a
// silent no-op.
func (q *Queue) CancelEvent(ev *Event) {
	if q.head == ev {
		q.head = ev.next
		return
	}
	for p := q.head; p != nil && p.next != nil; p = p.next {
		if p.next == ev {
			p.next = ev.next
			return
		}
	}
}

// Advance moves the clock forward by delta, firing (and removing) every
// event whose time has come, in time order. Events an Fn schedules via
// AddEvent during Advance are eligible to fire within the same Advance
// call if their When falls at or before the new clock value.
func (q *Queue) Advance(delta uint64) {
	target := q.now + delta
	for q.head != nil && q.head.When <= target {
		ev := q.head
		q.head = ev.next
		q.now = ev.When
		ev.Fn()
	}
	q.now = target
}

// Pending reports whether any event remains queued.
func (q *Queue) Pending() bool {
	return q.head != nil
}

// Package eventloop implements the single-threaded cooperative scheduler
// (component #9, §4.9, §5): a microtask FIFO, a timer min-heap with
// lazy cancellation, and the phase alternation (drain microtasks, run due
// timers, sleep until the next one) that the rest of the runtime's async
// machinery (pkg/promise, pkg/asynciter) schedules work onto.
//
// Grounded on the teacher's GreenScheduler run-queue idiom
// (purple_go/pkg/eval/green.go: "Spawn adds a thunk to the run queue" / "Run
// executes all green threads until none remain") for the microtask FIFO; the
// timer heap adds the min-heap-by-due-time structure §4.9 names, built on
// the standard library's container/heap (no example or retrieved package
// offers a priority-queue primitive, so this one concern is the documented
// stdlib exception — see DESIGN.md) and id allocation grounded on
// google/uuid-free monotonic counters, matching the teacher's own
// monotonically-allocated ids elsewhere in the pipeline (e.g. instruction
// ids in pkg/codegen).
package eventloop

import (
	"container/heap"
	"time"
)

// Task is a scheduled callable: a microtask, or a timer's payload.
type Task func()

// timerEntry is one node of the timer min-heap (§4.9 "each entry carries an
// id, an interval (zero for one-shot), and the callable").
type timerEntry struct {
	id       uint64
	due      time.Time
	interval time.Duration // zero for a one-shot timer
	task     Task
	index    int // heap.Interface bookkeeping
}

type timerHeap []*timerEntry

func (h timerHeap) Len() int { return len(h) }

// Less orders by (due, id): due-time first, insertion order as the
// tie-break (§5 "between two timers whose due times are equal, the one
// inserted first fires first"). container/heap is not a stable sort, so
// the id comparison is load-bearing whenever two entries share a due time
// — trivially the case for any batch scheduled against the same l.clock()
// stamp.
func (h timerHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].id < h[j].id
	}
	return h[i].due.Before(h[j].due)
}
func (h timerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i]; h[i].index, h[j].index = i, j }
func (h *timerHeap) Push(x interface{}) {
	e := x.(*timerEntry)
	e.index = len(*h)
	*h = append(*h, e)
}
func (h *timerHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// Loop is one runtime's event loop (§4.9, §5 "a single execution thread
// runs generated code, microtasks, and timer callbacks"). It is not safe
// for concurrent use — by design, since the model it implements is
// single-threaded.
type Loop struct {
	microtasks []Task
	timers     timerHeap
	cancelled  map[uint64]bool
	nextID     uint64

	// now lets tests substitute a controllable clock; production code leaves
	// it nil and Loop falls back to time.Now.
	now func() time.Time
}

// New returns an empty event loop.
func New() *Loop {
	return &Loop{cancelled: make(map[uint64]bool)}
}

func (l *Loop) clock() time.Time {
	if l.now != nil {
		return l.now()
	}
	return time.Now()
}

// QueueMicrotask enqueues t onto the microtask FIFO (§4.9 "enqueued by
// promise resolution, iterator reactions, and explicit queueMicrotask style
// requests").
func (l *Loop) QueueMicrotask(t Task) {
	l.microtasks = append(l.microtasks, t)
}

// SetTimeout schedules a one-shot timer after delay and returns its id.
func (l *Loop) SetTimeout(delay time.Duration, t Task) uint64 {
	return l.schedule(delay, 0, t)
}

// SetInterval schedules a repeating timer firing every interval, returning
// its id.
func (l *Loop) SetInterval(interval time.Duration, t Task) uint64 {
	return l.schedule(interval, interval, t)
}

func (l *Loop) schedule(delay, interval time.Duration, t Task) uint64 {
	l.nextID++
	id := l.nextID
	heap.Push(&l.timers, &timerEntry{
		id:       id,
		due:      l.clock().Add(delay),
		interval: interval,
		task:     t,
	})
	return id
}

// ClearTimer cancels a pending timer (§4.9 "records the id; the next pop for
// that id discards it"). Cancelling an id that has already fired or was
// never issued is a harmless no-op.
func (l *Loop) ClearTimer(id uint64) {
	l.cancelled[id] = true
}

// drainMicrotasks runs every currently queued microtask to completion,
// including ones newly enqueued by earlier ones in the same drain (§4.9
// "drain the microtask queue to empty").
func (l *Loop) drainMicrotasks() {
	for len(l.microtasks) > 0 {
		t := l.microtasks[0]
		l.microtasks = l.microtasks[1:]
		t()
	}
}

// runDueTimers pops and runs every timer due at or before now, re-inserting
// interval timers at now+interval (§4.9 "process the timer heap up to
// now(), re-inserting interval timers").
func (l *Loop) runDueTimers() {
	now := l.clock()
	for len(l.timers) > 0 && !l.timers[0].due.After(now) {
		entry := heap.Pop(&l.timers).(*timerEntry)
		if l.cancelled[entry.id] {
			delete(l.cancelled, entry.id)
			continue
		}
		entry.task()
		l.drainMicrotasks()
		if entry.interval > 0 && !l.cancelled[entry.id] {
			entry.due = now.Add(entry.interval)
			heap.Push(&l.timers, entry)
		}
	}
}

// Run alternates microtask drains and timer phases until both structures
// are empty (§4.9 "The loop terminates when both structures are empty
// simultaneously"). Between timer-phase iterations it sleeps until the
// nearest timer's due time rather than busy-polling.
func (l *Loop) Run() {
	for {
		l.drainMicrotasks()
		if len(l.timers) == 0 {
			return
		}
		wait := l.timers[0].due.Sub(l.clock())
		if wait > 0 {
			time.Sleep(wait)
		}
		l.runDueTimers()
	}
}

// RunOnce drains microtasks and processes whatever timers are already due,
// without sleeping — used by hosts driving the loop from their own I/O
// multiplexer instead of letting Run own the thread.
func (l *Loop) RunOnce() {
	l.drainMicrotasks()
	l.runDueTimers()
}

// Idle reports whether both the microtask queue and the timer heap are
// empty (§4.9 termination condition).
func (l *Loop) Idle() bool {
	return len(l.microtasks) == 0 && len(l.timers) == 0
}

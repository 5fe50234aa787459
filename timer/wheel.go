/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2021 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

// Package timer provides a per-reactor deadline wheel: a single min-heap of
// pending callbacks keyed on absolute expiry, polled once per reactor.wait
// iteration instead of running its own goroutine or OS timer per entry.
package timer

import (
	"container/heap"
	"sync"
	"time"
)

// entry is one pending deadline. index is maintained by heap.Fix/Remove for
// O(log n) cancellation.
type entry struct {
	deadline  time.Time
	fn        func()
	index     int
	cancelled bool
}

type entryHeap []*entry

func (h entryHeap) Len() int            { return len(h) }
func (h entryHeap) Less(i, j int) bool  { return h[i].deadline.Before(h[j].deadline) }
func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap) Push(x interface{}) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// Handle is a cancellation token for a scheduled callback.
type Handle struct {
	e *entry
	w *Wheel
}

// Cancel removes the callback if it has not yet fired. It is safe to call
// more than once, and safe to call after the callback has already fired.
func (h Handle) Cancel() {
	h.w.mu.Lock()
	defer h.w.mu.Unlock()

	if h.e.index < 0 || h.e.cancelled {
		return
	}
	h.e.cancelled = true
	heap.Remove(&h.w.heap, h.e.index)
}

// Wheel is a single reactor's deadline queue. It is not safe to share a
// Wheel across reactors; each reactor owns exactly one.
type Wheel struct {
	mu   sync.Mutex
	heap entryHeap
}

// New returns an empty Wheel.
func New() *Wheel {
	w := &Wheel{}
	heap.Init(&w.heap)
	return w
}

// Schedule arranges for fn to run (via Fire, from the reactor's poll loop)
// at or after deadline. The returned Handle may be used to cancel it.
func (w *Wheel) Schedule(deadline time.Time, fn func()) Handle {
	w.mu.Lock()
	defer w.mu.Unlock()

	e := &entry{deadline: deadline, fn: fn}
	heap.Push(&w.heap, e)
	return Handle{e: e, w: w}
}

// NextDeadline returns the earliest pending deadline and true, or the zero
// time and false if the wheel is empty. The reactor's poll loop uses this
// to bound its wait timeout.
func (w *Wheel) NextDeadline() (time.Time, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.heap) == 0 {
		return time.Time{}, false
	}
	return w.heap[0].deadline, true
}

// Fire pops and runs every entry whose deadline is at or before now,
// returning how many callbacks ran. It is called once per reactor.wait
// iteration.
func (w *Wheel) Fire(now time.Time) int {
	w.mu.Lock()
	var due []*entry
	for len(w.heap) > 0 && !w.heap[0].deadline.After(now) {
		e := heap.Pop(&w.heap).(*entry)
		due = append(due, e)
	}
	w.mu.Unlock()

	for _, e := range due {
		e.fn()
	}
	return len(due)
}

// Len reports how many callbacks are still pending.
func (w *Wheel) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.heap)
}

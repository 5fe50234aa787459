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

// Package executor provides Strand, a mutex-guarded FIFO of callbacks that
// guarantees strict in-order execution even when scheduled from multiple
// goroutines — the ordering guarantee the reactor's per-socket callbacks
// depend on (SPEC_FULL.md §4.7: "a strand preserves strict FIFO").
package executor

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

// goroutineID extracts the calling goroutine's runtime-assigned id by
// parsing the "goroutine N [...]" header of a stack trace. Go exposes no
// public API for this; it is the standard workaround for goroutine-local
// bookkeeping, used here only to back IsRunningInCurrentThread.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := bytes.TrimPrefix(buf[:n], []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	id, _ := strconv.ParseInt(string(b), 10, 64)
	return id
}

// Strand serializes a queue of func() callbacks: at most one runs at a
// time, in the order they were posted, regardless of which goroutine
// posted them.
type Strand struct {
	mu      sync.Mutex
	queue   []func()
	running bool

	activeGoroutine int64 // 0 means "not currently running anywhere"
}

// NewStrand returns an empty Strand.
func NewStrand() *Strand { return &Strand{} }

// Post appends fn to the strand's queue. If no callback is currently
// running, Post runs the queue synchronously on the calling goroutine,
// draining it until empty; otherwise fn is picked up by whichever
// goroutine is already draining the queue.
func (s *Strand) Post(fn func()) {
	s.mu.Lock()
	s.queue = append(s.queue, fn)
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.drain()
}

// PostSequence splices fns and a trailing fn atomically onto the queue's
// tail, preserving fns' relative order and running after anything already
// queued. Equivalent to calling Post once per entry except the whole batch
// is inserted under a single lock, so no other Post can interleave within
// it.
func (s *Strand) PostSequence(fns []func(), trailing func()) {
	s.mu.Lock()
	s.queue = append(s.queue, fns...)
	if trailing != nil {
		s.queue = append(s.queue, trailing)
	}
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.drain()
}

// drain runs queued callbacks until the queue is empty, tagging itself as
// the active goroutine for the duration of each callback.
func (s *Strand) drain() {
	gid := goroutineID()

	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.running = false
			s.mu.Unlock()
			return
		}
		fn := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		atomic.StoreInt64(&s.activeGoroutine, gid)
		fn()
		atomic.StoreInt64(&s.activeGoroutine, 0)
	}
}

// IsRunningInCurrentThread reports whether the calling goroutine is the one
// currently draining the strand's queue. Since Go has no native thread
// identity, this is emulated with a tagged atomic holding the draining
// goroutine's runtime id, compared against the caller's own.
func (s *Strand) IsRunningInCurrentThread() bool {
	active := atomic.LoadInt64(&s.activeGoroutine)
	return active != 0 && active == goroutineID()
}

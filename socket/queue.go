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

package socket

import (
	"net"
	"sync"
	"time"

	"github.com/sabouaram/ntio/blob"
	liberr "github.com/sabouaram/ntio/errors"

	"github.com/google/uuid"
)

// watermarkSide tracks which boundary a queue's watermark gate is currently
// armed to fire on. The gate strictly alternates High/Low: once High fires,
// only Low can fire next, and vice versa.
type watermarkSide uint8

const (
	watermarkArmedHigh watermarkSide = iota
	watermarkArmedLow
)

// watermarkGate is the shared one-shot alternating watermark bookkeeping
// used by SendQueue, ReceiveQueue and AcceptQueue alike (bytes for the first
// two, socket counts for AcceptQueue).
type watermarkGate struct {
	low, high int
	armed     watermarkSide
	blocked   bool
}

// observe re-evaluates the gate against the new aggregate total, returning
// which one-shot event (if any) just fired.
func (w *watermarkGate) observe(total int) (firedHigh, firedLow bool) {
	switch w.armed {
	case watermarkArmedHigh:
		if total >= w.high {
			w.armed = watermarkArmedLow
			w.blocked = true
			firedHigh = true
		}
	case watermarkArmedLow:
		if total <= w.low {
			w.armed = watermarkArmedHigh
			w.blocked = false
			firedLow = true
		}
	}
	return firedHigh, firedLow
}

// SendOptions controls how a SendQueueEntry is allowed to be batched.
type SendOptions struct {
	// MaxBuffers caps how many queue-head entries the write batcher may
	// coalesce into a single vectored syscall. Zero means "one at a time".
	MaxBuffers int

	// ZeroCopy requests MSG_ZEROCOPY / sendfile-style handling when the
	// underlying transport supports it.
	ZeroCopy bool
}

// SendQueueEntry is one pending outbound write.
type SendQueueEntry struct {
	ID         uint64
	Data       blob.Data
	Length     int
	DataOffset int
	Deadline   time.Time
	Token      uuid.UUID
	Options    SendOptions
	Callback   func(error)
	inFlight   int32
}

// Remaining reports the unsent tail length of the entry.
func (e *SendQueueEntry) Remaining() int { return e.Length - e.DataOffset }

// SendQueue is the per-socket ordered queue of outbound writes described by
// SendQueueEntry. Entries are assigned monotonically increasing ids; the
// queue tracks an aggregate byte total and exposes the one-shot alternating
// high/low watermark protocol.
type SendQueue struct {
	mu      sync.Mutex
	entries []*SendQueueEntry
	nextID  uint64
	total   int
	gate    watermarkGate
}

// NewSendQueue returns an empty send queue with the given byte watermarks.
func NewSendQueue(low, high int) *SendQueue {
	return &SendQueue{gate: watermarkGate{low: low, high: high}}
}

// Enqueue appends a new entry with a fresh id. If the queue is currently
// blocked by an unacknowledged high-watermark event, Enqueue rejects the
// call with KindWouldBlock instead of growing the queue further.
func (q *SendQueue) Enqueue(data blob.Data, opts SendOptions, cb func(error)) (uint64, bool, liberr.Error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.gate.blocked {
		return 0, false, liberr.KindWouldBlock.Error(nil)
	}

	id := q.nextID
	q.nextID++

	length := data.Len()
	q.entries = append(q.entries, &SendQueueEntry{
		ID:       id,
		Data:     data,
		Length:   length,
		Token:    uuid.New(),
		Options:  opts,
		Callback: cb,
	})
	q.total += length

	firedHigh, _ := q.gate.observe(q.total)
	return id, firedHigh, nil
}

// Len reports the current aggregate byte total across all queued entries.
func (q *SendQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.total
}

// Batch returns up to maxBuffers entries from the queue head that are
// eligible to be coalesced into a single vectored write: contiguous
// in-memory (non file-region) entries only. A file-region entry always
// terminates the batch (it is written separately), and if it is the first
// entry it is returned alone.
func (q *SendQueue) Batch(maxBuffers int) []*SendQueueEntry {
	q.mu.Lock()
	defer q.mu.Unlock()

	if maxBuffers <= 0 {
		maxBuffers = 1
	}

	var out []*SendQueueEntry
	for _, e := range q.entries {
		if e.Data.Kind() == blob.DataFileRegion {
			if len(out) == 0 {
				out = append(out, e)
			}
			break
		}
		out = append(out, e)
		if len(out) >= maxBuffers {
			break
		}
	}
	return out
}

// Advance records that n bytes of the queue head entry were written by the
// syscall layer. Entries that become fully drained are removed, their
// callback (if any) scheduled synchronously, and the aggregate total is
// decremented. Advance returns whether the low-watermark event fired.
func (q *SendQueue) Advance(n int) (firedLow bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for n > 0 && len(q.entries) > 0 {
		head := q.entries[0]
		remaining := head.Remaining()
		if n < remaining {
			head.DataOffset += n
			q.total -= n
			n = 0
			break
		}

		head.DataOffset = head.Length
		q.total -= remaining
		n -= remaining
		q.entries = q.entries[1:]

		if head.Callback != nil {
			head.Callback(nil)
		}
	}

	_, firedLow = q.gate.observe(q.total)
	return firedLow
}

// Cancel removes every entry tagged with token, invoking each callback with
// ErrCancelled, and returns how many entries were removed.
func (q *SendQueue) Cancel(token uuid.UUID) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.entries[:0:0]
	removed := 0
	for _, e := range q.entries {
		if e.Token == token {
			removed++
			q.total -= e.Remaining()
			if e.Callback != nil {
				e.Callback(ErrCancelled)
			}
			continue
		}
		kept = append(kept, e)
	}
	q.entries = kept
	q.gate.observe(q.total)
	return removed
}

// ErrCancelled is passed to SendQueueEntry/CallbackQueueEntry callbacks
// whose owning entry was removed via a matching cancellation token.
var ErrCancelled = liberr.KindCancelled.Error(nil)

// ReceiveQueue holds completed inbound Data values not yet consumed by the
// application, mirroring SendQueue's watermark protocol.
type ReceiveQueue struct {
	mu      sync.Mutex
	entries []blob.Data
	total   int
	gate    watermarkGate
}

// NewReceiveQueue returns an empty receive queue with the given byte
// watermarks.
func NewReceiveQueue(low, high int) *ReceiveQueue {
	return &ReceiveQueue{gate: watermarkGate{low: low, high: high}}
}

// Push appends a completed read. It returns whether the high-watermark
// event fired; the caller (the socket) is expected to hide its readable
// interest in that case.
func (q *ReceiveQueue) Push(d blob.Data) (firedHigh bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.entries = append(q.entries, d)
	q.total += d.Len()
	firedHigh, _ = q.gate.observe(q.total)
	return firedHigh
}

// Pop removes and returns the oldest queued Data value. It returns whether
// the low-watermark event fired.
func (q *ReceiveQueue) Pop() (d blob.Data, ok bool, firedLow bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) == 0 {
		return blob.Data{}, false, false
	}

	d = q.entries[0]
	q.entries = q.entries[1:]
	q.total -= d.Len()
	_, firedLow = q.gate.observe(q.total)
	return d, true, firedLow
}

// Len reports the current aggregate byte total across all queued entries.
func (q *ReceiveQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.total
}

// AcceptQueue holds accepted listener connections not yet handed to the
// application. Its watermark protocol counts sockets rather than bytes.
type AcceptQueue struct {
	mu      sync.Mutex
	entries []net.Conn
	gate    watermarkGate
}

// NewAcceptQueue returns an empty accept queue with the given socket-count
// watermarks.
func NewAcceptQueue(low, high int) *AcceptQueue {
	return &AcceptQueue{gate: watermarkGate{low: low, high: high}}
}

// Push appends an accepted connection. It returns whether the high-
// watermark event fired.
func (q *AcceptQueue) Push(c net.Conn) (firedHigh bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.entries = append(q.entries, c)
	firedHigh, _ = q.gate.observe(len(q.entries))
	return firedHigh
}

// Pop removes and returns the oldest accepted connection. It returns
// whether the low-watermark event fired.
func (q *AcceptQueue) Pop() (c net.Conn, ok bool, firedLow bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) == 0 {
		return nil, false, false
	}

	c = q.entries[0]
	q.entries = q.entries[1:]
	_, firedLow = q.gate.observe(len(q.entries))
	return c, true, firedLow
}

// Len reports the number of connections currently queued.
func (q *AcceptQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// CallbackState is the lifecycle of a CallbackQueueEntry.
type CallbackState uint8

const (
	CallbackPending CallbackState = iota
	CallbackActive
	CallbackCancelled
	CallbackCompleted
)

// CallbackOptions parametrizes a waiting accept/receive/send request.
type CallbackOptions struct {
	Token    uuid.UUID
	Deadline time.Time
	MinSize  int
	MaxSize  int
}

// CallbackQueueEntry pairs a waiting user request with its eventual
// readiness event.
type CallbackQueueEntry struct {
	State    CallbackState
	Callback func(CallbackState, interface{})
	Options  CallbackOptions
	timer    *time.Timer
}

// CallbackQueue is a FIFO of pending CallbackQueueEntry values. Readiness
// events pair queued entries with data/sockets in FIFO order.
type CallbackQueue struct {
	mu      sync.Mutex
	entries []*CallbackQueueEntry
}

// NewCallbackQueue returns an empty callback queue.
func NewCallbackQueue() *CallbackQueue { return &CallbackQueue{} }

// Push enqueues a new pending entry, arming its deadline timer if set.
func (q *CallbackQueue) Push(opts CallbackOptions, cb func(CallbackState, interface{})) *CallbackQueueEntry {
	q.mu.Lock()
	defer q.mu.Unlock()

	e := &CallbackQueueEntry{State: CallbackPending, Callback: cb, Options: opts}
	if !opts.Deadline.IsZero() {
		d := time.Until(opts.Deadline)
		e.timer = time.AfterFunc(d, func() { q.expire(e) })
	}
	q.entries = append(q.entries, e)
	return e
}

// expire marks e cancelled due to deadline and invokes its callback, unless
// it has already been resolved.
func (q *CallbackQueue) expire(e *CallbackQueueEntry) {
	q.mu.Lock()
	if e.State != CallbackPending {
		q.mu.Unlock()
		return
	}
	e.State = CallbackCancelled
	q.removeLocked(e)
	q.mu.Unlock()

	if e.Callback != nil {
		e.Callback(CallbackCancelled, nil)
	}
}

// Pop removes and returns the oldest pending entry, marking it active.
func (q *CallbackQueue) Pop() (*CallbackQueueEntry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, e := range q.entries {
		if e.State != CallbackPending {
			continue
		}
		e.State = CallbackActive
		if e.timer != nil {
			e.timer.Stop()
		}
		q.entries = append(q.entries[:i], q.entries[i+1:]...)
		return e, true
	}
	return nil, false
}

// Cancel removes every pending entry tagged with token, invoking callbacks
// with CallbackCancelled, and returns how many entries were removed.
func (q *CallbackQueue) Cancel(token uuid.UUID) int {
	q.mu.Lock()
	var toNotify []*CallbackQueueEntry
	kept := q.entries[:0:0]
	for _, e := range q.entries {
		if e.State == CallbackPending && e.Options.Token == token {
			e.State = CallbackCancelled
			if e.timer != nil {
				e.timer.Stop()
			}
			toNotify = append(toNotify, e)
			continue
		}
		kept = append(kept, e)
	}
	q.entries = kept
	q.mu.Unlock()

	for _, e := range toNotify {
		if e.Callback != nil {
			e.Callback(CallbackCancelled, nil)
		}
	}
	return len(toNotify)
}

// removeLocked removes e from the queue. Caller must hold q.mu.
func (q *CallbackQueue) removeLocked(e *CallbackQueueEntry) {
	for i, c := range q.entries {
		if c == e {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return
		}
	}
}

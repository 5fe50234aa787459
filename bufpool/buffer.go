/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package bufpool

import "sync/atomic"

// Buffer is a reference-counted, fixed-size byte buffer drawn from a Pool.
// It is the BlobBuffer of SPEC_FULL.md's data model: callers slice Bytes()
// for the portion currently in use and call Retain/Release to manage its
// lifetime across concurrent owners (a send queue entry and a socket's
// in-flight write, for instance).
type Buffer struct {
	pool     *Pool
	shardIdx uint64
	data     []byte
	refs     atomic.Int32
}

// Bytes returns the buffer's full backing slice. Callers needing a
// logical length shorter than the chunk size track it themselves (see
// Blob, which wraps slices of these buffers with a length cursor).
func (b *Buffer) Bytes() []byte { return b.data }

// Cap is the fixed chunk size of the pool this buffer was drawn from.
func (b *Buffer) Cap() int { return cap(b.data) }

// Retain increments the reference count; pair with a matching Release.
func (b *Buffer) Retain() {
	b.refs.Add(1)
}

// Release decrements the reference count and, if it reaches zero, returns
// the buffer to its pool shard's free list. Returns ErrDoubleRelease if
// the buffer was already fully released.
func (b *Buffer) Release() error {
	n := b.refs.Add(-1)
	if n < 0 {
		b.refs.Add(1) // undo: keep the counter from drifting further negative
		return ErrDoubleRelease
	}
	if n == 0 {
		b.pool.release(b)
	}
	return nil
}

// RefCount reports the buffer's current reference count, for tests and
// diagnostics only.
func (b *Buffer) RefCount() int32 { return b.refs.Load() }

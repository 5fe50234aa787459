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

// Package bufpool is the fixed-size chunked buffer arena the socket and
// blob layers draw their backing storage from: a sharded free-list pool of
// reference-counted byte buffers, sized so concurrent sockets rarely
// contend on the same shard's mutex.
package bufpool

import (
	"sync"
	"sync/atomic"

	"github.com/sabouaram/ntio/errors"
)

const shardCount = 16

// Pool is a sharded, size-class-bounded pool of fixed-size byte buffers.
// Every buffer handed out is reference-counted; callers must call Release
// exactly once per Acquire/Retain pair.
type Pool struct {
	chunkSize int
	shards    [shardCount]shard

	numPooled int64 // total buffers ever allocated into this pool (never decremented)
	numFree   int64 // buffers currently sitting in a shard's free list
}

type shard struct {
	mu   sync.Mutex
	free [][]byte
}

// New creates a Pool whose buffers are all chunkSize bytes.
func New(chunkSize int) *Pool {
	if chunkSize <= 0 {
		chunkSize = 32 * 1024
	}
	return &Pool{chunkSize: chunkSize}
}

func (p *Pool) shardFor(token uint64) *shard {
	return &p.shards[token%shardCount]
}

// Acquire returns a refcounted Buffer backed by a chunkSize-byte slice,
// either reused from a shard's free list or freshly allocated.
func (p *Pool) Acquire() *Buffer {
	shardIdx := uint64(acquireCounter.Add(1))
	s := p.shardFor(shardIdx)

	s.mu.Lock()
	var raw []byte
	if n := len(s.free); n > 0 {
		raw = s.free[n-1]
		s.free = s.free[:n-1]
		atomic.AddInt64(&p.numFree, -1)
	}
	s.mu.Unlock()

	if raw == nil {
		raw = make([]byte, p.chunkSize)
		atomic.AddInt64(&p.numPooled, 1)
	}

	b := &Buffer{pool: p, shardIdx: shardIdx, data: raw}
	b.refs.Store(1)
	return b
}

var acquireCounter atomic.Uint64

func (p *Pool) release(b *Buffer) {
	s := p.shardFor(b.shardIdx)
	s.mu.Lock()
	s.free = append(s.free, b.data[:cap(b.data)])
	s.mu.Unlock()
	atomic.AddInt64(&p.numFree, 1)
}

// NumPooled is the count of buffers ever allocated into this pool
// (monotonic; a reused buffer does not increment it).
func (p *Pool) NumPooled() int64 { return atomic.LoadInt64(&p.numPooled) }

// NumAvailable is the count of buffers currently idle in a shard free list.
func (p *Pool) NumAvailable() int64 { return atomic.LoadInt64(&p.numFree) }

// NumAllocated is the count of buffers currently checked out (held by at
// least one live reference): NumPooled - NumAvailable by construction,
// which is the pool's core capacity invariant.
func (p *Pool) NumAllocated() int64 {
	return atomic.LoadInt64(&p.numPooled) - atomic.LoadInt64(&p.numFree)
}

// ChunkSize is the fixed size of every buffer this pool hands out.
func (p *Pool) ChunkSize() int { return p.chunkSize }

// ErrDoubleRelease is returned when Release is called on a buffer whose
// refcount has already reached zero.
var ErrDoubleRelease = errors.CodeError(errors.MinPkgBufPool).Error()

func init() {
	errors.RegisterIdFctMessage(errors.CodeError(errors.MinPkgBufPool), func(errors.CodeError) string {
		return "buffer pool: double release"
	})
}

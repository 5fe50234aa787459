/*
 * MIT License
 *
 * Copyright (c) 2019 Nicolas JUHEL
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

// Package sem is the bottom layer of the semaphore stack: a worker-slot
// limiter built either on golang.org/x/sync/semaphore (fixed concurrency)
// or on sync.WaitGroup (unlimited, tracking only). The facade and its
// progress-bar decorators in ../nobar and ../bar are built on top of it.
package sem

import (
	"context"
	"runtime"
	"sync"
	"time"

	xsem "golang.org/x/sync/semaphore"
)

// Sem limits how many workers may run concurrently and doubles as a
// context.Context cancelled by DeferMain.
type Sem struct {
	ctx    context.Context
	cancel context.CancelFunc

	n int64 // configured limit; -1 means unlimited

	weighted *xsem.Weighted // nil when n < 0
	wg       sync.WaitGroup // used only when n < 0
}

// MaxSimultaneous returns the number of simultaneous workers used when a
// caller asks for nbrSimultaneous == 0: the machine's GOMAXPROCS.
func MaxSimultaneous() int {
	return runtime.GOMAXPROCS(0)
}

// SetSimultaneous clamps n to [1, MaxSimultaneous()], returning
// MaxSimultaneous() itself for any n outside that range.
func SetSimultaneous(n int64) int64 {
	max := int64(MaxSimultaneous())
	if n < 1 || n > max {
		return max
	}
	return n
}

// New returns a Sem bound to ctx. nbrSimultaneous == 0 uses MaxSimultaneous
// slots, nbrSimultaneous > 0 uses that many, and nbrSimultaneous < 0
// requests unlimited concurrency (only WaitAll bookkeeping applies).
func New(ctx context.Context, nbrSimultaneous int) *Sem {
	c, cancel := context.WithCancel(ctx)
	s := &Sem{ctx: c, cancel: cancel}

	switch {
	case nbrSimultaneous == 0:
		s.n = int64(MaxSimultaneous())
		s.weighted = xsem.NewWeighted(s.n)
	case nbrSimultaneous < 0:
		s.n = -1
	default:
		s.n = int64(nbrSimultaneous)
		s.weighted = xsem.NewWeighted(s.n)
	}
	return s
}

// New returns an independent sibling Sem with the same configured limit,
// derived from this one's own (already-cancellable) context.
func (s *Sem) New() *Sem {
	return New(s.ctx, int(s.n))
}

// Weighted returns the configured concurrency limit, or -1 when unlimited.
func (s *Sem) Weighted() int64 {
	return s.n
}

// NewWorker blocks until a slot is available or the context is done.
func (s *Sem) NewWorker() error {
	if s.weighted != nil {
		return s.weighted.Acquire(s.ctx, 1)
	}
	s.wg.Add(1)
	return nil
}

// NewWorkerTry acquires a slot without blocking.
func (s *Sem) NewWorkerTry() bool {
	if s.weighted != nil {
		return s.weighted.TryAcquire(1)
	}
	s.wg.Add(1)
	return true
}

// DeferWorker releases a slot acquired by NewWorker/NewWorkerTry.
func (s *Sem) DeferWorker() {
	if s.weighted != nil {
		s.weighted.Release(1)
		return
	}
	s.wg.Done()
}

// WaitAll blocks until every acquired slot has been released.
func (s *Sem) WaitAll() error {
	if s.weighted != nil {
		if err := s.weighted.Acquire(s.ctx, s.n); err != nil {
			return err
		}
		s.weighted.Release(s.n)
		return nil
	}
	s.wg.Wait()
	return nil
}

// DeferMain cancels the Sem's context. Safe to call more than once.
func (s *Sem) DeferMain() {
	s.cancel()
}

func (s *Sem) Deadline() (time.Time, bool) { return s.ctx.Deadline() }
func (s *Sem) Done() <-chan struct{}       { return s.ctx.Done() }
func (s *Sem) Err() error                  { return s.ctx.Err() }
func (s *Sem) Value(key any) any           { return s.ctx.Value(key) }

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

// Package nobar is the no-progress-bar Bar implementation: it satisfies
// types.Bar purely by delegating worker bookkeeping to the wrapped
// Semaphore, while every progress-tracking method is a no-op. The facade
// package hands this out when a caller asks for a Bar from a Semaphore
// built without progress-bar support.
package nobar

import (
	"context"
	"sync/atomic"
	"time"

	semtps "github.com/sabouaram/ntio/semaphore/types"
)

// Bar wraps a Semaphore and discards every progress update made to it.
type Bar struct {
	sem       semtps.SemPgb
	completed atomic.Bool
}

// New returns a Bar bound to sem. total and drop are accepted for
// signature parity with the progress-bar-backed implementation but are
// otherwise unused here.
func New(sem semtps.SemPgb, total int64, drop bool) *Bar {
	return &Bar{sem: sem}
}

func (b *Bar) NewWorker() error      { return b.sem.NewWorker() }
func (b *Bar) NewWorkerTry() bool    { return b.sem.NewWorkerTry() }
func (b *Bar) DeferWorker()          { b.sem.DeferWorker() }
func (b *Bar) WaitAll() error        { return b.sem.WaitAll() }
func (b *Bar) Weighted() int64       { return b.sem.Weighted() }
func (b *Bar) New() semtps.Semaphore { return b.sem.New() }

// DeferMain marks the bar completed and cancels the wrapped Semaphore.
func (b *Bar) DeferMain() {
	b.completed.Store(true)
	b.sem.DeferMain()
}

func (b *Bar) Inc(n int)                  {}
func (b *Bar) Inc64(n int64)               {}
func (b *Bar) Dec(n int)                  {}
func (b *Bar) Dec64(n int64)               {}
func (b *Bar) Reset(total, current int64) {}
func (b *Bar) Complete()                  { b.completed.Store(true) }
func (b *Bar) Completed() bool            { return true }
func (b *Bar) Total() int64               { return 0 }
func (b *Bar) Current() int64             { return 0 }
func (b *Bar) GetMPB() interface{}        { return nil }

func (b *Bar) Deadline() (time.Time, bool) { return b.sem.Deadline() }
func (b *Bar) Done() <-chan struct{}       { return b.sem.Done() }
func (b *Bar) Err() error                  { return b.sem.Err() }
func (b *Bar) Value(key any) any           { return b.sem.Value(key) }

var _ context.Context = (*Bar)(nil)
var _ semtps.Bar = (*Bar)(nil)
var _ semtps.BarMPB = (*Bar)(nil)

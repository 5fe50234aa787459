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

// Package bar is the progress-bar-backed Bar implementation: it keeps its
// own atomic total/current counters (so callers always get accurate
// values even when no real terminal bar is attached) and mirrors every
// update onto an *mpb.Bar when the wrapped Semaphore was built with
// progress-bar support.
package bar

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	semtps "github.com/sabouaram/ntio/semaphore/types"
)

// Bar tracks progress for work items gated by a Semaphore's worker slots.
type Bar struct {
	sem semtps.SemPgb

	total   atomic.Int64
	current atomic.Int64
	drop    bool

	mpbBar *mpb.Bar // nil when sem carries no progress container
}

// New returns a Bar of the given total bound to sem. If sem.GetMPB()
// returns a non-nil *mpb.Progress, a real terminal bar is attached;
// drop controls whether that bar is removed from the display (true) or
// left showing 100% (false) once Complete/DeferMain runs.
func New(sem semtps.SemPgb, total int64, drop bool) *Bar {
	b := &Bar{sem: sem, drop: drop}
	b.total.Store(total)

	if container, _ := sem.GetMPB().(*mpb.Progress); container != nil {
		b.mpbBar = container.AddBar(total,
			mpb.PrependDecorators(decor.Name("")),
			mpb.AppendDecorators(decor.Percentage()),
		)
	}

	return b
}

// NewLabeled is like New but attaches title/desc decorators and, when prev
// is a Bar backed by a real *mpb.Bar, queues the new bar to start only once
// prev completes. Used by the facade's BarBytes/BarTime/BarNumber helpers.
func NewLabeled(sem semtps.SemPgb, title, desc string, total int64, drop bool, prev semtps.Bar) *Bar {
	b := &Bar{sem: sem, drop: drop}
	b.total.Store(total)

	container, _ := sem.GetMPB().(*mpb.Progress)
	if container == nil {
		return b
	}

	opts := []mpb.BarOption{
		mpb.PrependDecorators(decor.Name(title), decor.Name(" "+desc)),
		mpb.AppendDecorators(decor.Percentage()),
	}
	if prevMPB, ok := prev.(semtps.BarMPB); ok {
		if p, _ := prevMPB.GetMPB().(*mpb.Bar); p != nil {
			opts = append(opts, mpb.BarQueueAfter(p))
		}
	}

	b.mpbBar = container.AddBar(total, opts...)
	return b
}

func (b *Bar) NewWorker() error      { return b.sem.NewWorker() }
func (b *Bar) NewWorkerTry() bool    { return b.sem.NewWorkerTry() }
func (b *Bar) WaitAll() error        { return b.sem.WaitAll() }
func (b *Bar) Weighted() int64       { return b.sem.Weighted() }
func (b *Bar) New() semtps.Semaphore { return b.sem.New() }

// DeferWorker increments the bar by one completed unit of work, then
// releases the worker slot.
func (b *Bar) DeferWorker() {
	b.Inc(1)
	b.sem.DeferWorker()
}

// DeferMain finalizes the bar (dropping or completing the underlying mpb
// bar, if any) and cancels the wrapped Semaphore.
func (b *Bar) DeferMain() {
	b.finish()
	b.sem.DeferMain()
}

func (b *Bar) Inc(n int) { b.Inc64(int64(n)) }

func (b *Bar) Inc64(n int64) {
	b.current.Add(n)
	if b.mpbBar != nil {
		b.mpbBar.IncrInt64(n)
	}
}

func (b *Bar) Dec(n int) { b.Dec64(int64(n)) }

func (b *Bar) Dec64(n int64) {
	b.current.Add(-n)
	if b.mpbBar != nil {
		b.mpbBar.IncrInt64(-n)
	}
}

func (b *Bar) Reset(total, current int64) {
	b.total.Store(total)
	b.current.Store(current)
	if b.mpbBar != nil {
		b.mpbBar.SetCurrent(current)
	}
}

// Complete marks the bar as fully progressed.
func (b *Bar) Complete() {
	b.finish()
}

func (b *Bar) finish() {
	total := b.total.Load()
	b.current.Store(total)
	if b.mpbBar != nil {
		if b.drop {
			b.mpbBar.Abort(true)
		} else {
			b.mpbBar.SetCurrent(total)
		}
	}
}

// Completed reports whether the bar has finished. Without a real progress
// container there is nothing to track, so it is always true.
func (b *Bar) Completed() bool {
	if b.mpbBar == nil {
		return true
	}
	return b.mpbBar.Completed()
}

func (b *Bar) Total() int64   { return b.total.Load() }
func (b *Bar) Current() int64 { return b.current.Load() }

// GetMPB returns the underlying *mpb.Bar, or nil when none is attached.
func (b *Bar) GetMPB() interface{} {
	if b.mpbBar == nil {
		return nil
	}
	return b.mpbBar
}

func (b *Bar) Deadline() (time.Time, bool) { return b.sem.Deadline() }
func (b *Bar) Done() <-chan struct{}       { return b.sem.Done() }
func (b *Bar) Err() error                  { return b.sem.Err() }
func (b *Bar) Value(key any) any           { return b.sem.Value(key) }

var _ context.Context = (*Bar)(nil)
var _ semtps.Bar = (*Bar)(nil)
var _ semtps.BarMPB = (*Bar)(nil)

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

// Package types declares the interfaces shared between the semaphore
// facade and its nobar/bar/sem implementations, breaking the import cycle
// that would otherwise exist between them.
package types

import "context"

// Semaphore bounds how many workers may run at once and doubles as a
// context.Context that is cancelled by DeferMain: callers select on it the
// same way they would select on any request-scoped context.
type Semaphore interface {
	context.Context

	// NewWorker blocks until a slot is available or ctx is done.
	NewWorker() error
	// NewWorkerTry acquires a slot without blocking.
	NewWorkerTry() bool
	// DeferWorker releases a slot acquired by NewWorker/NewWorkerTry.
	DeferWorker()
	// DeferMain cancels the semaphore's context. Safe to call more than once.
	DeferMain()
	// WaitAll blocks until every acquired slot has been released.
	WaitAll() error
	// Weighted returns the configured concurrency limit, or -1 when unlimited.
	Weighted() int64
	// New returns an independent sibling semaphore with the same limit,
	// derived from the same parent context.
	New() Semaphore
}

// SemPgb is a Semaphore that can also hand out progress bars bound to its
// own worker bookkeeping.
type SemPgb interface {
	Semaphore

	// Clone returns an independent sibling semaphore that shares this one's
	// progress-bar container, if any.
	Clone() Semaphore

	BarBytes(title, desc string, total int64, drop bool, prev Bar) Bar
	BarTime(title, desc string, total int64, drop bool, prev Bar) Bar
	BarNumber(title, desc string, total int64, drop bool, prev Bar) Bar
	BarOpts(total int64, drop bool) Bar

	// GetMPB returns the underlying *mpb.Progress container, or nil when
	// this semaphore was created without progress-bar support.
	GetMPB() interface{}
}

// Bar is a progress indicator bound to a Semaphore: acquiring/releasing a
// worker through it also advances the bar.
type Bar interface {
	context.Context

	NewWorker() error
	NewWorkerTry() bool
	DeferWorker()
	DeferMain()
	WaitAll() error
	Weighted() int64
	New() Semaphore

	Inc(n int)
	Inc64(n int64)
	Dec(n int)
	Dec64(n int64)
	Reset(total, current int64)
	Complete()
	Completed() bool
	Total() int64
	Current() int64
}

// BarMPB is implemented by Bar values that can expose the underlying
// *mpb.Bar handle (nil when no progress container backs them).
type BarMPB interface {
	GetMPB() interface{}
}

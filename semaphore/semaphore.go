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

// Package semaphore caps how many workers (goroutines processing sockets,
// DNS lookups, or any other bounded-concurrency task) run at once, and
// optionally renders their progress as terminal bars. It is a thin facade
// over ./sem (the worker-slot limiter), handing out ./nobar or ./bar Bar
// values depending on whether progress-bar support was requested.
package semaphore

import (
	"context"

	"github.com/vbauerster/mpb/v8"

	"github.com/sabouaram/ntio/semaphore/bar"
	"github.com/sabouaram/ntio/semaphore/nobar"
	libsem "github.com/sabouaram/ntio/semaphore/sem"
	semtps "github.com/sabouaram/ntio/semaphore/types"
)

// MaxSimultaneous returns the concurrency used when New is called with
// nbrSimultaneous == 0: the machine's GOMAXPROCS.
func MaxSimultaneous() int64 {
	return int64(libsem.MaxSimultaneous())
}

// SetSimultaneous clamps n to [1, MaxSimultaneous()].
func SetSimultaneous(n int64) int64 {
	return libsem.SetSimultaneous(n)
}

type semaphore struct {
	*libsem.Sem
	progress *mpb.Progress
}

// New returns a Semaphore limiting concurrency to nbrSimultaneous workers
// (0 means MaxSimultaneous, negative means unlimited). withProgress
// attaches an *mpb.Progress container so BarBytes/BarTime/BarNumber/BarOpts
// render real terminal progress bars instead of handing out no-ops.
func New(ctx context.Context, nbrSimultaneous int, withProgress bool) semtps.SemPgb {
	s := &semaphore{Sem: libsem.New(ctx, nbrSimultaneous)}
	if withProgress {
		s.progress = mpb.New(mpb.WithWidth(64))
	}
	return s
}

// New returns an independent sibling Semaphore with the same limit and a
// fresh (unshared) progress-bar container, if any.
func (s *semaphore) New() semtps.Semaphore {
	out := &semaphore{Sem: s.Sem.New()}
	if s.progress != nil {
		out.progress = mpb.New(mpb.WithWidth(64))
	}
	return out
}

// Clone returns an independent sibling Semaphore that shares this one's
// progress-bar container, so bars created from either appear in the same
// terminal display.
func (s *semaphore) Clone() semtps.Semaphore {
	return &semaphore{Sem: s.Sem.New(), progress: s.progress}
}

// GetMPB returns the underlying *mpb.Progress container, or nil when this
// Semaphore was created without progress-bar support.
func (s *semaphore) GetMPB() interface{} {
	if s.progress == nil {
		return nil
	}
	return s.progress
}

func (s *semaphore) newBar(total int64, drop bool) semtps.Bar {
	if s.progress == nil {
		return nobar.New(s, total, drop)
	}
	return bar.New(s, total, drop)
}

func (s *semaphore) newLabeledBar(title, desc string, total int64, drop bool, prev semtps.Bar) semtps.Bar {
	if s.progress == nil {
		return nobar.New(s, total, drop)
	}
	return bar.NewLabeled(s, title, desc, total, drop, prev)
}

// BarBytes returns a Bar suited to byte-counted progress (e.g. downloads).
func (s *semaphore) BarBytes(title, desc string, total int64, drop bool, prev semtps.Bar) semtps.Bar {
	return s.newLabeledBar(title, desc, total, drop, prev)
}

// BarTime returns a Bar suited to elapsed-time-style progress.
func (s *semaphore) BarTime(title, desc string, total int64, drop bool, prev semtps.Bar) semtps.Bar {
	return s.newLabeledBar(title, desc, total, drop, prev)
}

// BarNumber returns a Bar suited to plain item-count progress.
func (s *semaphore) BarNumber(title, desc string, total int64, drop bool, prev semtps.Bar) semtps.Bar {
	return s.newLabeledBar(title, desc, total, drop, prev)
}

// BarOpts returns an unlabeled Bar, for callers that render their own
// decorators or don't need one at all.
func (s *semaphore) BarOpts(total int64, drop bool) semtps.Bar {
	return s.newBar(total, drop)
}

var _ semtps.SemPgb = (*semaphore)(nil)
var _ semtps.BarMPB = (*semaphore)(nil)

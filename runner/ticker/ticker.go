/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

// Package ticker runs a function on a fixed interval until stopped or its
// context is cancelled: rate limiter refills, cache sweeps, resolver TTL
// eviction and other periodic housekeeping in this module go through one of
// these instead of a bare time.Ticker.
package ticker

import (
	"context"
	"fmt"
	"sync"
	"time"

	errpool "github.com/sabouaram/ntio/errors/pool"
)

const (
	defaultDuration = 30 * time.Second
	minDuration     = time.Millisecond
)

// Func is invoked on every tick. It receives the running context and the
// underlying *time.Ticker (e.g. to Reset it from within the callback).
type Func func(ctx context.Context, tck *time.Ticker) error

// Ticker is a restartable periodic task with uptime and error tracking.
type Ticker interface {
	// Start begins ticking every interval and returns immediately; if
	// already running, the previous instance is stopped first.
	Start(ctx context.Context) error
	// Stop cancels the running instance's context and waits for it to
	// finish. Safe to call when not running.
	Stop(ctx context.Context) error
	// Restart is Stop followed by Start.
	Restart(ctx context.Context) error
	// IsRunning reports whether the ticker is currently running.
	IsRunning() bool
	// Uptime returns how long the current run has been going, or zero
	// when not running.
	Uptime() time.Duration
	// ErrorsLast returns the most recently captured error, or nil.
	ErrorsLast() error
	// ErrorsList returns every error captured since the last Start.
	ErrorsList() []error
}

type ticker struct {
	mu sync.Mutex

	interval time.Duration
	fn       Func

	running   bool
	stopping  bool
	startedAt time.Time
	cancel    context.CancelFunc
	done      chan struct{}

	errs errpool.Pool
}

// New returns a Ticker that invokes fn every d. d below one millisecond
// (including zero and negative) falls back to a 30 second default. fn may
// be nil: each tick then records an "invalid function" error instead of
// panicking.
func New(d time.Duration, fn Func) Ticker {
	if d < minDuration {
		d = defaultDuration
	}
	return &ticker{
		interval: d,
		fn:       fn,
		errs:     errpool.New(),
	}
}

func (t *ticker) Start(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("ticker: invalid context: nil")
	}

	t.mu.Lock()
	running := t.running
	t.mu.Unlock()

	if running {
		_ = t.Stop(ctx)
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	t.mu.Lock()
	t.cancel = cancel
	t.done = done
	t.running = true
	t.startedAt = time.Now()
	t.errs.Clear()
	fn := t.fn
	interval := t.interval
	t.mu.Unlock()

	go t.run(runCtx, done, fn, interval)

	return nil
}

func (t *ticker) run(ctx context.Context, done chan struct{}, fn Func, interval time.Duration) {
	defer close(done)
	defer t.finish()

	tck := time.NewTicker(interval)
	defer tck.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tck.C:
			t.tick(ctx, tck, fn)
		}
	}
}

func (t *ticker) tick(ctx context.Context, tck *time.Ticker, fn Func) {
	defer func() {
		if r := recover(); r != nil {
			t.errs.Add(fmt.Errorf("ticker: recovered panic: %v", r))
		}
	}()

	var err error
	if fn == nil {
		err = fmt.Errorf("invalid function: nil")
	} else {
		err = fn(ctx, tck)
	}
	if err != nil {
		t.errs.Add(err)
	}
}

func (t *ticker) finish() {
	t.mu.Lock()
	t.running = false
	t.startedAt = time.Time{}
	t.mu.Unlock()
}

func (t *ticker) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.running || t.stopping {
		t.mu.Unlock()
		return nil
	}
	t.stopping = true
	cancel := t.cancel
	done := t.done
	t.mu.Unlock()

	cancel()
	<-done

	t.mu.Lock()
	t.running = false
	t.stopping = false
	t.startedAt = time.Time{}
	t.mu.Unlock()

	return nil
}

func (t *ticker) Restart(ctx context.Context) error {
	_ = t.Stop(ctx)
	return t.Start(ctx)
}

func (t *ticker) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *ticker) Uptime() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running || t.startedAt.IsZero() {
		return 0
	}
	return time.Since(t.startedAt)
}

func (t *ticker) ErrorsLast() error {
	return t.errs.Last()
}

func (t *ticker) ErrorsList() []error {
	return t.errs.Slice()
}

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

// Package startStop wraps a pair of start/stop functions into a
// restartable, self-monitoring background task: reactors, resolver
// listeners and any other long-lived worker in this module launch through
// one of these so callers get uptime tracking and error history for free.
package startStop

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// FuncStart is launched in its own goroutine by Start and must return once
// its context is done.
type FuncStart func(ctx context.Context) error

// FuncStop is invoked by Stop to tell a running FuncStart to wind down.
type FuncStop func(ctx context.Context) error

// StartStop is a restartable background task with uptime and error
// tracking.
type StartStop interface {
	// Start launches start in its own goroutine and returns immediately;
	// if already running, the previous instance is stopped first.
	Start(ctx context.Context) error
	// Stop cancels the running instance's context, waits for it to
	// return, then runs stop. Safe to call when not running.
	Stop(ctx context.Context) error
	// Restart is Stop followed by Start.
	Restart(ctx context.Context) error
	// IsRunning reports whether a start function is currently executing.
	IsRunning() bool
	// Uptime returns how long the current run has been going, or zero
	// when not running.
	Uptime() time.Duration
	// ErrorsLast returns the most recently captured error, or nil.
	ErrorsLast() error
	// ErrorsList returns every error captured since the last Start.
	ErrorsList() []error
}

type runner struct {
	mu sync.Mutex

	start FuncStart
	stop  FuncStop

	running   bool
	stopping  bool
	startedAt time.Time
	cancel    context.CancelFunc
	done      chan struct{}

	errs []error
}

// New returns a StartStop wrapping start/stop. Either may be nil: calling
// the corresponding lifecycle method then records an "invalid ... function"
// error instead of panicking.
func New(start FuncStart, stop FuncStop) StartStop {
	return &runner{start: start, stop: stop}
}

func (r *runner) Start(ctx context.Context) error {
	r.mu.Lock()
	running := r.running
	r.mu.Unlock()

	if running {
		_ = r.Stop(ctx)
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	r.mu.Lock()
	r.cancel = cancel
	r.done = done
	r.running = true
	r.startedAt = time.Now()
	r.errs = nil
	fn := r.start
	r.mu.Unlock()

	go func() {
		defer close(done)

		var err error
		if fn == nil {
			err = fmt.Errorf("invalid start function: nil")
		} else {
			err = fn(runCtx)
		}

		r.mu.Lock()
		if err != nil {
			r.errs = append(r.errs, err)
		}
		r.running = false
		r.startedAt = time.Time{}
		r.mu.Unlock()
	}()

	return nil
}

func (r *runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.running || r.stopping {
		r.mu.Unlock()
		return nil
	}
	r.stopping = true
	cancel := r.cancel
	done := r.done
	fn := r.stop
	r.mu.Unlock()

	cancel()
	<-done

	var err error
	if fn == nil {
		err = fmt.Errorf("invalid stop function: nil")
	} else {
		err = fn(ctx)
	}

	r.mu.Lock()
	if err != nil {
		r.errs = append(r.errs, err)
	}
	r.running = false
	r.stopping = false
	r.startedAt = time.Time{}
	r.mu.Unlock()

	return nil
}

func (r *runner) Restart(ctx context.Context) error {
	_ = r.Stop(ctx)
	return r.Start(ctx)
}

func (r *runner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

func (r *runner) Uptime() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running || r.startedAt.IsZero() {
		return 0
	}
	return time.Since(r.startedAt)
}

func (r *runner) ErrorsLast() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.errs) == 0 {
		return nil
	}
	return r.errs[len(r.errs)-1]
}

func (r *runner) ErrorsList() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]error, len(r.errs))
	copy(out, r.errs)
	return out
}

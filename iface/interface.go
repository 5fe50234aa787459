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

// Package iface owns the worker threads and reactors an application drives
// its sockets through, and the load-balancing policy that decides which
// reactor a new socket binds to.
package iface

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sabouaram/ntio/executor"
	"github.com/sabouaram/ntio/reactor"
)

// Worker pairs one named goroutine with the single Reactor it drives.
type Worker struct {
	Name    string
	Reactor *reactor.Reactor
}

// Config controls how many workers/reactors an Interface creates and how
// it spreads sockets across them.
type Config struct {
	// Names lists one name per worker; len(Names) is the worker/reactor
	// count. Names must be unique — ThreadAffinity binds by name.
	Names []string
	// Policy selects the load-balancing strategy for new sockets.
	Policy Policy
	// ReactorCapacityHint is forwarded to reactor.New for each worker.
	ReactorCapacityHint int
	// PollInterval bounds how often each worker's poll loop wakes up even
	// with nothing ready, so the timer wheel gets a chance to fire.
	PollInterval time.Duration
}

// Interface owns N worker goroutines, each driving exactly one Reactor,
// and load-balances new socket bindings across them.
type Interface struct {
	workers  []Worker
	balancer *balancer
	exec     *executor.Executor
	interval time.Duration

	mu      sync.Mutex
	running bool
}

// New builds the workers and reactors described by cfg but does not start
// polling them; call Listen to start.
func New(cfg Config) (*Interface, error) {
	names := cfg.Names
	if len(names) == 0 {
		names = []string{"worker-0"}
	}

	workers := make([]Worker, 0, len(names))
	for _, n := range names {
		r, err := reactor.New(cfg.ReactorCapacityHint)
		if err != nil {
			for _, w := range workers {
				_ = w.Reactor.Close()
			}
			return nil, err
		}
		workers = append(workers, Worker{Name: n, Reactor: r})
	}

	interval := cfg.PollInterval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	return &Interface{
		workers:  workers,
		balancer: newBalancer(cfg.Policy, names),
		interval: interval,
	}, nil
}

// Bind chooses a reactor for a new socket under the configured Policy.
// affinity is only meaningful (and required) under ThreadAffinity.
func (ifc *Interface) Bind(affinity string) (*Worker, error) {
	idx, err := ifc.balancer.pick(affinity)
	if err != nil {
		return nil, err
	}
	return &ifc.workers[idx], nil
}

// Release tells the balancer a socket bound to the worker named name has
// detached or migrated away, so LeastLoaded accounting stays accurate.
func (ifc *Interface) Release(name string) {
	for i, w := range ifc.workers {
		if w.Name == name {
			ifc.balancer.release(i)
			return
		}
	}
}

// Stats returns the current socket count bound to each worker, indexed the
// same way as the Names given to New.
func (ifc *Interface) Stats() []int {
	return ifc.balancer.counts()
}

// Listen starts one poll-loop goroutine per worker, each calling onEvents
// with its own Worker whenever its Reactor.Wait returns ready events.
// Listen returns immediately; call Shutdown to stop.
func (ifc *Interface) Listen(ctx context.Context, onEvents func(w Worker, events []reactor.Event)) {
	ifc.mu.Lock()
	if ifc.running {
		ifc.mu.Unlock()
		return
	}
	ifc.running = true
	ifc.exec = executor.NewExecutor(ctx)
	ifc.mu.Unlock()

	for _, w := range ifc.workers {
		w := w
		ifc.exec.Go(func(ctx context.Context) error {
			return ifc.pollLoop(ctx, w, onEvents)
		})
	}
}

func (ifc *Interface) pollLoop(ctx context.Context, w Worker, onEvents func(w Worker, events []reactor.Event)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		events, err := w.Reactor.Wait(time.Now().Add(ifc.interval))
		if err != nil {
			return err
		}
		if len(events) > 0 && onEvents != nil {
			onEvents(w, events)
		}
	}
}

// Shutdown stops every worker's poll loop, joins them, and closes every
// reactor, aggregating every worker's error (via executor.Executor.Stop)
// rather than reporting only the first.
func (ifc *Interface) Shutdown(ctx context.Context) error {
	ifc.mu.Lock()
	exec := ifc.exec
	ifc.running = false
	ifc.mu.Unlock()

	var stopErr error
	if exec != nil {
		stopErr = exec.Stop()
	}

	for _, w := range ifc.workers {
		_ = w.Reactor.Close()
	}
	return stopErr
}

// MigrationToken correlates a socket migration request with its outcome,
// the same way SendQueueEntry/CallbackQueueEntry use uuid tokens to
// correlate cancellation across interfaces and log lines.
type MigrationToken = uuid.UUID

// NewMigrationToken returns a fresh token identifying one migration.
func NewMigrationToken() MigrationToken { return uuid.New() }

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

package iface

import (
	"sync"

	"github.com/sabouaram/ntio/errors"
)

// Policy selects which of an Interface's reactors a new socket binds to.
type Policy uint8

const (
	// RoundRobin cycles through reactors in order.
	RoundRobin Policy = iota
	// LeastLoaded picks the reactor with the fewest currently-bound sockets.
	LeastLoaded
	// ThreadAffinity pins to a caller-named worker's reactor.
	ThreadAffinity
)

// String renders the policy the way log lines are expected to show it.
func (p Policy) String() string {
	switch p {
	case RoundRobin:
		return "round-robin"
	case LeastLoaded:
		return "least-loaded"
	case ThreadAffinity:
		return "thread-affinity"
	default:
		return "unknown"
	}
}

// slot tracks one worker's reactor and its current socket count, used by
// LeastLoaded and surfaced through Interface.Stats.
type slot struct {
	name  string
	count int
}

// balancer chooses a worker index for a new socket under the configured
// Policy. It holds no reference to the reactors themselves — Interface
// owns those — only the bookkeeping needed to decide.
type balancer struct {
	mu     sync.Mutex
	policy Policy
	slots  []slot
	rrNext int
}

func newBalancer(policy Policy, names []string) *balancer {
	b := &balancer{policy: policy}
	for _, n := range names {
		b.slots = append(b.slots, slot{name: n})
	}
	return b
}

// pick returns the worker index a new socket should bind to. affinity is
// only consulted under ThreadAffinity; it is ignored otherwise.
func (b *balancer) pick(affinity string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.slots) == 0 {
		return 0, errors.KindInvalidArgument.Error(nil)
	}

	switch b.policy {
	case RoundRobin:
		idx := b.rrNext
		b.rrNext = (b.rrNext + 1) % len(b.slots)
		b.slots[idx].count++
		return idx, nil

	case LeastLoaded:
		best := 0
		for i, s := range b.slots {
			if s.count < b.slots[best].count {
				best = i
			}
		}
		b.slots[best].count++
		return best, nil

	case ThreadAffinity:
		for i, s := range b.slots {
			if s.name == affinity {
				b.slots[i].count++
				return i, nil
			}
		}
		return 0, errors.KindInvalidArgument.Error(nil)

	default:
		return 0, errors.KindInvalidArgument.Error(nil)
	}
}

// release decrements the socket count bound to worker idx, called when a
// socket detaches or migrates away.
func (b *balancer) release(idx int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if idx < 0 || idx >= len(b.slots) {
		return
	}
	if b.slots[idx].count > 0 {
		b.slots[idx].count--
	}
}

// counts returns a snapshot of each worker's current socket count, indexed
// the same way as Interface's worker slice.
func (b *balancer) counts() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]int, len(b.slots))
	for i, s := range b.slots {
		out[i] = s.count
	}
	return out
}

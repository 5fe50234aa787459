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

// Package reactor is the event-loop polling primitive that multiplexes
// socket descriptor readiness and dispatches readable/writable events to
// a reactor's owner. The portable surface lives here; platform-specific
// polling shims (poll_linux.go, poll_other.go) implement the backend
// interface it drives.
package reactor

import (
	"sync"
	"time"

	"github.com/bits-and-blooms/bitset"

	"github.com/sabouaram/ntio/errors"
)

// Interest is a bitmask of the readiness conditions a descriptor is
// registered for.
type Interest uint8

const (
	InterestReadable Interest = 1 << iota
	InterestWritable
)

// Event reports one descriptor's observed readiness during a Wait call.
type Event struct {
	Fd    int
	Ready Interest
	Err   error
}

// backend is the platform-specific polling primitive a Reactor drives.
// Implementations live in poll_linux.go (epoll) and poll_other.go
// (unix.Poll), selected at compile time by build tags.
type backend interface {
	add(fd int, interest Interest) error
	modify(fd int, interest Interest) error
	remove(fd int) error
	wait(deadline time.Time, out []Event) (int, error)
	close() error
}

// Reactor owns one polling backend, a dense slot table mapping
// descriptors to bitset positions, and a generation counter bumped every
// time the interest set changes shape (attach/detach), so callers that
// cached a shadow copy of the poll-descriptor array know to rebuild it.
type Reactor struct {
	mu         sync.Mutex
	be         backend
	slots      map[int]int // fd -> dense slot id
	nextSlot   int
	interested *bitset.BitSet
	generation uint64
	events     []Event
}

// New constructs a Reactor backed by the platform's native polling
// primitive, sized for an initial capacity hint (descriptors beyond the
// hint simply grow the underlying bitset).
func New(capacityHint int) (*Reactor, error) {
	if capacityHint <= 0 {
		capacityHint = 256
	}
	be, err := newBackend()
	if err != nil {
		return nil, errors.KindInternal.Error(err)
	}
	return &Reactor{
		be:         be,
		slots:      make(map[int]int, capacityHint),
		interested: bitset.New(uint(capacityHint)),
		events:     make([]Event, capacityHint),
	}, nil
}

// Attach registers fd for the given interest set. Attaching an
// already-attached descriptor is equivalent to Show with the new
// interest (idempotent, no error).
func (r *Reactor) Attach(fd int, interest Interest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if slot, ok := r.slots[fd]; ok {
		r.setInterest(slot, interest)
		return r.be.modify(fd, interest)
	}

	slot := r.nextSlot
	r.nextSlot++
	r.slots[fd] = slot
	r.setInterest(slot, interest)
	r.generation++

	if err := r.be.add(fd, interest); err != nil {
		delete(r.slots, fd)
		r.interested.Clear(uint(slot))
		return errors.KindInternal.Error(err)
	}
	return nil
}

// Detach unregisters fd. Detaching an unknown descriptor is a no-op,
// matching the reactor's attach/detach idempotence property.
func (r *Reactor) Detach(fd int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[fd]
	if !ok {
		return nil
	}
	delete(r.slots, fd)
	r.interested.Clear(uint(slot))
	r.generation++
	return r.be.remove(fd)
}

// Show changes fd's interest set to include the given interest bits
// (leaving any it already had). A no-op if fd is not attached or already
// includes the requested bits.
func (r *Reactor) Show(fd int, interest Interest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[fd]
	if !ok {
		return nil
	}
	cur := r.interestAt(slot)
	next := cur | interest
	if next == cur {
		return nil
	}
	r.setInterest(slot, next)
	return r.be.modify(fd, next)
}

// Hide removes interest bits from fd's registration. A no-op if fd is
// not attached or does not currently include the bits being removed.
func (r *Reactor) Hide(fd int, interest Interest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[fd]
	if !ok {
		return nil
	}
	cur := r.interestAt(slot)
	next := cur &^ interest
	if next == cur {
		return nil
	}
	r.setInterest(slot, next)
	return r.be.modify(fd, next)
}

func (r *Reactor) setInterest(slot int, interest Interest) {
	base := uint(slot) * 2
	if interest&InterestReadable != 0 {
		r.interested.Set(base)
	} else {
		r.interested.Clear(base)
	}
	if interest&InterestWritable != 0 {
		r.interested.Set(base + 1)
	} else {
		r.interested.Clear(base + 1)
	}
}

func (r *Reactor) interestAt(slot int) Interest {
	base := uint(slot) * 2
	var i Interest
	if r.interested.Test(base) {
		i |= InterestReadable
	}
	if r.interested.Test(base + 1) {
		i |= InterestWritable
	}
	return i
}

// Generation returns the interest-set generation counter, bumped on every
// Attach/Detach so callers know when a cached shadow array is stale.
func (r *Reactor) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generation
}

// Wait blocks until at least one attached descriptor is ready or
// deadline elapses, and returns the ready events. A zero deadline blocks
// indefinitely.
func (r *Reactor) Wait(deadline time.Time) ([]Event, error) {
	r.mu.Lock()
	buf := r.events
	r.mu.Unlock()

	n, err := r.be.wait(deadline, buf)
	if err != nil {
		return nil, errors.KindInternal.Error(err)
	}
	return buf[:n], nil
}

// Close releases the backend's OS resources (epoll fd, etc). The Reactor
// must not be used afterward.
func (r *Reactor) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.be.close()
}

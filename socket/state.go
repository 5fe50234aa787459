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
 */

package socket

import (
	"sync"

	"github.com/sabouaram/ntio/errors"
)

// LifecycleState is the internal state a socket occupies in its owning
// reactor, distinct from the ConnState transitions reported to FuncInfo:
// ConnState narrates events as they happen, LifecycleState is the
// authoritative current state a socket's own code checks before acting.
// A socket is always in exactly one of these states.
type LifecycleState uint8

const (
	// Detached is the initial state: the socket has a descriptor but is
	// not registered with any reactor.
	Detached LifecycleState = iota
	// Attached means the socket is registered with a reactor but has not
	// yet completed its handshake (dial/accept).
	Attached
	// Active means the socket is established and may send and receive.
	Active
	// ShuttingDownSend means the send half is draining; no new sends are
	// accepted but queued ones still flush.
	ShuttingDownSend
	// ShuttingDownReceive means the receive half is draining; no new
	// reads are issued but already-queued completions still deliver.
	ShuttingDownReceive
	// ShutDown means both halves have finished draining; the descriptor
	// is still open but unusable for I/O.
	ShutDown
	// Closed is the terminal state: the descriptor has been released.
	Closed
)

func (s LifecycleState) String() string {
	switch s {
	case Detached:
		return "Detached"
	case Attached:
		return "Attached"
	case Active:
		return "Active"
	case ShuttingDownSend:
		return "ShuttingDownSend"
	case ShuttingDownReceive:
		return "ShuttingDownReceive"
	case ShutDown:
		return "ShutDown"
	case Closed:
		return "Closed"
	default:
		return "unknown lifecycle state"
	}
}

// validTransitions enumerates the lifecycle's allowed edges. Both shutdown
// halves may complete in either order, but both must complete before
// ShutDown, and Closed is reachable only from ShutDown or directly from
// Detached/Attached (a connection that never became Active can still be
// torn down without draining).
var validTransitions = map[LifecycleState]map[LifecycleState]bool{
	Detached:            {Attached: true, Closed: true},
	Attached:            {Active: true, Closed: true},
	Active:              {ShuttingDownSend: true, ShuttingDownReceive: true, Closed: true},
	ShuttingDownSend:    {ShutDown: true, ShuttingDownReceive: true, Closed: true},
	ShuttingDownReceive: {ShutDown: true, ShuttingDownSend: true, Closed: true},
	ShutDown:            {Closed: true},
	Closed:              {},
}

// ErrInvalidTransition is returned by StateMachine.Transition when the
// requested edge is not in validTransitions.
var ErrInvalidTransition = errors.KindInvalidArgument.Error()

// StateMachine guards a socket's LifecycleState with a mutex and rejects
// transitions outside the allowed edge set.
type StateMachine struct {
	mu    sync.Mutex
	state LifecycleState
}

// NewStateMachine returns a StateMachine starting in Detached.
func NewStateMachine() *StateMachine {
	return &StateMachine{state: Detached}
}

// Current returns the state machine's current state.
func (m *StateMachine) Current() LifecycleState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Transition moves the state machine to next if the edge from its current
// state is allowed, returning ErrInvalidTransition otherwise. A transition
// to the current state itself is always a no-op success.
func (m *StateMachine) Transition(next LifecycleState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == next {
		return nil
	}
	if validTransitions[m.state][next] {
		m.state = next
		return nil
	}
	return ErrInvalidTransition
}

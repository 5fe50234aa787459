/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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

// Package dgram holds the connectionless engine shared by the udp and
// unixgram client/server packages. Unlike socket/internal/stream, there is
// no net.Listener/net.Conn per peer: a single net.PacketConn is demultiplexed
// by remote address into per-peer pseudo-connections, and the client side
// never blocks waiting for a reply. Each per-transport package supplies only
// the network-specific net.ListenPacket/net.Dial calls.
package dgram

import (
	"context"
	"io"
	"net"
	"sync"
	"time"

	libsck "github.com/sabouaram/ntio/socket"
)

// Conn adapts one remote peer's datagram stream into a libsck.Context. It
// never writes to the wire directly: Write always reports io.ErrClosedPipe,
// since a per-datagram handler Context has no reply path of its own - the
// server answers, if at all, by sending through the shared net.PacketConn.
type Conn struct {
	context.Context
	cancel context.CancelFunc

	local  net.Addr
	remote net.Addr

	state *libsck.StateMachine

	mu      sync.Mutex
	inbound chan []byte
	closed  bool

	onClose func()
}

// newConn starts the peer's state machine in the Attached state. inboundCap
// bounds how many not-yet-read datagrams are buffered for this peer before
// the demux loop starts dropping them.
func newConn(parent context.Context, local, remote net.Addr, inboundCap int, onClose func()) *Conn {
	ctx, cancel := context.WithCancel(parent)
	c := &Conn{
		Context: ctx,
		cancel:  cancel,
		local:   local,
		remote:  remote,
		state:   libsck.NewStateMachine(),
		inbound: make(chan []byte, inboundCap),
		onClose: onClose,
	}
	_ = c.state.Transition(libsck.Attached)
	return c
}

func (c *Conn) IsConnected() bool {
	st := c.state.Current()
	return st != libsck.Closed && st != libsck.ShutDown
}

func (c *Conn) LocalHost() string    { return c.local.String() }
func (c *Conn) RemoteHost() string   { return c.remote.String() }
func (c *Conn) LocalAddr() net.Addr  { return c.local }
func (c *Conn) RemoteAddr() net.Addr { return c.remote }

// deliver hands one demultiplexed datagram to the peer's inbound queue,
// dropping it silently if the queue is full or the peer is gone - datagram
// transports never guarantee delivery anyway.
func (c *Conn) deliver(p []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.inbound <- p:
	default:
	}
}

// Read blocks for the next datagram addressed to this peer, or returns
// io.ErrClosedPipe once the peer is closed.
func (c *Conn) Read(p []byte) (int, error) {
	if !c.IsConnected() {
		return 0, io.ErrClosedPipe
	}
	select {
	case b, ok := <-c.inbound:
		if !ok {
			return 0, io.ErrClosedPipe
		}
		n := copy(p, b)
		return n, nil
	case <-c.Done():
		return 0, io.ErrClosedPipe
	}
}

// Write is permanently unsupported: a per-datagram server Context has no
// reply path, since datagram sockets are connectionless and any response
// must be sent through the shared net.PacketConn instead.
func (c *Conn) Write(_ []byte) (int, error) {
	return 0, io.ErrClosedPipe
}

func (c *Conn) SetReadDeadline(_ time.Time) error  { return nil }
func (c *Conn) SetWriteDeadline(_ time.Time) error { return nil }

// Close is idempotent: closing an already-closed peer also returns nil.
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.inbound)
	c.mu.Unlock()

	_ = c.state.Transition(libsck.ShuttingDownSend)
	_ = c.state.Transition(libsck.ShuttingDownReceive)
	_ = c.state.Transition(libsck.ShutDown)
	_ = c.state.Transition(libsck.Closed)

	c.cancel()
	if c.onClose != nil {
		c.onClose()
	}
	return nil
}

var _ libsck.Context = (*Conn)(nil)

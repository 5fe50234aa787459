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

// Package stream holds the connection-oriented engine shared by the tcp and
// unix client/server packages: a libsck.Context built on a net.Conn plus a
// socket.StateMachine, an accept loop that feeds a socket.AcceptQueue, and
// a reactor-driven idle-connection reaper. Each per-transport package
// supplies only the network-specific dial/listen calls and TLS wrapping.
package stream

import (
	"context"
	"net"
	"time"

	libsck "github.com/sabouaram/ntio/socket"
)

// Conn adapts a net.Conn plus its socket.StateMachine into a libsck.Context,
// the handle a HandlerFunc is given.
type Conn struct {
	context.Context
	cancel context.CancelFunc

	nc    net.Conn
	state *libsck.StateMachine

	touch func()
}

// NewConn wraps nc, starting its state machine in the Attached state.
func NewConn(parent context.Context, nc net.Conn, touch func()) *Conn {
	ctx, cancel := context.WithCancel(parent)
	c := &Conn{
		Context: ctx,
		cancel:  cancel,
		nc:      nc,
		state:   libsck.NewStateMachine(),
		touch:   touch,
	}
	_ = c.state.Transition(libsck.Attached)
	return c
}

func (c *Conn) IsConnected() bool {
	st := c.state.Current()
	return st != libsck.Closed && st != libsck.ShutDown
}

func (c *Conn) LocalHost() string  { return c.nc.LocalAddr().String() }
func (c *Conn) RemoteHost() string { return c.nc.RemoteAddr().String() }
func (c *Conn) LocalAddr() net.Addr  { return c.nc.LocalAddr() }
func (c *Conn) RemoteAddr() net.Addr { return c.nc.RemoteAddr() }

func (c *Conn) Read(p []byte) (int, error) {
	n, err := c.nc.Read(p)
	if c.touch != nil && n > 0 {
		c.touch()
	}
	return n, err
}

func (c *Conn) Write(p []byte) (int, error) {
	n, err := c.nc.Write(p)
	if c.touch != nil && n > 0 {
		c.touch()
	}
	return n, err
}

func (c *Conn) SetReadDeadline(t time.Time) error  { return c.nc.SetReadDeadline(t) }
func (c *Conn) SetWriteDeadline(t time.Time) error { return c.nc.SetWriteDeadline(t) }

// CloseWrite half-closes the write side when the underlying net.Conn
// supports it (*net.TCPConn, *net.UnixConn), signalling EOF to the peer
// while leaving the read side open. A no-op otherwise.
func (c *Conn) CloseWrite() error {
	if cw, ok := c.nc.(interface{ CloseWrite() error }); ok {
		return cw.CloseWrite()
	}
	return nil
}

// Close transitions the connection's state machine through its shutdown
// states and releases the underlying net.Conn.
func (c *Conn) Close() error {
	_ = c.state.Transition(libsck.ShuttingDownSend)
	_ = c.state.Transition(libsck.ShuttingDownReceive)
	_ = c.state.Transition(libsck.ShutDown)
	err := c.nc.Close()
	_ = c.state.Transition(libsck.Closed)
	c.cancel()
	return err
}

var _ libsck.Context = (*Conn)(nil)

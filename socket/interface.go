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
	"context"
	"io"
	"net"
	"time"
)

// FuncError is registered on a Client or Server to receive errors observed
// on its connections, already passed through ErrorFilter by the caller.
type FuncError func(errs ...error)

// FuncInfo is registered on a Client or Server to observe connection
// lifecycle transitions (see ConnState).
type FuncInfo func(local, remote net.Addr, state ConnState)

// UpdateConn customizes a freshly dialed or accepted net.Conn before
// it is handed to the per-connection state machine (socket options,
// deadlines).
type UpdateConn func(conn net.Conn)

// FuncResponse processes a Client.Once request/response exchange's
// response body.
type FuncResponse func(r io.Reader)

// Context is the per-connection handle a HandlerFunc is given. It exposes
// connection I/O and metadata without leaking the underlying net.Conn or
// reactor bookkeeping.
type Context interface {
	context.Context

	// IsConnected reports whether the connection is still usable.
	IsConnected() bool

	// LocalHost and RemoteHost report the two ends of the connection in
	// "host:port" (or local path) form.
	LocalHost() string
	RemoteHost() string

	// LocalAddr and RemoteAddr expose the raw net.Addr values.
	LocalAddr() net.Addr
	RemoteAddr() net.Addr

	io.Reader
	io.Writer

	// SetReadDeadline and SetWriteDeadline mirror net.Conn's deadline
	// controls for handlers that need fine-grained timeouts.
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error

	// Close ends the connection from within the handler.
	Close() error
}

// HandlerFunc processes one connection end to end: read request(s), write
// response(s), decide when the connection is done.
type HandlerFunc func(ctx Context)

// Handler is the stateful counterpart of HandlerFunc, for handlers that
// carry dependencies or accumulated state across connections.
type Handler interface {
	// Handle processes one connection using ctx the same way a
	// HandlerFunc would.
	Handle(ctx Context)
}

// Server accepts connections and dispatches each to a Handler/HandlerFunc.
type Server interface {
	// RegisterFuncError registers the callback invoked for errors
	// encountered on any connection this Server manages.
	RegisterFuncError(f FuncError)

	// RegisterFuncInfo registers the callback invoked on every connection
	// lifecycle transition this Server observes.
	RegisterFuncInfo(f FuncInfo)

	// Listen starts accepting connections and blocks until ctx is done or
	// an unrecoverable error occurs.
	Listen(ctx context.Context) error

	// Shutdown drains in-flight connections and stops accepting new ones,
	// returning once drained or ctx expires.
	Shutdown(ctx context.Context) error

	// IsRunning reports whether Listen is currently accepting.
	IsRunning() bool

	// OpenConnections reports the number of connections currently accepted
	// and not yet closed.
	OpenConnections() int64

	// Listener exposes the underlying net.Listener and its bound address,
	// once Listen has started accepting. Useful for discovering the actual
	// address of a listener registered on port 0.
	Listener() (net.Listener, string, error)
}

// Client dials (or, for connectionless transports, prepares to exchange
// datagrams with) a single remote endpoint.
type Client interface {
	io.ReadWriteCloser

	// RegisterFuncError registers the callback invoked for errors
	// encountered on this Client's connection.
	RegisterFuncError(f FuncError)

	// RegisterFuncInfo registers the callback invoked on every lifecycle
	// transition this Client's connection goes through.
	RegisterFuncInfo(f FuncInfo)

	// Connect establishes the underlying connection.
	Connect(ctx context.Context) error

	// Once writes the entirety of p and reads exactly one response,
	// handing it to fn. Used for simple request/response protocols over
	// a connection the Client keeps open across calls.
	Once(ctx context.Context, p io.Reader, fn FuncResponse) error

	// IsConnected reports whether the underlying connection is usable.
	IsConnected() bool
}

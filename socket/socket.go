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

// Package socket defines the per-connection async state machine shared by
// every transport-specific client and server (tcp, udp, unix, unixgram):
// the ConnState lifecycle, the Context a HandlerFunc is given, and the
// Client/Server interfaces those packages implement.
package socket

// DefaultBufferSize is the read/write buffer size used when a caller does
// not configure one explicitly.
const DefaultBufferSize = 32 * 1024

// EOL is the line terminator used by line-oriented framing helpers.
const EOL = '\n'

// ConnState is one stage of a connection's lifecycle, reported to a
// registered FuncInfo as the connection moves through it.
type ConnState uint8

const (
	// ConnectionDial is reported by a Client before it dials out.
	ConnectionDial ConnState = iota
	// ConnectionNew is reported once a connection (dialed or accepted) is
	// established.
	ConnectionNew
	// ConnectionRead is reported while a connection's incoming stream is
	// being read.
	ConnectionRead
	// ConnectionCloseRead is reported when the incoming half of a
	// connection is closed (read shutdown).
	ConnectionCloseRead
	// ConnectionHandler is reported while a HandlerFunc runs for a
	// connection.
	ConnectionHandler
	// ConnectionWrite is reported while a connection's outgoing stream is
	// being written.
	ConnectionWrite
	// ConnectionCloseWrite is reported when the outgoing half of a
	// connection is closed (write shutdown).
	ConnectionCloseWrite
	// ConnectionClose is reported once a connection is fully closed.
	ConnectionClose
)

// String renders the connection state the way log lines and FuncInfo
// consumers expect to see it.
func (c ConnState) String() string {
	switch c {
	case ConnectionDial:
		return "Dial Connection"
	case ConnectionNew:
		return "New Connection"
	case ConnectionRead:
		return "Read Incoming Stream"
	case ConnectionCloseRead:
		return "Close Incoming Stream"
	case ConnectionHandler:
		return "Run HandlerFunc"
	case ConnectionWrite:
		return "Write Outgoing Steam"
	case ConnectionCloseWrite:
		return "Close Outgoing Stream"
	case ConnectionClose:
		return "Close Connection"
	default:
		return "unknown connection state"
	}
}

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

package stream

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sabouaram/ntio/blob"
	libsck "github.com/sabouaram/ntio/socket"

	libtls "github.com/sabouaram/ntio/certificates"
)

// DialFunc opens the raw, network-specific net.Conn to address. tlsCfg is
// non-nil when the client has TLS enabled.
type DialFunc func(ctx context.Context, address string, tlsCfg *tls.Config) (net.Conn, error)

// ClientErrors is the set of sentinel errors a transport package wants the
// engine to return.
type ClientErrors struct {
	Address    error
	Connection error
	Instance   error
}

// Client is the dial/read/write engine shared by every connection-oriented
// transport's client package (tcp, unix).
type Client struct {
	address string
	dial    DialFunc
	errs    ClientErrors

	mu         sync.Mutex
	tlsEnabled bool
	tlsCfg     libtls.TLSConfig
	serverName string

	conn      *Conn
	connected atomic.Bool

	funcErr  libsck.FuncError
	funcInfo libsck.FuncInfo
}

// NewClient validates address and returns an idle engine bound to it.
func NewClient(address string, dial DialFunc, errs ClientErrors) (*Client, error) {
	if strings.TrimSpace(address) == "" {
		return nil, errs.Address
	}
	return &Client{address: address, dial: dial, errs: errs}, nil
}

func (c *Client) RegisterFuncError(f libsck.FuncError) { c.mu.Lock(); c.funcErr = f; c.mu.Unlock() }
func (c *Client) RegisterFuncInfo(f libsck.FuncInfo)   { c.mu.Lock(); c.funcInfo = f; c.mu.Unlock() }

func (c *Client) errf(err error) {
	c.mu.Lock()
	f := c.funcErr
	c.mu.Unlock()
	if f != nil && err != nil {
		f(err)
	}
}

func (c *Client) info(local, remote net.Addr, st libsck.ConnState) {
	c.mu.Lock()
	f := c.funcInfo
	c.mu.Unlock()
	if f != nil {
		f(local, remote, st)
	}
}

// SetTLS toggles TLS for subsequent Connect calls. serverName drives SNI
// and certificate hostname verification.
func (c *Client) SetTLS(enabled bool, cfg libtls.TLSConfig, serverName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tlsEnabled = enabled
	c.tlsCfg = cfg
	c.serverName = serverName
	if enabled && cfg == nil {
		return c.errs.Instance
	}
	return nil
}

// Connect dials the configured address, wrapping the connection in TLS if
// enabled.
func (c *Client) Connect(ctx context.Context) error {
	if strings.TrimSpace(c.address) == "" {
		return c.errs.Address
	}

	c.mu.Lock()
	enabled := c.tlsEnabled
	tlsCfg := c.tlsCfg
	serverName := c.serverName
	c.mu.Unlock()

	var tc *tls.Config
	if enabled {
		if tlsCfg == nil {
			return c.errs.Instance
		}
		tc = tlsCfg.TlsConfig(serverName)
	}

	nc, err := c.dial(ctx, c.address, tc)
	if err != nil {
		c.errf(err)
		return c.errs.Connection
	}

	conn := NewConn(ctx, nc, func() {})

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	c.connected.Store(true)

	c.info(nc.LocalAddr(), nc.RemoteAddr(), libsck.ConnectionNew)
	return nil
}

func (c *Client) IsConnected() bool { return c.connected.Load() }

func (c *Client) activeConn() *Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn
}

func (c *Client) Read(p []byte) (int, error) {
	conn := c.activeConn()
	if conn == nil {
		return 0, c.errs.Connection
	}
	n, err := conn.Read(p)
	if err != nil {
		c.errf(err)
	}
	return n, err
}

func (c *Client) Write(p []byte) (int, error) {
	conn := c.activeConn()
	if conn == nil {
		return 0, c.errs.Connection
	}
	n, err := conn.Write(p)
	if err != nil {
		c.errf(err)
	}
	return n, err
}

// Close releases the underlying connection. Safe to call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	c.connected.Store(false)
	if conn == nil {
		return nil
	}
	return conn.Close()
}

// Once connects if not already connected, writes the whole of p, half-closes
// the write side so an echo-style peer observes EOF, reads the response to
// completion, hands it to fn, and always closes the connection before
// returning. The request and response halves are routed through a SendQueue
// and ReceiveQueue so the same watermark accounting the reactor-driven
// server relies on is exercised here too, even though this client blocks.
func (c *Client) Once(ctx context.Context, p io.Reader, fn libsck.FuncResponse) error {
	if !c.IsConnected() {
		if err := c.Connect(ctx); err != nil {
			return err
		}
	}
	defer func() { _ = c.Close() }()

	conn := c.activeConn()
	if conn == nil {
		return c.errs.Connection
	}

	req, err := io.ReadAll(p)
	if err != nil {
		return err
	}

	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(dl)
	}

	send := libsck.NewSendQueue(0, 0)
	if len(req) > 0 {
		if _, _, eerr := send.Enqueue(blob.FromConstBytes(req), libsck.SendOptions{}, nil); eerr != nil {
			return eerr
		}
		for _, e := range send.Batch(1) {
			if _, werr := conn.Write(e.Data.Bytes()[e.DataOffset:e.Length]); werr != nil {
				return werr
			}
		}
		send.Advance(len(req))
	}
	_ = conn.CloseWrite()

	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(dl)
	}

	var out bytes.Buffer
	buf := make([]byte, 64*1024)
	for {
		n, rerr := conn.Read(buf)
		if n > 0 {
			out.Write(buf[:n])
		}
		if rerr != nil {
			break
		}
	}

	recv := libsck.NewReceiveQueue(0, 0)
	recv.Push(blob.FromConstBytes(out.Bytes()))
	data, ok, _ := recv.Pop()
	if ok && fn != nil {
		fn(bytes.NewReader(data.Bytes()))
	}
	return nil
}

var _ libsck.Client = (*Client)(nil)

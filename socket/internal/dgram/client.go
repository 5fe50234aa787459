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

package dgram

import (
	"context"
	"io"

	libsck "github.com/sabouaram/ntio/socket"
	"github.com/sabouaram/ntio/socket/internal/stream"
)

// Client reuses socket/internal/stream.Client's dial/read/write engine as-is
// - a datagram socket dials exactly like a stream one - overriding only
// Once, which here is fire-and-forget: a single Write with no blocking
// read, since a datagram peer never signals EOF the way a half-closed
// stream socket does.
type Client struct {
	*stream.Client
}

// NewClient validates address and returns an idle engine bound to it.
func NewClient(address string, dial stream.DialFunc, errs stream.ClientErrors) (*Client, error) {
	c, err := stream.NewClient(address, dial, errs)
	if err != nil {
		return nil, err
	}
	return &Client{Client: c}, nil
}

// Once connects if not already connected, writes the whole of p in a single
// datagram, and returns without reading a reply. fn is never invoked: there
// is no response half to hand it. The connection is always closed before
// returning, leaving IsConnected false regardless of outcome.
func (c *Client) Once(ctx context.Context, p io.Reader, fn libsck.FuncResponse) error {
	_ = fn

	if !c.IsConnected() {
		if err := c.Connect(ctx); err != nil {
			return err
		}
	}
	defer func() { _ = c.Close() }()

	req, err := io.ReadAll(p)
	if err != nil {
		return err
	}

	_, err = c.Write(req)
	return err
}

var _ libsck.Client = (*Client)(nil)

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

//go:build linux || darwin

// Package unixgram is the Unix-domain datagram binding of the connectionless
// client engine in socket/internal/dgram.
package unixgram

import (
	"context"
	"crypto/tls"
	"errors"
	"net"

	libtls "github.com/sabouaram/ntio/certificates"
	libptc "github.com/sabouaram/ntio/network/protocol"
	libsck "github.com/sabouaram/ntio/socket"
	sckcfg "github.com/sabouaram/ntio/socket/config"
	"github.com/sabouaram/ntio/socket/internal/dgram"
	"github.com/sabouaram/ntio/socket/internal/stream"
)

var (
	ErrAddress    = errors.New("socket/client/unixgram: invalid address")
	ErrConnection = errors.New("socket/client/unixgram: not connected")
	ErrInstance   = errors.New("socket/client/unixgram: invalid client instance")
)

var errSet = stream.ClientErrors{
	Address:    ErrAddress,
	Connection: ErrConnection,
	Instance:   ErrInstance,
}

// ClientUnix is a single outbound Unix-domain datagram peer. TLS has no
// meaning over a local socket, so SetTLS is a deliberate no-op.
type ClientUnix interface {
	libsck.Client

	SetTLS(enabled bool, cfg libtls.TLSConfig, serverName string) error
}

type clientUnix struct {
	*dgram.Client
}

func (c *clientUnix) SetTLS(_ bool, _ libtls.TLSConfig, _ string) error {
	return nil
}

// New returns nil when address is empty; otherwise an idle client bound to
// it, deferring dial failures to Connect.
func New(address string) ClientUnix {
	if address == "" {
		return nil
	}

	cli, err := dgram.NewClient(address, dial, errSet)
	if err != nil {
		return nil
	}
	return &clientUnix{Client: cli}
}

func dial(ctx context.Context, address string, _ *tls.Config) (net.Conn, error) {
	d := net.Dialer{}
	return d.DialContext(ctx, libptc.NetworkUnixGram.Code(), address)
}

func init() {
	sckcfg.RegisterClientFactory(libptc.NetworkUnixGram, func(cfg sckcfg.Client) (libsck.Client, error) {
		cli := New(cfg.Address)
		if cli == nil {
			return nil, ErrAddress
		}
		return cli, nil
	})
}

var _ ClientUnix = (*clientUnix)(nil)

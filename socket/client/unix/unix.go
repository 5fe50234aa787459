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
 *
 */

//go:build linux || darwin

// Package unix is the Unix-domain stream binding of the connection-oriented
// client engine in socket/internal/stream.
package unix

import (
	"context"
	"crypto/tls"
	"errors"
	"net"

	libptc "github.com/sabouaram/ntio/network/protocol"
	libsck "github.com/sabouaram/ntio/socket"
	sckcfg "github.com/sabouaram/ntio/socket/config"
	"github.com/sabouaram/ntio/socket/internal/stream"

	libtls "github.com/sabouaram/ntio/certificates"
)

var (
	ErrAddress    = errors.New("socket/client/unix: invalid address")
	ErrConnection = errors.New("socket/client/unix: not connected")
	ErrInstance   = errors.New("socket/client/unix: invalid client instance")
)

var errSet = stream.ClientErrors{
	Address:    ErrAddress,
	Connection: ErrConnection,
	Instance:   ErrInstance,
}

// ClientUnix is a single outbound Unix-domain connection. TLS has no
// meaning over a local socket, so SetTLS is a deliberate no-op.
type ClientUnix interface {
	libsck.Client

	SetTLS(enabled bool, cfg libtls.TLSConfig, serverName string) error
}

type clientUnix struct {
	*stream.Client
}

func (c *clientUnix) SetTLS(enabled bool, cfg libtls.TLSConfig, serverName string) error {
	return nil
}

// New returns nil when address is empty; otherwise an idle client bound to
// it, deferring dial failures to Connect.
func New(address string) ClientUnix {
	cli, err := stream.NewClient(address, dial, errSet)
	if err != nil {
		return nil
	}
	return &clientUnix{Client: cli}
}

func dial(ctx context.Context, address string, _ *tls.Config) (net.Conn, error) {
	d := net.Dialer{}
	return d.DialContext(ctx, libptc.NetworkUnix.Code(), address)
}

func init() {
	sckcfg.RegisterClientFactory(libptc.NetworkUnix, func(cfg sckcfg.Client) (libsck.Client, error) {
		cli := New(cfg.Address)
		if cli == nil {
			return nil, ErrAddress
		}
		return cli, nil
	})
}

var _ ClientUnix = (*clientUnix)(nil)

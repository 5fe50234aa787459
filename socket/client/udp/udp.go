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

// Package udp is the UDP binding of the connectionless client engine in
// socket/internal/dgram.
package udp

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
	ErrAddress    = errors.New("socket/client/udp: invalid address")
	ErrConnection = errors.New("socket/client/udp: not connected")
	ErrInstance   = errors.New("socket/client/udp: invalid client instance")
)

var errSet = stream.ClientErrors{
	Address:    ErrAddress,
	Connection: ErrConnection,
	Instance:   ErrInstance,
}

// ClientUDP is a single outbound UDP peer. TLS has no meaning over a
// datagram socket, so SetTLS is a deliberate no-op.
type ClientUDP interface {
	libsck.Client

	SetTLS(enabled bool, cfg libtls.TLSConfig, serverName string) error
}

type clientUDP struct {
	*dgram.Client
}

func (c *clientUDP) SetTLS(_ bool, _ libtls.TLSConfig, _ string) error {
	return nil
}

// New validates address and returns an idle client bound to it.
func New(address string) (ClientUDP, error) {
	if _, err := net.ResolveUDPAddr(libptc.NetworkUDP.Code(), address); err != nil {
		return nil, ErrAddress
	}

	cli, err := dgram.NewClient(address, dial, errSet)
	if err != nil {
		return nil, err
	}
	return &clientUDP{Client: cli}, nil
}

func dial(ctx context.Context, address string, _ *tls.Config) (net.Conn, error) {
	d := net.Dialer{}
	return d.DialContext(ctx, libptc.NetworkUDP.Code(), address)
}

func init() {
	factory := func(cfg sckcfg.Client) (libsck.Client, error) {
		return New(cfg.Address)
	}
	sckcfg.RegisterClientFactory(libptc.NetworkUDP, factory)
	sckcfg.RegisterClientFactory(libptc.NetworkUDP4, factory)
	sckcfg.RegisterClientFactory(libptc.NetworkUDP6, factory)
}

var _ ClientUDP = (*clientUDP)(nil)

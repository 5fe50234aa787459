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

// Package tcp is the TCP binding of the connection-oriented client engine
// in socket/internal/stream.
package tcp

import (
	"context"
	"crypto/tls"
	"errors"
	"net"

	libtls "github.com/sabouaram/ntio/certificates"
	libptc "github.com/sabouaram/ntio/network/protocol"
	libsck "github.com/sabouaram/ntio/socket"
	sckcfg "github.com/sabouaram/ntio/socket/config"
	"github.com/sabouaram/ntio/socket/internal/stream"
)

var (
	ErrAddress    = errors.New("socket/client/tcp: invalid address")
	ErrConnection = errors.New("socket/client/tcp: not connected")
	ErrInstance   = errors.New("socket/client/tcp: invalid client instance")
)

var errSet = stream.ClientErrors{
	Address:    ErrAddress,
	Connection: ErrConnection,
	Instance:   ErrInstance,
}

// ClientTcp is a single outbound TCP connection.
type ClientTcp interface {
	libsck.Client

	SetTLS(enabled bool, cfg libtls.TLSConfig, serverName string) error
}

// New validates address and returns an idle client bound to it.
func New(address string) (ClientTcp, error) {
	if _, err := net.ResolveTCPAddr(libptc.NetworkTCP.Code(), address); err != nil {
		return nil, ErrAddress
	}
	return stream.NewClient(address, dial, errSet)
}

func dial(ctx context.Context, address string, tlsCfg *tls.Config) (net.Conn, error) {
	d := net.Dialer{}
	if tlsCfg != nil {
		return (&tls.Dialer{NetDialer: &d, Config: tlsCfg}).DialContext(ctx, libptc.NetworkTCP.Code(), address)
	}
	return d.DialContext(ctx, libptc.NetworkTCP.Code(), address)
}

func init() {
	factory := func(cfg sckcfg.Client) (libsck.Client, error) {
		return New(cfg.Address)
	}
	sckcfg.RegisterClientFactory(libptc.NetworkTCP, factory)
	sckcfg.RegisterClientFactory(libptc.NetworkTCP4, factory)
	sckcfg.RegisterClientFactory(libptc.NetworkTCP6, factory)
}

var _ ClientTcp = (*stream.Client)(nil)

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

// Package udp is the UDP binding of the connectionless server engine in
// socket/internal/dgram. TLS is not meaningful over a datagram socket, so
// SetTLS is a deliberate no-op kept only to satisfy the shared
// libsck.Server-shaped surface tooling expects.
package udp

import (
	"errors"
	"net"
	"strings"

	libptc "github.com/sabouaram/ntio/network/protocol"
	libsck "github.com/sabouaram/ntio/socket"
	sckcfg "github.com/sabouaram/ntio/socket/config"
	"github.com/sabouaram/ntio/socket/internal/dgram"

	libtls "github.com/sabouaram/ntio/certificates"
)

var (
	ErrInvalidAddress  = errors.New("invalid listen address")
	ErrInvalidHandler  = errors.New("socket/server/udp: invalid handler")
	ErrInvalidInstance = errors.New("socket/server/udp: invalid server instance")
	ErrInvalidGroup    = errors.New("socket/server/udp: invalid unix group")
	ErrShutdownTimeout = errors.New("socket/server/udp: shutdown timeout")
	ErrGoneTimeout     = errors.New("socket/server/udp: gone timeout")
)

var errSet = dgram.ServerErrors{
	InvalidAddress:  ErrInvalidAddress,
	InvalidHandler:  ErrInvalidHandler,
	InvalidInstance: ErrInvalidInstance,
	InvalidGroup:    ErrInvalidGroup,
	ShutdownTimeout: ErrShutdownTimeout,
	GoneTimeout:     ErrGoneTimeout,
}

// ServerUdp is a UDP packet socket dispatching one libsck.HandlerFunc
// invocation per distinct remote peer.
type ServerUdp interface {
	libsck.Server

	RegisterFuncInfoServer(f func(msg string))
	SetTLS(enabled bool, cfg libtls.TLSConfig) error
	IsGone() bool
	Close() error
}

type serverUdp struct {
	*dgram.Server
}

func (s *serverUdp) SetTLS(_ bool, _ libtls.TLSConfig) error {
	return nil
}

// New constructs a UDP server bound to cfg.Address. The handler may be nil
// at construction time - Listen rejects that - but the address is validated
// eagerly since an unbound UDP socket has no deferred-registration path the
// way Unix-domain sockets do via RegisterSocket.
func New(upd libsck.UpdateConn, handler libsck.HandlerFunc, cfg sckcfg.Server) (ServerUdp, error) {
	if strings.TrimSpace(cfg.Address) == "" {
		return nil, ErrInvalidAddress
	}
	if _, err := net.ResolveUDPAddr(libptc.NetworkUDP.Code(), cfg.Address); err != nil {
		return nil, ErrInvalidAddress
	}

	return &serverUdp{Server: dgram.NewServer(upd, handler, cfg, listen, errSet)}, nil
}

func listen(cfg sckcfg.Server) (net.PacketConn, error) {
	return net.ListenPacket(libptc.NetworkUDP.Code(), cfg.Address)
}

func init() {
	factory := func(upd libsck.UpdateConn, handler libsck.HandlerFunc, cfg sckcfg.Server) (libsck.Server, error) {
		return New(upd, handler, cfg)
	}
	sckcfg.RegisterServerFactory(libptc.NetworkUDP, factory)
	sckcfg.RegisterServerFactory(libptc.NetworkUDP4, factory)
	sckcfg.RegisterServerFactory(libptc.NetworkUDP6, factory)
}

var _ ServerUdp = (*serverUdp)(nil)

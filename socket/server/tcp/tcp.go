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

// Package tcp is the TCP binding of the connection-oriented server engine
// in socket/internal/stream.
package tcp

import (
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
	ErrInvalidAddress  = errors.New("socket/server/tcp: invalid address")
	ErrInvalidHandler  = errors.New("socket/server/tcp: invalid handler")
	ErrInvalidInstance = errors.New("socket/server/tcp: invalid server instance")
	ErrShutdownTimeout = errors.New("socket/server/tcp: shutdown timeout")
	ErrGoneTimeout     = errors.New("socket/server/tcp: gone timeout")
)

var errSet = stream.ServerErrors{
	InvalidAddress:  ErrInvalidAddress,
	InvalidHandler:  ErrInvalidHandler,
	InvalidInstance: ErrInvalidInstance,
	ShutdownTimeout: ErrShutdownTimeout,
	GoneTimeout:     ErrGoneTimeout,
}

// ServerTcp is a TCP listener driving a libsck.HandlerFunc over accepted
// connections.
type ServerTcp interface {
	libsck.Server

	RegisterFuncInfoServer(f func(msg string))
	RegisterServer(address string) error
	SetTLS(enabled bool, cfg libtls.TLSConfig) error
	IsGone() bool
	Close() error
}

// New constructs a TCP server bound to cfg.Address. Listen rejects a nil
// handler or an empty address.
func New(upd libsck.UpdateConn, handler libsck.HandlerFunc, cfg sckcfg.Server) (ServerTcp, error) {
	cfg.Network = libptc.NetworkTCP
	return stream.NewServer(upd, handler, cfg, listen, errSet), nil
}

func listen(cfg sckcfg.Server, tlsCfg *tls.Config) (net.Listener, error) {
	ln, err := net.Listen(cfg.Network.Code(), cfg.Address)
	if err != nil {
		return nil, err
	}
	if tlsCfg != nil {
		return tls.NewListener(ln, tlsCfg), nil
	}
	return ln, nil
}

func init() {
	factory := func(upd libsck.UpdateConn, handler libsck.HandlerFunc, cfg sckcfg.Server) (libsck.Server, error) {
		return New(upd, handler, cfg)
	}
	sckcfg.RegisterServerFactory(libptc.NetworkTCP, factory)
	sckcfg.RegisterServerFactory(libptc.NetworkTCP4, factory)
	sckcfg.RegisterServerFactory(libptc.NetworkTCP6, factory)
}

var _ ServerTcp = (*stream.Server)(nil)

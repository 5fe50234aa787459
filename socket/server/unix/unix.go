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
// server engine in socket/internal/stream. TLS is not meaningful over a
// local socket, so SetTLS is a deliberate no-op kept only to satisfy the
// shared libsck.Server-shaped surface tooling expects.
package unix

import (
	"crypto/tls"
	"errors"
	"net"
	"os"

	libprm "github.com/sabouaram/ntio/file/perm"
	libptc "github.com/sabouaram/ntio/network/protocol"
	libsck "github.com/sabouaram/ntio/socket"
	sckcfg "github.com/sabouaram/ntio/socket/config"
	"github.com/sabouaram/ntio/socket/internal/stream"

	libtls "github.com/sabouaram/ntio/certificates"
)

// MaxGID is the highest group id RegisterSocket/New accept.
const MaxGID = stream.MaxGID

var (
	ErrInvalidAddress  = errors.New("socket/server/unix: invalid address")
	ErrInvalidHandler  = errors.New("socket/server/unix: invalid handler")
	ErrInvalidInstance = errors.New("socket/server/unix: invalid server instance")
	ErrInvalidNetwork  = errors.New("socket/server/unix: invalid network")
	ErrInvalidGroup    = errors.New("socket/server/unix: invalid unix group")
	ErrShutdownTimeout = errors.New("socket/server/unix: shutdown timeout")
	ErrGoneTimeout     = errors.New("socket/server/unix: gone timeout")
)

var errSet = stream.ServerErrors{
	InvalidAddress:  ErrInvalidAddress,
	InvalidHandler:  ErrInvalidHandler,
	InvalidInstance: ErrInvalidInstance,
	InvalidGroup:    ErrInvalidGroup,
	ShutdownTimeout: ErrShutdownTimeout,
	GoneTimeout:     ErrGoneTimeout,
}

// ServerUnix is a Unix-domain stream listener driving a libsck.HandlerFunc
// over accepted connections.
type ServerUnix interface {
	libsck.Server

	RegisterFuncInfoServer(f func(msg string))
	RegisterSocket(path string, perm libprm.Perm, gid int32) error
	SetTLS(enabled bool, cfg libtls.TLSConfig) error
	IsGone() bool
	Close() error
}

// serverUnix adapts the shared engine's SetTLS, which is meaningful for
// TCP-family transports, into the permanent no-op Unix sockets require.
type serverUnix struct {
	*stream.Server
}

func (s *serverUnix) SetTLS(enabled bool, cfg libtls.TLSConfig) error {
	return nil
}

// New constructs a Unix-domain server bound to cfg.Address. Unlike TCP, an
// empty Address is accepted here and only rejected once Listen is called,
// since RegisterSocket is the idiomatic way to supply it after construction.
func New(upd libsck.UpdateConn, handler libsck.HandlerFunc, cfg sckcfg.Server) (ServerUnix, error) {
	if handler == nil {
		return nil, ErrInvalidHandler
	}
	if cfg.Network != libptc.NetworkUnix {
		return nil, ErrInvalidNetwork
	}
	if cfg.GroupPerm < -1 || cfg.GroupPerm > MaxGID {
		return nil, ErrInvalidGroup
	}

	return &serverUnix{Server: stream.NewServer(upd, handler, cfg, listen, errSet)}, nil
}

func listen(cfg sckcfg.Server, _ *tls.Config) (net.Listener, error) {
	_ = os.Remove(cfg.Address)

	ln, err := net.Listen(libptc.NetworkUnix.Code(), cfg.Address)
	if err != nil {
		return nil, err
	}

	if cfg.PermFile != 0 {
		_ = os.Chmod(cfg.Address, cfg.PermFile.FileMode())
	}
	if cfg.GroupPerm >= 0 {
		_ = os.Chown(cfg.Address, -1, int(cfg.GroupPerm))
	}

	return ln, nil
}

func init() {
	sckcfg.RegisterServerFactory(libptc.NetworkUnix, func(upd libsck.UpdateConn, handler libsck.HandlerFunc, cfg sckcfg.Server) (libsck.Server, error) {
		return New(upd, handler, cfg)
	})
}

var _ ServerUnix = (*serverUnix)(nil)

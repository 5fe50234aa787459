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
// server engine in socket/internal/dgram. TLS is not meaningful over a local
// socket, so SetTLS is a deliberate no-op kept only to satisfy the shared
// libsck.Server-shaped surface tooling expects.
package unixgram

import (
	"errors"
	"net"
	"os"

	libprm "github.com/sabouaram/ntio/file/perm"
	libptc "github.com/sabouaram/ntio/network/protocol"
	libsck "github.com/sabouaram/ntio/socket"
	sckcfg "github.com/sabouaram/ntio/socket/config"
	"github.com/sabouaram/ntio/socket/internal/dgram"

	libtls "github.com/sabouaram/ntio/certificates"
)

// MaxGID is the highest group id RegisterSocket accepts.
const MaxGID = dgram.MaxGID

var (
	ErrInvalidAddress  = errors.New("invalid listen address")
	ErrInvalidHandler  = errors.New("invalid handler")
	ErrInvalidInstance = errors.New("socket/server/unixgram: invalid server instance")
	ErrInvalidGroup    = errors.New("socket/server/unixgram: invalid unix group")
	ErrShutdownTimeout = errors.New("socket/server/unixgram: shutdown timeout")
	ErrGoneTimeout     = errors.New("socket/server/unixgram: gone timeout")
)

var errSet = dgram.ServerErrors{
	InvalidAddress:  ErrInvalidAddress,
	InvalidHandler:  ErrInvalidHandler,
	InvalidInstance: ErrInvalidInstance,
	InvalidGroup:    ErrInvalidGroup,
	ShutdownTimeout: ErrShutdownTimeout,
	GoneTimeout:     ErrGoneTimeout,
}

// ServerUnixGram is a Unix-domain datagram socket dispatching one
// libsck.HandlerFunc invocation per distinct remote peer.
type ServerUnixGram interface {
	libsck.Server

	RegisterFuncInfoServer(f func(msg string))
	RegisterSocket(path string, perm libprm.Perm, gid int32) error
	SetTLS(enabled bool, cfg libtls.TLSConfig) error
	IsGone() bool
	Close() error
}

type serverUnixGram struct {
	*dgram.Server
}

func (s *serverUnixGram) SetTLS(_ bool, _ libtls.TLSConfig) error {
	return nil
}

// New constructs a Unix-domain datagram server. Handler and Address may
// both be empty at construction time - Listen rejects those - since
// RegisterSocket is the idiomatic way to supply the path afterward.
func New(upd libsck.UpdateConn, handler libsck.HandlerFunc, cfg sckcfg.Server) (ServerUnixGram, error) {
	return &serverUnixGram{Server: dgram.NewServer(upd, handler, cfg, listen, errSet)}, nil
}

func listen(cfg sckcfg.Server) (net.PacketConn, error) {
	_ = os.Remove(cfg.Address)

	pc, err := net.ListenPacket(libptc.NetworkUnixGram.Code(), cfg.Address)
	if err != nil {
		return nil, err
	}

	if cfg.PermFile != 0 {
		_ = os.Chmod(cfg.Address, cfg.PermFile.FileMode())
	}
	if cfg.GroupPerm >= 0 {
		_ = os.Chown(cfg.Address, -1, int(cfg.GroupPerm))
	}

	return pc, nil
}

func init() {
	sckcfg.RegisterServerFactory(libptc.NetworkUnixGram, func(upd libsck.UpdateConn, handler libsck.HandlerFunc, cfg sckcfg.Server) (libsck.Server, error) {
		return New(upd, handler, cfg)
	})
}

var _ ServerUnixGram = (*serverUnixGram)(nil)

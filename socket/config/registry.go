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

package config

import (
	"sync"

	libdur "github.com/sabouaram/ntio/duration"
	libprm "github.com/sabouaram/ntio/file/perm"
	libptc "github.com/sabouaram/ntio/network/protocol"
	libsck "github.com/sabouaram/ntio/socket"
)

// ServerFactory builds a libsck.Server for one network protocol out of a
// Server configuration. Each transport package under socket/server/...
// supplies its own factory via RegisterServerFactory from an init func,
// since this package cannot import them directly without a cycle.
type ServerFactory func(upd libsck.UpdateConn, handler libsck.HandlerFunc, cfg Server) (libsck.Server, error)

// ClientFactory builds a libsck.Client for one network protocol out of a
// Client configuration.
type ClientFactory func(cfg Client) (libsck.Client, error)

var (
	registryMu      sync.RWMutex
	serverFactories = map[libptc.NetworkProtocol]ServerFactory{}
	clientFactories = map[libptc.NetworkProtocol]ClientFactory{}
)

// RegisterServerFactory binds a server factory to p. Called from the
// init func of every socket/server/... transport package.
func RegisterServerFactory(p libptc.NetworkProtocol, f ServerFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	serverFactories[p] = f
}

// RegisterClientFactory binds a client factory to p. Called from the
// init func of every socket/client/... transport package.
func RegisterClientFactory(p libptc.NetworkProtocol, f ClientFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	clientFactories[p] = f
}

func lookupServerFactory(p libptc.NetworkProtocol) (ServerFactory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := serverFactories[p]
	return f, ok
}

func lookupClientFactory(p libptc.NetworkProtocol) (ClientFactory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := clientFactories[p]
	return f, ok
}

// ServerConfig is a protocol-agnostic server configuration that dispatches
// to the registered transport factory matching Network. Unlike Server, it
// carries no TLS settings: transports without a meaningful TLS concept
// (the datagram family) would otherwise force callers to populate a field
// they can never use.
type ServerConfig struct {
	Network   libptc.NetworkProtocol
	Address   string
	PermFile  libprm.Perm
	GroupPerm int32

	ConIdleTimeout libdur.Duration
}

// New builds the libsck.Server registered for c.Network.
func (c *ServerConfig) New(upd libsck.UpdateConn, handler libsck.HandlerFunc) (libsck.Server, error) {
	f, ok := lookupServerFactory(c.Network)
	if !ok {
		return nil, ErrInvalidProtocol
	}

	cfg := Server{
		Network:        c.Network,
		Address:        c.Address,
		PermFile:       c.PermFile,
		GroupPerm:      c.GroupPerm,
		ConIdleTimeout: c.ConIdleTimeout,
	}

	return f(upd, handler, cfg)
}

// ClientConfig is a protocol-agnostic client configuration that dispatches
// to the registered transport factory matching Network.
type ClientConfig struct {
	Network libptc.NetworkProtocol
	Address string
}

// New builds the libsck.Client registered for c.Network.
func (c *ClientConfig) New() (libsck.Client, error) {
	f, ok := lookupClientFactory(c.Network)
	if !ok {
		return nil, ErrInvalidProtocol
	}

	return f(Client{Network: c.Network, Address: c.Address})
}

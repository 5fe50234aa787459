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

// Package config declares the address, protocol and TLS parameters that
// socket/client and socket/server dial or listen with. It is distinct from
// the per-connection tuning knobs in the socket package itself (buffer
// sizes, connect timeouts): this package answers "where and how to reach
// the peer", the socket package answers "how to run the connection once
// reached".
package config

import (
	"errors"
	"net"
	"runtime"

	libtls "github.com/sabouaram/ntio/certificates"
	libdur "github.com/sabouaram/ntio/duration"
	libprm "github.com/sabouaram/ntio/file/perm"
	libptc "github.com/sabouaram/ntio/network/protocol"
)

// MaxGID is the highest group id accepted for GroupPerm. It matches the
// 16-bit signed gid_t range used by most Unix group databases.
const MaxGID = 32767

var (
	// ErrInvalidProtocol is returned when Network is not one of the
	// supported protocols, or names a Unix-domain protocol on a platform
	// that does not support them.
	ErrInvalidProtocol = errors.New("socket/config: invalid protocol")

	// ErrInvalidTLSConfig is returned when TLS is enabled on a protocol
	// that cannot carry it, or when the supplied certificate config
	// cannot produce a usable *tls.Config.
	ErrInvalidTLSConfig = errors.New("socket/config: invalid TLS config")

	// ErrInvalidGroup is returned when GroupPerm falls outside
	// [-1, MaxGID].
	ErrInvalidGroup = errors.New("socket/config: invalid unix group")
)

func supportedProtocol(p libptc.NetworkProtocol) bool {
	switch p {
	case libptc.NetworkTCP, libptc.NetworkTCP4, libptc.NetworkTCP6,
		libptc.NetworkUDP, libptc.NetworkUDP4, libptc.NetworkUDP6,
		libptc.NetworkUnix, libptc.NetworkUnixGram:
		return true
	default:
		return false
	}
}

func unixUnsupportedPlatform() bool {
	return runtime.GOOS == "windows"
}

func validateAddress(p libptc.NetworkProtocol, addr string) error {
	switch {
	case p.IsLocal():
		_, err := net.ResolveUnixAddr(p.Code(), addr)
		return err
	case p.IsDatagram():
		_, err := net.ResolveUDPAddr(p.Code(), addr)
		return err
	default:
		_, err := net.ResolveTCPAddr(p.Code(), addr)
		return err
	}
}

// ClientTLS holds the TLS parameters for an outbound connection. TLS is
// only valid on a TCP-family Network; Enabled without a ServerName fails
// validation. Config.Certs is optional here — it is only needed for
// mutual TLS, since by default a client verifies the server's
// certificate rather than presenting its own.
type ClientTLS struct {
	Enabled    bool          `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	Config     libtls.Config `mapstructure:"config" json:"config" yaml:"config"`
	ServerName string        `mapstructure:"serverName" json:"serverName" yaml:"serverName"`

	fallback libtls.TLSConfig
}

// Client is the configuration for a single outbound socket connection.
// Network and Address are required.
type Client struct {
	// Network selects the protocol/family/framing combination to dial.
	Network libptc.NetworkProtocol `mapstructure:"network" json:"network" yaml:"network"`

	// Address is a "host:port" pair for TCP/UDP networks, or a filesystem
	// path for NetworkUnix/NetworkUnixGram.
	Address string `mapstructure:"address" json:"address" yaml:"address"`

	// TLS configures an optional TLS wrapper, valid on TCP-family
	// networks only.
	TLS ClientTLS `mapstructure:"tls" json:"tls" yaml:"tls"`
}

// Validate checks the configuration for internal consistency, returning
// nil if the configuration is usable as-is.
func (c Client) Validate() error {
	if !supportedProtocol(c.Network) {
		return ErrInvalidProtocol
	}

	if c.Network.IsLocal() && unixUnsupportedPlatform() {
		return ErrInvalidProtocol
	}

	if err := validateAddress(c.Network, c.Address); err != nil {
		return err
	}

	if c.TLS.Enabled {
		if !c.Network.IsStream() || c.Network.IsLocal() {
			return ErrInvalidTLSConfig
		}
		if c.TLS.ServerName == "" {
			return ErrInvalidTLSConfig
		}
	}

	return nil
}

// DefaultTLS registers a fallback TLSConfig used by GetTLS to fill in any
// field left at its zero value in TLS.Config. A nil def clears the
// fallback.
func (c *Client) DefaultTLS(def libtls.TLSConfig) {
	c.TLS.fallback = def
}

// GetTLS reports whether TLS is enabled and, if so, returns a ready-to-use
// TLSConfig (merging TLS.Config over any fallback registered via
// DefaultTLS) along with the server name to verify. When disabled it
// returns (false, nil, "").
func (c Client) GetTLS() (bool, libtls.TLSConfig, string) {
	if !c.TLS.Enabled {
		return false, nil, ""
	}

	cfg := c.TLS.Config
	if c.TLS.fallback != nil {
		return true, cfg.NewFrom(c.TLS.fallback), c.TLS.ServerName
	}

	return true, cfg.New(), c.TLS.ServerName
}

// ServerTLS holds the TLS parameters for a listening socket. TLS is only
// valid on a TCP-family Network; Enabled without at least one certificate
// in Config fails validation.
type ServerTLS struct {
	Enabled bool         `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	Config  libtls.Config `mapstructure:"config" json:"config" yaml:"config"`

	fallback libtls.TLSConfig
}

// Server is the configuration for a listening socket.
type Server struct {
	// Network selects the protocol/family/framing combination to listen on.
	Network libptc.NetworkProtocol `mapstructure:"network" json:"network" yaml:"network"`

	// Address is a "host:port" pair (host may be empty to bind all
	// interfaces) for TCP/UDP networks, or a filesystem path for
	// NetworkUnix/NetworkUnixGram.
	Address string `mapstructure:"address" json:"address" yaml:"address"`

	// PermFile is the file mode applied to a Unix socket path after
	// listening. Ignored for TCP/UDP.
	PermFile libprm.Perm `mapstructure:"permFile" json:"permFile" yaml:"permFile"`

	// GroupPerm chowns the Unix socket path to this group id. -1 leaves
	// the group unchanged (the process's current group). Values outside
	// [-1, MaxGID] are rejected.
	GroupPerm int32 `mapstructure:"groupPerm" json:"groupPerm" yaml:"groupPerm"`

	// ConIdleTimeout closes accepted connections that have been idle (no
	// read or write progress) for longer than this duration. Zero or
	// negative disables idle disconnection.
	ConIdleTimeout libdur.Duration `mapstructure:"conIdleTimeout" json:"conIdleTimeout" yaml:"conIdleTimeout"`

	// TLS configures an optional TLS wrapper, valid on TCP-family
	// networks only.
	TLS ServerTLS `mapstructure:"tls" json:"tls" yaml:"tls"`
}

// Validate checks the configuration for internal consistency, returning
// nil if the configuration is usable as-is.
func (s Server) Validate() error {
	if !supportedProtocol(s.Network) {
		return ErrInvalidProtocol
	}

	if s.Network.IsLocal() && unixUnsupportedPlatform() {
		return ErrInvalidProtocol
	}

	if err := validateAddress(s.Network, s.Address); err != nil {
		return err
	}

	if s.Network.IsLocal() {
		if s.GroupPerm < -1 || s.GroupPerm > MaxGID {
			return ErrInvalidGroup
		}
	}

	if s.TLS.Enabled {
		if !s.Network.IsStream() || s.Network.IsLocal() {
			return ErrInvalidTLSConfig
		}
		if len(s.TLS.Config.Certs) == 0 {
			return ErrInvalidTLSConfig
		}
	}

	return nil
}

// DefaultTLS registers a fallback TLSConfig used by GetTLS to fill in any
// field left at its zero value in TLS.Config. A nil def clears the
// fallback.
func (s *Server) DefaultTLS(def libtls.TLSConfig) {
	s.TLS.fallback = def
}

// GetTLS reports whether TLS is enabled and, if so, returns a ready-to-use
// TLSConfig (merging TLS.Config over any fallback registered via
// DefaultTLS). When disabled it returns (false, nil).
func (s Server) GetTLS() (bool, libtls.TLSConfig) {
	if !s.TLS.Enabled {
		return false, nil
	}

	cfg := s.TLS.Config
	if s.TLS.fallback != nil {
		return true, cfg.NewFrom(s.TLS.fallback)
	}

	return true, cfg.New()
}

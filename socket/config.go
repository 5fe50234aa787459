/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2021 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

package socket

import (
	"net"
	"strings"

	libdur "github.com/sabouaram/ntio/duration"
	liberr "github.com/sabouaram/ntio/errors"
	libptc "github.com/sabouaram/ntio/network/protocol"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// MaxGID is the highest group id accepted for GroupPerm. It matches the
// 16-bit signed gid_t range used by most Unix group databases.
const MaxGID = 32767

var validate = validator.New()

// Client is the configuration for a single outbound socket connection.
// Network and Address are required; every other field has a usable zero
// value.
type Client struct {
	// Network selects the protocol/family/framing combination to dial.
	Network libptc.NetworkProtocol `mapstructure:"network" json:"network" yaml:"network" validate:"required,nefield=NetworkEmpty"`

	// Address is a "host:port" pair for TCP/UDP networks, or a filesystem
	// path for NetworkUnix/NetworkUnixGram.
	Address string `mapstructure:"address" json:"address" yaml:"address" validate:"required"`

	// ConnectTimeout bounds how long Dial waits before giving up. Zero
	// means the reactor's default connect timeout applies.
	ConnectTimeout libdur.Duration `mapstructure:"connectTimeout" json:"connectTimeout" yaml:"connectTimeout"`

	// BufferSize overrides DefaultBufferSize for this client's receive buffer.
	BufferSize int `mapstructure:"bufferSize" json:"bufferSize" yaml:"bufferSize" validate:"omitempty,min=1"`
}

// Validate checks the configuration for internal consistency, returning nil
// if the configuration is usable as-is.
func (c Client) Validate() error {
	if err := validate.Struct(c); err != nil {
		return liberr.KindInvalidArgument.Error(err)
	}

	if !c.Network.IsValid() || c.Network == libptc.NetworkEmpty {
		return liberr.KindInvalidArgument.Error(nil)
	}

	if c.Network.IsLocal() {
		if strings.TrimSpace(c.Address) == "" {
			return liberr.KindInvalidArgument.Error(nil)
		}
		return nil
	}

	if _, _, err := net.SplitHostPort(c.Address); err != nil {
		return liberr.KindInvalidArgument.Error(err)
	}

	return nil
}

// Server is the configuration for a listening socket.
type Server struct {
	// Network selects the protocol/family/framing combination to listen on.
	Network libptc.NetworkProtocol `mapstructure:"network" json:"network" yaml:"network" validate:"required,nefield=NetworkEmpty"`

	// Address is a "host:port" pair (host may be empty to bind all
	// interfaces) for TCP/UDP networks, or a filesystem path for
	// NetworkUnix/NetworkUnixGram.
	Address string `mapstructure:"address" json:"address" yaml:"address" validate:"required"`

	// PermFile is the file mode applied to a Unix socket path after
	// listening. Ignored for TCP/UDP.
	PermFile uint32 `mapstructure:"permFile" json:"permFile" yaml:"permFile"`

	// GroupPerm chowns the Unix socket path to this group id. -1 leaves
	// the group unchanged (the process's current group). Values above
	// MaxGID are rejected.
	GroupPerm int `mapstructure:"groupPerm" json:"groupPerm" yaml:"groupPerm" validate:"omitempty,max=32767"`

	// ConIdleTimeout closes accepted connections that have been idle
	// (no read or write progress) for longer than this duration. Zero
	// disables idle disconnection.
	ConIdleTimeout libdur.Duration `mapstructure:"conIdleTimeout" json:"conIdleTimeout" yaml:"conIdleTimeout"`

	// BufferSize overrides DefaultBufferSize for accepted connections.
	BufferSize int `mapstructure:"bufferSize" json:"bufferSize" yaml:"bufferSize" validate:"omitempty,min=1"`

	// Backlog is the listen(2) backlog size. Zero means the OS default.
	Backlog int `mapstructure:"backlog" json:"backlog" yaml:"backlog" validate:"omitempty,min=0"`
}

// Validate checks the configuration for internal consistency, returning nil
// if the configuration is usable as-is.
func (s Server) Validate() error {
	if err := validate.Struct(s); err != nil {
		return liberr.KindInvalidArgument.Error(err)
	}

	if !s.Network.IsValid() || s.Network == libptc.NetworkEmpty {
		return liberr.KindInvalidArgument.Error(nil)
	}

	if s.GroupPerm > MaxGID {
		return liberr.KindInvalidArgument.Error(nil)
	}

	if s.Network.IsLocal() {
		if strings.TrimSpace(s.Address) == "" {
			return liberr.KindInvalidArgument.Error(nil)
		}
		return nil
	}

	if _, _, err := net.SplitHostPort(s.Address); err != nil {
		return liberr.KindInvalidArgument.Error(err)
	}

	return nil
}

// IPAddressType narrows name resolution to one address family before
// ConnectOptions.IPAddressSelector indexes into the result set.
type IPAddressType uint8

const (
	IPAddressTypeAny IPAddressType = iota
	IPAddressTypeV4
	IPAddressTypeV6
)

// ConnectOptions tunes a single Connect call beyond the static Client
// configuration: resolver recursion and address/port selection, and the
// retry/backoff envelope around the dial itself. The zero value is a
// single immediate attempt against the first resolved address.
type ConnectOptions struct {
	// Token correlates this connect attempt across log lines and across
	// the CallbackQueueEntry it may end up waiting behind. Generated on
	// first use if left at its zero value.
	Token uuid.UUID `mapstructure:"token" json:"token" yaml:"token"`

	// RetryCount is the number of additional dial attempts after the
	// first failure. Zero means no retry.
	RetryCount int `mapstructure:"retryCount" json:"retryCount" yaml:"retryCount" validate:"omitempty,min=0"`

	// RetryInterval is the delay between retry attempts.
	RetryInterval libdur.Duration `mapstructure:"retryInterval" json:"retryInterval" yaml:"retryInterval"`

	// IPAddressFallback allows falling through to the other address
	// family when the preferred IPAddressType has no resolved entries.
	IPAddressFallback bool `mapstructure:"ipAddressFallback" json:"ipAddressFallback" yaml:"ipAddressFallback"`

	// IPAddressType narrows resolution to IPv4-only or IPv6-only. The
	// zero value, IPAddressTypeAny, considers every resolved address.
	IPAddressType IPAddressType `mapstructure:"ipAddressType" json:"ipAddressType" yaml:"ipAddressType"`

	// IPAddressSelector indexes into the resolved address set, modulo
	// its size, instead of always dialing the first entry.
	IPAddressSelector int `mapstructure:"ipAddressSelector" json:"ipAddressSelector" yaml:"ipAddressSelector" validate:"omitempty,min=0"`

	// PortFallback allows falling back to a service's other advertised
	// port when the preferred one is unreachable.
	PortFallback bool `mapstructure:"portFallback" json:"portFallback" yaml:"portFallback"`

	// PortSelector indexes into a service's advertised port list, modulo
	// its size, instead of always dialing the first entry.
	PortSelector int `mapstructure:"portSelector" json:"portSelector" yaml:"portSelector" validate:"omitempty,min=0"`

	// Transport overrides the Client's configured Network for this one
	// connect attempt. NetworkEmpty means "use the Client's Network".
	Transport libptc.NetworkProtocol `mapstructure:"transport" json:"transport" yaml:"transport"`

	// Deadline bounds the whole connect attempt, including retries and
	// any recursive resolution. Zero means no deadline beyond the
	// context passed to Connect.
	Deadline libdur.Duration `mapstructure:"deadline" json:"deadline" yaml:"deadline"`

	// Recurse allows the resolver to walk CNAME chains to completion
	// instead of returning after the first indirection.
	Recurse bool `mapstructure:"recurse" json:"recurse" yaml:"recurse"`
}

// Validate checks the configuration for internal consistency, returning nil
// if the configuration is usable as-is.
func (o ConnectOptions) Validate() error {
	if err := validate.Struct(o); err != nil {
		return liberr.KindInvalidArgument.Error(err)
	}
	return nil
}

// WithToken returns a copy of o with Token set, generating a fresh one if
// it is still the zero value.
func (o ConnectOptions) WithToken() ConnectOptions {
	if o.Token == uuid.Nil {
		o.Token = uuid.New()
	}
	return o
}

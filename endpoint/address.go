/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

// Package endpoint renders the async I/O core's Endpoint/IpAddress/Port/
// Transport tagged unions as plain Go types, built on top of the
// network/protocol enumeration.
package endpoint

import (
	"net"
	"net/netip"
	"strconv"

	"github.com/sabouaram/ntio/errors"
	"github.com/sabouaram/ntio/network/protocol"
)

// AddressFamily distinguishes the two IpAddress variants.
type AddressFamily uint8

const (
	FamilyUnspecified AddressFamily = iota
	FamilyV4
	FamilyV6
)

// IpAddress is a tagged union over a 32-bit IPv4 address and a 128-bit
// IPv6 address carrying an optional zone (scope) id.
type IpAddress struct {
	family AddressFamily
	addr   netip.Addr
	zone   string
}

// IpAddressFromNetIP wraps a netip.Addr, inferring the family from
// Is4()/Is6().
func IpAddressFromNetIP(a netip.Addr) IpAddress {
	fam := FamilyV6
	if a.Is4() || a.Is4In6() {
		fam = FamilyV4
	}
	return IpAddress{family: fam, addr: a, zone: a.Zone()}
}

// ParseIpAddress parses a textual IPv4 or IPv6 address, accepting a
// "%zone" suffix on IPv6 literals.
func ParseIpAddress(s string) (IpAddress, error) {
	a, err := netip.ParseAddr(s)
	if err != nil {
		return IpAddress{}, errors.KindInvalidArgument.Error(err)
	}
	return IpAddressFromNetIP(a), nil
}

func (a IpAddress) Family() AddressFamily { return a.family }
func (a IpAddress) IsV4() bool            { return a.family == FamilyV4 }
func (a IpAddress) IsV6() bool            { return a.family == FamilyV6 }
func (a IpAddress) Zone() string          { return a.zone }
func (a IpAddress) NetIP() net.IP         { return net.IP(a.addr.AsSlice()) }
func (a IpAddress) NetipAddr() netip.Addr { return a.addr }

func (a IpAddress) String() string {
	return a.addr.String()
}

// IsUnspecified reports the zero value (no address parsed).
func (a IpAddress) IsUnspecified() bool {
	return a.family == FamilyUnspecified || !a.addr.IsValid()
}

// Port is a 16-bit TCP/UDP port number.
type Port uint16

func (p Port) String() string {
	return strconv.Itoa(int(p))
}

func (p Port) Valid() bool { return p != 0 }

// EndpointKind distinguishes the two Endpoint variants.
type EndpointKind uint8

const (
	EndpointIP EndpointKind = iota
	EndpointLocal
)

// Endpoint is a tagged union of an (IpAddress, Port) pair and a filesystem
// path naming a Unix domain socket.
type Endpoint struct {
	kind EndpointKind
	ip   IpAddress
	port Port
	path string
}

func NewIPEndpoint(ip IpAddress, port Port) Endpoint {
	return Endpoint{kind: EndpointIP, ip: ip, port: port}
}

func NewLocalEndpoint(path string) Endpoint {
	return Endpoint{kind: EndpointLocal, path: path}
}

func (e Endpoint) Kind() EndpointKind { return e.kind }
func (e Endpoint) IsIP() bool         { return e.kind == EndpointIP }
func (e Endpoint) IsLocal() bool      { return e.kind == EndpointLocal }
func (e Endpoint) IP() IpAddress      { return e.ip }
func (e Endpoint) Port() Port         { return e.port }
func (e Endpoint) Path() string       { return e.path }

func (e Endpoint) String() string {
	switch e.kind {
	case EndpointIP:
		return net.JoinHostPort(e.ip.String(), e.port.String())
	case EndpointLocal:
		return e.path
	default:
		return ""
	}
}

// NetworkProtocol resolves the wire-level dial/listen string this endpoint
// should use given the transport's choice of TCP/UDP/LOCAL and stream/
// datagram framing.
func (e Endpoint) NetworkProtocol(t Transport) protocol.NetworkProtocol {
	switch {
	case t.kind == TransportLocal && t.framing == FramingStream:
		return protocol.NetworkUnix
	case t.kind == TransportLocal && t.framing == FramingDatagram:
		return protocol.NetworkUnixGram
	case t.kind == TransportTCP && e.ip.IsV4():
		return protocol.NetworkTCP4
	case t.kind == TransportTCP && e.ip.IsV6():
		return protocol.NetworkTCP6
	case t.kind == TransportUDP && e.ip.IsV4():
		return protocol.NetworkUDP4
	case t.kind == TransportUDP && e.ip.IsV6():
		return protocol.NetworkUDP6
	default:
		return protocol.NetworkEmpty
	}
}

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

// Package protocol enumerates the network protocols the socket and resolver
// packages dial, listen on, or accept from. The values are ordered the way
// net.Dial/net.Listen expect their "network" string argument so that
// NetworkProtocol.Code() can be handed straight to the standard library.
package protocol

// NetworkProtocol is a closed enumeration of the "network" strings accepted
// by net.Dial, net.Listen and friends, plus NetworkEmpty for the zero value.
type NetworkProtocol uint8

const (
	NetworkEmpty NetworkProtocol = iota
	NetworkUnix
	NetworkTCP
	NetworkTCP4
	NetworkTCP6
	NetworkUDP
	NetworkUDP4
	NetworkUDP6
	NetworkIP
	NetworkIP4
	NetworkIP6
	NetworkUnixGram
)

// Int returns the protocol's numeric value as an int.
func (p NetworkProtocol) Int() int { return int(p) }

// Int64 returns the protocol's numeric value as an int64.
func (p NetworkProtocol) Int64() int64 { return int64(p) }

// Uint returns the protocol's numeric value as a uint.
func (p NetworkProtocol) Uint() uint { return uint(p) }

// Uint64 returns the protocol's numeric value as a uint64.
func (p NetworkProtocol) Uint64() uint64 { return uint64(p) }

// IsValid reports whether p is one of the named constants (NetworkEmpty
// included).
func (p NetworkProtocol) IsValid() bool {
	return p <= NetworkUnixGram
}

// IsStream reports whether the protocol is connection-oriented.
func (p NetworkProtocol) IsStream() bool {
	switch p {
	case NetworkTCP, NetworkTCP4, NetworkTCP6, NetworkUnix:
		return true
	default:
		return false
	}
}

// IsDatagram reports whether the protocol is message-oriented.
func (p NetworkProtocol) IsDatagram() bool {
	switch p {
	case NetworkUDP, NetworkUDP4, NetworkUDP6, NetworkUnixGram:
		return true
	default:
		return false
	}
}

// IsLocal reports whether the protocol addresses the local (Unix) domain.
func (p NetworkProtocol) IsLocal() bool {
	return p == NetworkUnix || p == NetworkUnixGram
}

// IsIPv6Only reports whether the protocol is pinned to IPv6.
func (p NetworkProtocol) IsIPv6Only() bool {
	switch p {
	case NetworkTCP6, NetworkUDP6, NetworkIP6:
		return true
	default:
		return false
	}
}

// IsIPv4Only reports whether the protocol is pinned to IPv4.
func (p NetworkProtocol) IsIPv4Only() bool {
	switch p {
	case NetworkTCP4, NetworkUDP4, NetworkIP4:
		return true
	default:
		return false
	}
}

// IsTCP reports whether the protocol is one of the TCP family members.
func (p NetworkProtocol) IsTCP() bool {
	switch p {
	case NetworkTCP, NetworkTCP4, NetworkTCP6:
		return true
	default:
		return false
	}
}

// IsUDP reports whether the protocol is one of the UDP family members.
func (p NetworkProtocol) IsUDP() bool {
	switch p {
	case NetworkUDP, NetworkUDP4, NetworkUDP6:
		return true
	default:
		return false
	}
}

// IsUnix reports whether the protocol is the stream-oriented Unix domain
// socket.
func (p NetworkProtocol) IsUnix() bool {
	return p == NetworkUnix
}

// IsUnixGram reports whether the protocol is the datagram-oriented Unix
// domain socket.
func (p NetworkProtocol) IsUnixGram() bool {
	return p == NetworkUnixGram
}

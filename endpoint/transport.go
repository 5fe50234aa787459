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

package endpoint

import "github.com/sabouaram/ntio/errors"

// TransportKind is the protocol axis of a Transport value.
type TransportKind uint8

const (
	TransportTCP TransportKind = iota
	TransportUDP
	TransportLocal
)

// Framing is the stream/datagram axis of a Transport value.
type Framing uint8

const (
	FramingStream Framing = iota
	FramingDatagram
)

// Transport combines a TransportKind, an AddressFamily and a Framing.
// Only six combinations are meaningful; NewTransport rejects the rest.
type Transport struct {
	kind    TransportKind
	family  AddressFamily
	framing Framing
}

var (
	TCPv4 = Transport{TransportTCP, FamilyV4, FramingStream}
	TCPv6 = Transport{TransportTCP, FamilyV6, FramingStream}
	UDPv4 = Transport{TransportUDP, FamilyV4, FramingDatagram}
	UDPv6 = Transport{TransportUDP, FamilyV6, FramingDatagram}
	LocalStream = Transport{TransportLocal, FamilyUnspecified, FramingStream}
	LocalDatagram = Transport{TransportLocal, FamilyUnspecified, FramingDatagram}
)

// NewTransport validates the (kind, family, framing) triple against the six
// meaningful combinations before returning it.
func NewTransport(kind TransportKind, family AddressFamily, framing Framing) (Transport, error) {
	t := Transport{kind: kind, family: family, framing: framing}
	if !t.valid() {
		return Transport{}, errors.KindInvalidArgument.Error()
	}
	return t, nil
}

func (t Transport) valid() bool {
	switch {
	case t.kind == TransportTCP && t.framing == FramingStream && (t.family == FamilyV4 || t.family == FamilyV6):
		return true
	case t.kind == TransportUDP && t.framing == FramingDatagram && (t.family == FamilyV4 || t.family == FamilyV6):
		return true
	case t.kind == TransportLocal && (t.framing == FramingStream || t.framing == FramingDatagram):
		return true
	default:
		return false
	}
}

func (t Transport) Kind() TransportKind    { return t.kind }
func (t Transport) Family() AddressFamily  { return t.family }
func (t Transport) Framing() Framing       { return t.framing }
func (t Transport) IsStream() bool         { return t.framing == FramingStream }
func (t Transport) IsDatagram() bool       { return t.framing == FramingDatagram }
func (t Transport) IsLocal() bool          { return t.kind == TransportLocal }

func (t Transport) String() string {
	var k string
	switch t.kind {
	case TransportTCP:
		k = "tcp"
	case TransportUDP:
		k = "udp"
	case TransportLocal:
		k = "local"
	}
	switch t.family {
	case FamilyV4:
		k += "4"
	case FamilyV6:
		k += "6"
	}
	return k
}

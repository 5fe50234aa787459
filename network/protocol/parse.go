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

package protocol

import (
	"math"
	"strings"
)

// Parse converts a case-insensitive, whitespace- and quote-trimmed network
// string ("tcp", " TCP ", `"udp"`, "`unix`") into its NetworkProtocol value.
// Unrecognized input returns NetworkEmpty.
func Parse(s string) NetworkProtocol {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"`)
	s = strings.Trim(s, "'")
	s = strings.Trim(s, "`")
	s = strings.ToLower(s)

	if p, ok := byCode[s]; ok {
		return p
	}
	return NetworkEmpty
}

// ParseBytes is Parse over a byte slice, avoiding an allocation for callers
// that already have one (e.g. decoding a configuration file).
func ParseBytes(b []byte) NetworkProtocol {
	if len(b) == 0 {
		return NetworkEmpty
	}
	return Parse(string(b))
}

// ParseInt64 converts a raw numeric value back into a NetworkProtocol,
// clamping out-of-range input to NetworkEmpty.
func ParseInt64(i int64) NetworkProtocol {
	if i < 0 || i > math.MaxUint8 {
		return NetworkEmpty
	}
	p := NetworkProtocol(i)
	if !p.IsValid() {
		return NetworkEmpty
	}
	return p
}

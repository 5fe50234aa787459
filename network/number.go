/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package network

import "strconv"

// Number is a plain decimal counter (packets, errors, drops, connections)
// formatted with SI decimal prefixes (K = 10^3, M = 10^6, ...).
type Number uint64

func (n Number) String() string {
	return strconv.FormatUint(uint64(n), 10)
}

// AsBytes reinterprets the counter as a byte count for binary-unit
// formatting.
func (n Number) AsBytes() Bytes {
	return Bytes(n)
}

func (n Number) AsUint64() uint64 {
	return uint64(n)
}

func (n Number) AsFloat64() float64 {
	return float64(n)
}

// FormatUnitInt renders n scaled to the largest decimal unit not exceeding
// it, rounded to the nearest integer: "   1 K", " 999 M", "  10 K" (rounded
// up from 9999).
func (n Number) FormatUnitInt() string {
	return formatUnitInt(uint64(n), 1000, func(u string) string { return u })
}

// FormatUnitFloat is FormatUnitInt with a fixed decimal precision; zero
// precision is equivalent to FormatUnitInt.
func (n Number) FormatUnitFloat(precision int) string {
	return formatUnitFloat(uint64(n), 1000, precision, func(u string) string { return u })
}

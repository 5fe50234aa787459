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

// Bytes is a byte counter (buffer sizes, socket throughput) formatted with
// binary prefixes (KB = 2^10, MB = 2^20, ...) rather than Number's decimal
// ones.
type Bytes uint64

func (b Bytes) String() string {
	return strconv.FormatUint(uint64(b), 10)
}

// AsNumber reinterprets the byte count as a plain decimal counter.
func (b Bytes) AsNumber() Number {
	return Number(b)
}

func (b Bytes) AsUint64() uint64 {
	return uint64(b)
}

func (b Bytes) AsFloat64() float64 {
	return float64(b)
}

func bytesSuffix(unit string) string {
	if unit == "" {
		return ""
	}
	return unit + "B"
}

// FormatUnitInt renders b scaled to the largest binary unit not exceeding
// it, rounded to the nearest integer: "   1 KB", " 100 MB".
func (b Bytes) FormatUnitInt() string {
	return formatUnitInt(uint64(b), 1024, bytesSuffix)
}

// FormatUnitFloat is FormatUnitInt with a fixed decimal precision; zero
// precision is equivalent to FormatUnitInt.
func (b Bytes) FormatUnitFloat(precision int) string {
	return formatUnitFloat(uint64(b), 1024, precision, bytesSuffix)
}

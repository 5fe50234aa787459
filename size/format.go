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
 */

package size

import (
	"fmt"
	"math"
)

// String renders the size using the largest unit that keeps the value at
// or above 1, e.g. "5.00 KB", "100 B".
func (s Size) String() string {
	switch {
	case s >= SizeExa:
		return fmt.Sprintf("%.2f EB", float64(s)/float64(SizeExa))
	case s >= SizePeta:
		return fmt.Sprintf("%.2f PB", float64(s)/float64(SizePeta))
	case s >= SizeTera:
		return fmt.Sprintf("%.2f TB", float64(s)/float64(SizeTera))
	case s >= SizeGiga:
		return fmt.Sprintf("%.2f GB", float64(s)/float64(SizeGiga))
	case s >= SizeMega:
		return fmt.Sprintf("%.2f MB", float64(s)/float64(SizeMega))
	case s >= SizeKilo:
		return fmt.Sprintf("%.2f KB", float64(s)/float64(SizeKilo))
	default:
		return fmt.Sprintf("%d B", uint64(s))
	}
}

// Uint64 returns the size as a uint64 byte count.
func (s Size) Uint64() uint64 { return uint64(s) }

// Int64 returns the size as an int64 byte count, saturating at
// math.MaxInt64 rather than overflowing into a negative value.
func (s Size) Int64() int64 {
	if s > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(s)
}

// Float64 returns the size as a float64 byte count.
func (s Size) Float64() float64 { return float64(s) }

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
	"strconv"
	"strings"
)

var unitMultiplier = map[string]Size{
	"B":   SizeUnit,
	"K":   SizeKilo,
	"KB":  SizeKilo,
	"KIB": SizeKilo,
	"M":   SizeMega,
	"MB":  SizeMega,
	"MIB": SizeMega,
	"G":   SizeGiga,
	"GB":  SizeGiga,
	"GIB": SizeGiga,
	"T":   SizeTera,
	"TB":  SizeTera,
	"TIB": SizeTera,
	"P":   SizePeta,
	"PB":  SizePeta,
	"PIB": SizePeta,
	"E":   SizeExa,
	"EB":  SizeExa,
	"EIB": SizeExa,
}

// Parse interprets a human-readable byte size such as "512", "5MB",
// "1.5G" or "2KiB" and returns the corresponding Size.
func Parse(s string) (Size, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("size: empty value")
	}

	i := 0
	for i < len(s) && (s[i] == '.' || s[i] == '-' || (s[i] >= '0' && s[i] <= '9')) {
		i++
	}
	numPart := s[:i]
	unitPart := strings.ToUpper(strings.TrimSpace(s[i:]))

	if numPart == "" {
		return 0, fmt.Errorf("size: %q has no numeric value", s)
	}

	f, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return 0, fmt.Errorf("size: invalid numeric value %q: %w", numPart, err)
	}
	if f < 0 {
		return 0, fmt.Errorf("size: negative value %q", s)
	}

	if unitPart == "" {
		return Size(f), nil
	}

	mult, ok := unitMultiplier[unitPart]
	if !ok {
		return 0, fmt.Errorf("size: unknown unit %q in %q", unitPart, s)
	}

	return Size(f * float64(mult)), nil
}

// ParseSize is a deprecated alias for Parse, kept for callers migrating
// from the teacher's older naming.
func ParseSize(s string) (Size, error) { return Parse(s) }

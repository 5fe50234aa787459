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

import "fmt"

// SI power-of-ten exponents shared by Number (decimal) and Bytes (binary),
// where Bytes substitutes 1024 for 1000 at each step.
const (
	_PowerUnit_  = 0
	_PowerKilo_  = 3
	_PowerMega_  = 6
	_PowerGiga_  = 9
	_PowerTera_  = 12
	_PowerPeta_  = 15
	_PowerExa_   = 18
	_PowerZetta_ = 21
	_PowerYotta_ = 24
)

func power2Unit(power int) string {
	switch power {
	case _PowerUnit_:
		return ""
	case _PowerKilo_:
		return "K"
	case _PowerMega_:
		return "M"
	case _PowerGiga_:
		return "G"
	case _PowerTera_:
		return "T"
	case _PowerPeta_:
		return "P"
	case _PowerExa_:
		return "E"
	case _PowerZetta_:
		return "Z"
	case _PowerYotta_:
		return "Y"
	default:
		return ""
	}
}

// powerList returns the known power-of-ten exponents in descending order so
// that callers can find the largest unit not exceeding a value by a single
// linear scan.
func powerList() []int {
	return []int{
		_PowerYotta_,
		_PowerZetta_,
		_PowerExa_,
		_PowerPeta_,
		_PowerTera_,
		_PowerGiga_,
		_PowerMega_,
		_PowerKilo_,
		_PowerUnit_,
	}
}

// scaleFor computes base^(power/3), the divisor associated with a given SI
// power for the given base (1000 for decimal, 1024 for binary).
func scaleFor(base float64, power int) float64 {
	scale := 1.0
	steps := power / 3
	for i := 0; i < steps; i++ {
		scale *= base * base * base
	}
	return scale
}

// formatUnitInt renders v scaled down to the largest unit not exceeding it,
// rounded to the nearest integer, left-padded to four characters. Values
// below the smallest unit threshold are rendered with no suffix at all.
func formatUnitInt(v uint64, base float64, suffix func(string) string) string {
	for _, p := range powerList() {
		if p == _PowerUnit_ {
			continue
		}
		scale := scaleFor(base, p)
		if float64(v) >= scale {
			scaled := float64(v) / scale
			return fmt.Sprintf("%4.0f %s", scaled, suffix(power2Unit(p)))
		}
	}
	return fmt.Sprintf("%4d", v)
}

// formatUnitFloat is formatUnitInt's fixed-precision counterpart; zero
// precision degrades to formatUnitInt.
func formatUnitFloat(v uint64, base float64, precision int, suffix func(string) string) string {
	if precision <= 0 {
		return formatUnitInt(v, base, suffix)
	}
	for _, p := range powerList() {
		if p == _PowerUnit_ {
			continue
		}
		scale := scaleFor(base, p)
		if float64(v) >= scale {
			scaled := float64(v) / scale
			return fmt.Sprintf("%4.*f %s", precision, scaled, suffix(power2Unit(p)))
		}
	}
	return fmt.Sprintf("%4d", v)
}

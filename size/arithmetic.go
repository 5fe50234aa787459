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
	"reflect"
)

// toFloat64 converts any built-in numeric operand (int family, uint
// family, float family) to a float64. Methods below accept `any` rather
// than a type parameter because Go methods cannot be generic; a type
// switch on the common cases avoids a reflect call for the usual
// int/float64 operands callers pass.
func toFloat64(n any) float64 {
	switch v := n.(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float64:
		return v
	case uint64:
		return float64(v)
	case Size:
		return float64(v)
	default:
		rv := reflect.ValueOf(n)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return float64(rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return float64(rv.Uint())
		case reflect.Float32, reflect.Float64:
			return rv.Float()
		default:
			return 0
		}
	}
}

// Add increases the receiver by n, saturating at math.MaxUint64 on
// overflow instead of wrapping. Errors from overflow are discarded; use
// AddErr to observe them.
func (s *Size) Add(n any) { _ = s.AddErr(n) }

// AddErr is Add's error-observing form: it reports an overflow instead of
// silently saturating.
func (s *Size) AddErr(n any) error {
	d := toFloat64(n)
	if d <= 0 {
		return nil
	}
	if d > float64(math.MaxUint64)-float64(*s) {
		*s = Size(math.MaxUint64)
		return fmt.Errorf("size: addition overflow")
	}
	*s += Size(d)
	return nil
}

// Sub decreases the receiver by n, flooring at zero instead of
// underflowing. Errors are discarded; use SubErr to observe them.
func (s *Size) Sub(n any) { _ = s.SubErr(n) }

// SubErr is Sub's error-observing form: it reports an underflow instead of
// silently flooring at zero.
func (s *Size) SubErr(n any) error {
	d := toFloat64(n)
	if d <= 0 {
		return nil
	}
	if d > float64(*s) {
		*s = SizeNul
		return fmt.Errorf("size: invalid substractor, result would be negative")
	}
	*s -= Size(d)
	return nil
}

// Mul scales the receiver by a numeric factor, ceiling to the nearest
// whole byte and saturating at math.MaxUint64 on overflow. A zero or
// negative factor zeroes the receiver. Errors are discarded; use MulErr
// to observe them.
func (s *Size) Mul(n any) { _ = s.MulErr(n) }

// MulErr is Mul's error-observing form.
func (s *Size) MulErr(n any) error {
	f := toFloat64(n)
	if f <= 0 {
		*s = SizeNul
		return nil
	}
	result := math.Ceil(float64(*s) * f)
	if result > math.MaxUint64 {
		*s = Size(math.MaxUint64)
		return fmt.Errorf("size: multiplication overflow")
	}
	*s = Size(result)
	return nil
}

// Div scales the receiver down by a numeric divisor, ceiling to the
// nearest whole byte. A zero or negative divisor leaves the receiver
// unchanged; use DivErr to observe that condition.
func (s *Size) Div(n any) { _ = s.DivErr(n) }

// DivErr is Div's error-observing form: it reports a zero or negative
// divisor instead of leaving the receiver unchanged.
func (s *Size) DivErr(n any) error {
	f := toFloat64(n)
	if f <= 0 {
		return fmt.Errorf("size: invalid diviser %v", f)
	}
	*s = Size(math.Ceil(float64(*s) / f))
	return nil
}

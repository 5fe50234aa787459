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

import (
	"fmt"
	"sort"
)

// Stats identifies one counter exposed by a network interface (see the
// hostnet monitor adapter, which sources these from gopsutil/v3/net).
type Stats uint8

const (
	StatBytes Stats = iota + 1
	StatPackets
	StatFifo
	StatDrop
	StatErr
)

func (s Stats) String() string {
	switch s {
	case StatBytes:
		return "Traffic"
	case StatPackets:
		return "Packets"
	case StatFifo:
		return "Fifo"
	case StatDrop:
		return "Drop"
	case StatErr:
		return "Error"
	default:
		return ""
	}
}

// FormatUnitInt renders n the way this stat is conventionally displayed:
// binary byte units for traffic, decimal units for everything else.
func (s Stats) FormatUnitInt(n Number) string {
	switch s {
	case StatBytes:
		return n.AsBytes().FormatUnitInt()
	case StatPackets, StatFifo, StatDrop, StatErr:
		return n.FormatUnitInt()
	default:
		return ""
	}
}

// FormatUnitFloat is FormatUnitInt with a fixed decimal precision.
func (s Stats) FormatUnitFloat(n Number, precision int) string {
	switch s {
	case StatBytes:
		return n.AsBytes().FormatUnitFloat(precision)
	case StatPackets, StatFifo, StatDrop, StatErr:
		return n.FormatUnitFloat(precision)
	default:
		return ""
	}
}

// FormatUnit applies this stat's default precision: two decimals for
// traffic (binary units benefit from a fractional KB/MB/GB reading),
// integer rounding for packet-ish counters.
func (s Stats) FormatUnit(n Number) string {
	switch s {
	case StatBytes:
		return s.FormatUnitFloat(n, 2)
	case StatPackets, StatFifo, StatDrop, StatErr:
		return s.FormatUnitInt(n)
	default:
		return ""
	}
}

// FormatLabelUnit prefixes FormatUnit's result with "<Name>: ".
func (s Stats) FormatLabelUnit(n Number) string {
	return fmt.Sprintf("%s: %s", s.String(), s.FormatUnit(n))
}

// FormatLabelUnitPadded is FormatLabelUnit with the label padded to the
// width of the longest stat name, so columns of mixed stats line up.
func (s Stats) FormatLabelUnitPadded(n Number) string {
	return fmt.Sprintf("%-8s: %s", s.String(), s.FormatUnit(n))
}

// ListStatsSort returns the numeric values of every known Stats constant in
// ascending order.
func ListStatsSort() []int {
	list := []int{
		int(StatBytes),
		int(StatPackets),
		int(StatFifo),
		int(StatDrop),
		int(StatErr),
	}
	sort.Ints(list)
	return list
}

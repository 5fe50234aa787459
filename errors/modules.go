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

package errors

// Code ranges, one block per package that registers its own errors. Each
// block reserves 100 values; a package with more than that is a sign it
// should be split, not a reason to shrink the gap.
const (
	MinPkgConfig    = 500
	MinPkgLogger    = 1600
	MinPkgMonitor   = 2000
	MinPkgNetwork   = 2200
	MinPkgSemaphore = 2900

	MinPkgReactor  = 4100
	MinPkgBufPool  = 4200
	MinPkgBlob     = 4300
	MinPkgSocket   = 4400
	MinPkgQueue    = 4500
	MinPkgIface    = 4600
	MinPkgRateLim  = 4700
	MinPkgResolver = 4800
	MinPkgDNSWire  = 4900
	MinPkgTimer       = 5000
	MinPkgExecutor    = 5100
	MinPkgCertificate = 5200

	MinAvailable = 5300

	// MIN_AVAILABLE @Deprecated use MinAvailable constant
	MIN_AVAILABLE = MinAvailable
)

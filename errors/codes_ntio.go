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

// Universal error kinds shared by every layer of the async socket I/O core
// (reactor, buffer pool, socket state machines, interface, rate limiter,
// resolver). Unlike platform errno values these are stable across
// operating systems; platform-specific mapping tables translate syscall
// errors onto this range.
//
// WouldBlock and Interrupted are recovered locally by their callers and
// must never be handed to application code as a terminal error on a
// non-blocking operation - see the ErrorFilter helpers in the socket
// package.
const (
	// KindOk is not registered as a code: the absence of an error is a nil
	// Error, not a KindOk-coded one.

	KindWouldBlock CodeError = MinPkgSocket + iota
	KindInterrupted
	KindCancelled
	KindTimedOut
	KindInvalidArgument
	KindNotAuthorized
	KindUnreachable
	KindConnectionReset
	KindConnectionRefused
	KindAddressInUse
	KindAddressNotAvailable
	KindMessageSize
	KindLimit
	KindEndOfFile
	KindUnsupported
	KindInternal
)

func init() {
	RegisterIdFctMessage(KindWouldBlock, func(CodeError) string { return "operation would block" })
	RegisterIdFctMessage(KindInterrupted, func(CodeError) string { return "operation interrupted" })
	RegisterIdFctMessage(KindCancelled, func(CodeError) string { return "operation cancelled" })
	RegisterIdFctMessage(KindTimedOut, func(CodeError) string { return "operation timed out" })
	RegisterIdFctMessage(KindInvalidArgument, func(CodeError) string { return "invalid argument" })
	RegisterIdFctMessage(KindNotAuthorized, func(CodeError) string { return "not authorized" })
	RegisterIdFctMessage(KindUnreachable, func(CodeError) string { return "destination unreachable" })
	RegisterIdFctMessage(KindConnectionReset, func(CodeError) string { return "connection reset by peer" })
	RegisterIdFctMessage(KindConnectionRefused, func(CodeError) string { return "connection refused" })
	RegisterIdFctMessage(KindAddressInUse, func(CodeError) string { return "address already in use" })
	RegisterIdFctMessage(KindAddressNotAvailable, func(CodeError) string { return "address not available" })
	RegisterIdFctMessage(KindMessageSize, func(CodeError) string { return "message too large" })
	RegisterIdFctMessage(KindLimit, func(CodeError) string { return "resource limit reached" })
	RegisterIdFctMessage(KindEndOfFile, func(CodeError) string { return "end of file" })
	RegisterIdFctMessage(KindUnsupported, func(CodeError) string { return "operation not supported" })
	RegisterIdFctMessage(KindInternal, func(CodeError) string { return "internal error" })
}

// IsTransient reports whether a CodeError represents a condition that a
// caller should recover from locally (rearm readiness, retry) rather than
// treat as terminal.
func (c CodeError) IsTransient() bool {
	return c == KindWouldBlock || c == KindInterrupted
}

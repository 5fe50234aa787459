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

package socket

// errClosedConnection is the exact message net.ErrClosed-derived errors
// carry. Shutdown paths close their own descriptors deliberately, so a
// pending Read/Write unblocking with exactly this message is expected
// noise, not a reportable error - see ErrorFilter.
const errClosedConnection = "use of closed network connection"

// ErrorFilter drops the "connection closed locally" noise a graceful
// shutdown generates (a blocked Read/Write unblocking because Close ran
// underneath it) so callers only see errors worth reporting. The match is
// an exact comparison against the well-known net package message, not a
// substring search: an error that merely mentions the phrase inside a
// longer message is real information and is returned unchanged.
func ErrorFilter(err error) error {
	if err == nil {
		return nil
	}
	if err.Error() == errClosedConnection {
		return nil
	}
	return err
}

/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

// Package blob is the socket layer's payload representation: an ordered
// sequence of pooled buffer slices (Blob) tracking a logical length no
// greater than its total backing capacity, plus Data, a tagged union over
// the several shapes a caller may hand the socket API a payload in.
package blob

import "github.com/sabouaram/ntio/bufpool"

// slice is one link in a Blob's buffer chain: a retained pooled buffer
// plus the [off, off+n) window of it this link contributes.
type slice struct {
	buf *bufpool.Buffer
	off int
	n   int
}

// Blob is an ordered sequence of buffer slices. Length is always the sum
// of its slices' lengths; appending never copies existing slices, and
// erasing leading bytes releases any slice it fully consumes.
type Blob struct {
	slices []slice
	length int
}

// New returns an empty Blob.
func New() *Blob { return &Blob{} }

// Len is the blob's logical length: the sum over its slices.
func (b *Blob) Len() int { return b.length }

// Empty reports whether the blob currently holds zero bytes.
func (b *Blob) Empty() bool { return b.length == 0 }

// AppendBuffer appends the [off, off+n) window of buf as a new slice,
// retaining buf for the blob's lifetime (or until the slice is erased).
func (b *Blob) AppendBuffer(buf *bufpool.Buffer, off, n int) {
	if n <= 0 {
		return
	}
	buf.Retain()
	b.slices = append(b.slices, slice{buf: buf, off: off, n: n})
	b.length += n
}

// Erase removes the first n bytes of the blob, releasing any buffer
// slice that becomes fully consumed. Erasing more than Len() is
// equivalent to erasing exactly Len().
func (b *Blob) Erase(n int) {
	if n > b.length {
		n = b.length
	}
	for n > 0 && len(b.slices) > 0 {
		s := &b.slices[0]
		if n < s.n {
			s.off += n
			s.n -= n
			b.length -= n
			n = 0
			break
		}
		n -= s.n
		b.length -= s.n
		_ = s.buf.Release()
		b.slices = b.slices[1:]
	}
}

// Close releases every buffer slice the blob still holds, leaving it
// empty. Safe to call on an already-empty blob.
func (b *Blob) Close() {
	b.Erase(b.length)
}

// CopyTo copies up to len(dst) bytes from the front of the blob into dst
// without consuming them, returning the number of bytes copied.
func (b *Blob) CopyTo(dst []byte) int {
	copied := 0
	for _, s := range b.slices {
		if copied >= len(dst) {
			break
		}
		chunk := s.buf.Bytes()[s.off : s.off+s.n]
		n := copy(dst[copied:], chunk)
		copied += n
	}
	return copied
}

// Bytes materializes the blob's full logical content as a single slice.
// It always copies: Blob's whole point is to avoid this on the hot path,
// so callers on that path should prefer CopyTo or iterating Slices.
func (b *Blob) Bytes() []byte {
	out := make([]byte, b.length)
	b.CopyTo(out)
	return out
}

// NumSlices reports how many buffer slices currently back the blob.
func (b *Blob) NumSlices() int { return len(b.slices) }

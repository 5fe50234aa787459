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

package blob

import "hash/crc32"

// Checksum is a CRC32 (IEEE) digest, used by tests to validate blob and
// file-region content without comparing byte-for-byte.
func Checksum(b *Blob) uint32 {
	h := crc32.NewIEEE()
	for _, s := range b.slices {
		_, _ = h.Write(s.buf.Bytes()[s.off : s.off+s.n])
	}
	return h.Sum32()
}

// ChecksumBytes is Checksum for a plain byte slice, used to validate
// DataConstBytes/DataMutableBytes payloads the same way.
func ChecksumBytes(b []byte) uint32 {
	return crc32.ChecksumIEEE(b)
}

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

import "os"

// DataKind distinguishes the shapes a caller may hand a socket write (or
// receive a socket read) in.
type DataKind uint8

const (
	DataConstBytes DataKind = iota
	DataMutableBytes
	DataBlob
	DataFileRegion
)

// FileRegion names a byte range of an already-open file, used by
// sendfile-style zero-copy paths.
type FileRegion struct {
	File      *os.File
	Offset    int64
	Remaining int64
}

// Data is a tagged union over the several payload shapes the socket API
// accepts: an immutable or mutable byte slice, an owned Blob, or a file
// region. Exactly one of its fields is meaningful, selected by Kind.
type Data struct {
	kind  DataKind
	bytes []byte
	blob  *Blob
	file  FileRegion
}

func FromConstBytes(b []byte) Data   { return Data{kind: DataConstBytes, bytes: b} }
func FromMutableBytes(b []byte) Data { return Data{kind: DataMutableBytes, bytes: b} }
func FromBlob(b *Blob) Data          { return Data{kind: DataBlob, blob: b} }
func FromFileRegion(f FileRegion) Data { return Data{kind: DataFileRegion, file: f} }

func (d Data) Kind() DataKind { return d.kind }

// Len reports the logical length of the payload regardless of its kind.
func (d Data) Len() int {
	switch d.kind {
	case DataConstBytes, DataMutableBytes:
		return len(d.bytes)
	case DataBlob:
		return d.blob.Len()
	case DataFileRegion:
		return int(d.file.Remaining)
	default:
		return 0
	}
}

// Bytes materializes the payload as a single slice. For DataFileRegion
// this is not meaningful (there is no in-memory content to return) and
// yields nil; callers on the file-region path must use the FileRegion
// accessor and read from the descriptor directly.
func (d Data) Bytes() []byte {
	switch d.kind {
	case DataConstBytes, DataMutableBytes:
		return d.bytes
	case DataBlob:
		return d.blob.Bytes()
	default:
		return nil
	}
}

func (d Data) Blob() *Blob             { return d.blob }
func (d Data) FileRegion() FileRegion  { return d.file }
func (d Data) IsMutable() bool         { return d.kind == DataMutableBytes }

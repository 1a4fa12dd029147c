// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package source

import (
	"bytes"
	"compress/bzip2"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/xi2/xz"
)

var errTooLarge = errors.New("decompressed size exceeds limit")

// Codec describes a compressed container recognized by its leading magic bytes.
type Codec struct {
	Name       string // Short name, e.g., "gzip", "zstd"
	Signatures [][]byte
	NewReader  func(r io.Reader) (io.ReadCloser, error)
}

var DefaultCodecs = []Codec{
	{
		Name:       "gzip",
		Signatures: [][]byte{{0x1F, 0x8B}},
		NewReader: func(r io.Reader) (io.ReadCloser, error) {
			return gzip.NewReader(r)
		},
	},
	{
		Name:       "zstd",
		Signatures: [][]byte{{0x28, 0xB5, 0x2F, 0xFD}},
		NewReader: func(r io.Reader) (io.ReadCloser, error) {
			dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
			if err != nil {
				return nil, err
			}
			return dec.IOReadCloser(), nil
		},
	},
	{
		Name:       "xz",
		Signatures: [][]byte{{0xFD, '7', 'z', 'X', 'Z', 0x00}},
		NewReader: func(r io.Reader) (io.ReadCloser, error) {
			xr, err := xz.NewReader(r, 0)
			if err != nil {
				return nil, err
			}
			return io.NopCloser(xr), nil
		},
	},
	{
		Name:       "lz4",
		Signatures: [][]byte{{0x04, 0x22, 0x4D, 0x18}},
		NewReader: func(r io.Reader) (io.ReadCloser, error) {
			return io.NopCloser(lz4.NewReader(r)), nil
		},
	},
	{
		Name:       "bzip2",
		Signatures: [][]byte{[]byte("BZh")},
		NewReader: func(r io.Reader) (io.ReadCloser, error) {
			return io.NopCloser(bzip2.NewReader(r)), nil
		},
	},
}

// LookupCodec returns the first codec whose signature prefixes data.
func LookupCodec(data []byte) (Codec, bool) {
	for _, c := range DefaultCodecs {
		for _, sig := range c.Signatures {
			if bytes.HasPrefix(data, sig) {
				return c, true
			}
		}
	}
	return Codec{}, false
}

// Decode fully decompresses data, failing once more than maxSize bytes are produced.
func (c Codec) Decode(data []byte, maxSize uint64) ([]byte, error) {
	rc, err := c.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(rc, int64(maxSize)+1))
	if err != nil {
		return nil, err
	}
	if uint64(n) > maxSize {
		return nil, fmt.Errorf("%w (%d bytes)", errTooLarge, maxSize)
	}
	return buf.Bytes(), nil
}

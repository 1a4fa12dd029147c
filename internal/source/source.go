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
	"errors"
	"fmt"
	"io/fs"
	"math"

	"github.com/ostafen/dwmwhat/internal/mmap"
)

var (
	// ErrNotFound reports a path that does not exist or cannot be opened for reading.
	ErrNotFound = errors.New("file not found")
	// ErrIO reports any other failure while opening, mapping or decoding a file.
	ErrIO = errors.New("i/o error")
)

const DefaultMaxSize = 1 << 30

type Options struct {
	Decompress bool   // Scan the decompressed stream of recognized containers
	MaxSize    uint64 // Upper bound on decompressed bytes, 0 means DefaultMaxSize
}

// Buffer is a read-only view over a file's bytes. The view returned by
// Bytes is valid until Close is called.
type Buffer struct {
	data      []byte
	mf        *mmap.MmapFile
	codec     string
	decodeErr error
}

// Open returns a Buffer over the content of path. A zero-length file
// yields a valid, empty Buffer.
//
// With opts.Decompress, a file starting with a known codec signature is
// decoded. If decoding fails the Buffer falls back to the raw bytes and
// DecodeErr reports why; only exceeding opts.MaxSize is an error.
func Open(path string, opts Options) (*Buffer, error) {
	mf, err := mmap.NewMmapFile(path)
	if err != nil {
		return nil, Classify(err)
	}

	if !opts.Decompress {
		return &Buffer{data: mf.Data, mf: mf}, nil
	}

	codec, ok := LookupCodec(mf.Data)
	if !ok {
		return &Buffer{data: mf.Data, mf: mf}, nil
	}

	maxSize := opts.MaxSize
	if maxSize == 0 {
		maxSize = DefaultMaxSize
	}
	maxSize = min(maxSize, math.MaxInt64-1)

	data, err := codec.Decode(mf.Data, maxSize)
	if err != nil && !errors.Is(err, errTooLarge) {
		return &Buffer{
			data:      mf.Data,
			mf:        mf,
			decodeErr: fmt.Errorf("not a valid %s stream: %w", codec.Name, err),
		}, nil
	}

	// the decoded copy no longer references the mapping
	closeErr := mf.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decompress %s file %q: %w", ErrIO, codec.Name, path, err)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, closeErr)
	}
	return &Buffer{data: data, codec: codec.Name}, nil
}

// Classify wraps err with ErrNotFound when it reports a missing or
// unreadable path, and with ErrIO otherwise.
func Classify(err error) error {
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrIO) {
		return err
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return fmt.Errorf("%w: %w", ErrIO, err)
}

func (b *Buffer) Bytes() []byte {
	return b.data
}

func (b *Buffer) Len() int {
	return len(b.data)
}

// Codec returns the name of the container the bytes were decoded from,
// or the empty string for a plain file.
func (b *Buffer) Codec() string {
	return b.codec
}

// DecodeErr reports why a file carrying a codec signature was scanned as
// raw bytes, or nil.
func (b *Buffer) DecodeErr() error {
	return b.decodeErr
}

// Close releases the underlying mapping. It is safe to call more than once.
func (b *Buffer) Close() error {
	b.data = nil
	if b.mf == nil {
		return nil
	}
	mf := b.mf
	b.mf = nil
	if err := mf.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

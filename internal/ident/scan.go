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
package ident

import (
	"bytes"
	"iter"
	"strings"
)

// Marker is the prefix flagging the start of an identification string,
// the same one recognized by the classic what(1) utility. It is meant for
// constant expressions building identification strings; code running at
// scan time uses marker, so that no bare copy ends up in the executable.
const Marker = "@(#)"

// marker holds Marker, assembled at run time.
var marker = func() []byte {
	b := []byte("@(#.")
	b[len(b)-1] = ')'
	return b
}()

// MarkerBytes returns a copy of the marker.
func MarkerBytes() []byte {
	return bytes.Clone(marker)
}

// Scan returns the candidate identification strings found in buf, in file
// offset order. A candidate starts at a marker and ends right before the
// first NUL or newline; the marker is part of the candidate.
//
// A candidate that runs into the end of buf without a terminator is
// truncated data and ends the scan. Candidates with nothing after the
// marker are skipped. The yielded slices alias buf.
func Scan(buf []byte) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for i := 0; len(buf)-i >= len(marker); {
			idx := bytes.Index(buf[i:], marker)
			if idx < 0 {
				return
			}

			start := i + idx
			j := start + len(marker)
			for j < len(buf) && buf[j] != 0 && buf[j] != '\n' {
				j++
			}
			if j >= len(buf) {
				return
			}

			if j > start+len(marker) && !yield(buf[start:j:j]) {
				return
			}
			i = j
		}
	}
}

// StripMarker removes the leading marker and the blanks following it.
func StripMarker(s string) string {
	if !strings.HasPrefix(s, string(marker)) {
		return s
	}
	return strings.TrimLeft(s[len(marker):], " \t")
}

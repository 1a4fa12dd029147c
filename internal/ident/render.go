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
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Format selects how a ResultSet is rendered.
type Format int

const (
	FormatPlain Format = iota
	FormatJSON
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "plain", "text", "":
		return FormatPlain, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatPlain, fmt.Errorf("unknown output format %q", s)
}

func (f Format) String() string {
	switch f {
	case FormatPlain:
		return "plain"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

type document struct {
	Pkgs   []Record       `json:"pkgs,omitempty"`
	Others []Unrecognized `json:"others,omitempty"`
}

// Render writes rs to w. Recognized entries come first, then unrecognized
// ones, each group ordered by raw text.
//
// The plain format prints one string per line without its marker. The JSON
// format prints an object with a "pkgs" and an "others" array, leaving out
// an empty group. An empty ResultSet produces no output in either format.
func Render(w io.Writer, rs *ResultSet, f Format) error {
	switch f {
	case FormatPlain:
		return renderPlain(w, rs)
	case FormatJSON:
		return renderJSON(w, rs)
	}
	return fmt.Errorf("unknown output format %d", int(f))
}

func renderPlain(w io.Writer, rs *ResultSet) error {
	for _, e := range rs.Records() {
		if _, err := fmt.Fprintln(w, StripMarker(e.Raw)); err != nil {
			return err
		}
	}
	for _, o := range rs.Others() {
		if _, err := fmt.Fprintln(w, StripMarker(o.ID)); err != nil {
			return err
		}
	}
	return nil
}

func renderJSON(w io.Writer, rs *ResultSet) error {
	if rs.Len() == 0 {
		return nil
	}

	var doc document
	for _, e := range rs.Records() {
		doc.Pkgs = append(doc.Pkgs, e.Record)
	}
	doc.Others = rs.Others()
	return newEncoder(w).Encode(doc)
}

// RenderJSONArray writes rs as a flat JSON array: one object per recognized
// record followed by one {"id": ...} object per unrecognized entry.
func RenderJSONArray(w io.Writer, rs *ResultSet) error {
	if rs.Len() == 0 {
		return nil
	}

	items := make([]any, 0, rs.Len())
	for _, e := range rs.Records() {
		items = append(items, e.Record)
	}
	for _, o := range rs.Others() {
		items = append(items, o)
	}
	return newEncoder(w).Encode(items)
}

// newEncoder writes two-space indented JSON without HTML escaping.
func newEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc
}

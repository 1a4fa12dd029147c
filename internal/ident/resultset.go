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
	"maps"
	"slices"
)

// ResultSet collects parse results keyed by the raw candidate text, so
// that a string found several times, in one file or across files, is
// reported once.
type ResultSet struct {
	recognized   map[string]Record
	unrecognized map[string]Unrecognized
}

// Entry pairs a recognized Record with the raw text it was parsed from.
type Entry struct {
	Raw    string
	Record Record
}

func NewResultSet() *ResultSet {
	return &ResultSet{
		recognized:   make(map[string]Record),
		unrecognized: make(map[string]Unrecognized),
	}
}

// Insert adds res under raw. The first value stored for a key wins; it
// reports whether raw was new.
func (rs *ResultSet) Insert(raw string, res Result) bool {
	if rs.Contains(raw) {
		return false
	}

	if res.Record != nil {
		rs.recognized[raw] = *res.Record
	} else {
		rs.unrecognized[raw] = Unrecognized{ID: raw}
	}
	return true
}

// Collect scans buf, classifies every candidate with p and inserts the
// results. It returns the number of candidates found, duplicates included.
func (rs *ResultSet) Collect(buf []byte, p *Parser) int {
	n := 0
	for cand := range Scan(buf) {
		n++

		raw := string(cand)
		if rs.Contains(raw) {
			continue
		}
		rs.Insert(raw, p.Parse(raw))
	}
	return n
}

// Merge inserts every entry of other into rs.
func (rs *ResultSet) Merge(other *ResultSet) {
	for raw, rec := range other.recognized {
		rs.Insert(raw, Result{Raw: raw, Record: &rec})
	}
	for raw := range other.unrecognized {
		rs.Insert(raw, Result{Raw: raw})
	}
}

func (rs *ResultSet) Contains(raw string) bool {
	if _, ok := rs.recognized[raw]; ok {
		return true
	}
	_, ok := rs.unrecognized[raw]
	return ok
}

func (rs *ResultSet) Len() int {
	return len(rs.recognized) + len(rs.unrecognized)
}

// Records returns the recognized entries in lexicographic order of their raw text.
func (rs *ResultSet) Records() []Entry {
	keys := slices.Sorted(maps.Keys(rs.recognized))

	entries := make([]Entry, len(keys))
	for i, k := range keys {
		entries[i] = Entry{Raw: k, Record: rs.recognized[k]}
	}
	return entries
}

// Others returns the unrecognized entries in lexicographic order.
func (rs *ResultSet) Others() []Unrecognized {
	keys := slices.Sorted(maps.Keys(rs.unrecognized))

	others := make([]Unrecognized, len(keys))
	for i, k := range keys {
		others[i] = rs.unrecognized[k]
	}
	return others
}

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
// Package pkginfo builds identification strings and keeps track of the ones
// describing the packages linked into the running program.
package pkginfo

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/ostafen/dwmwhat/internal/ident"
)

// Info describes a package. Date follows the C preprocessor's __DATE__,
// e.g. "Jan  2 2006".
type Info struct {
	Kind      ident.Kind
	Status    ident.Status
	Name      string
	Version   string
	Copyright string
	Date      string
	Other     string
}

// ID returns the identification string of i, marker included and without
// a terminator.
func (i Info) ID() string {
	var sb strings.Builder
	sb.Write(ident.MarkerBytes())
	for _, field := range []string{
		i.Kind.Token(),
		i.Status.Token(),
		i.Name,
		i.Version,
		ident.CopyrightSymbol,
		i.Copyright,
		i.Date,
		ident.OtherSymbol,
		i.Other,
	} {
		sb.WriteByte(' ')
		sb.WriteString(field)
	}
	return sb.String()
}

var (
	mu       sync.Mutex
	registry = make(map[string]struct{})
)

// Register records id as describing a package of the running program and
// returns it with any trailing terminator removed. It is meant to be
// called from package-level variable initializers.
func Register(id string) string {
	id = strings.TrimRight(id, "\x00\n")

	mu.Lock()
	defer mu.Unlock()

	registry[id] = struct{}{}
	return id
}

// Registered returns every registered identification string, sorted and
// without duplicates.
func Registered() []string {
	mu.Lock()
	defer mu.Unlock()

	return slices.Sorted(maps.Keys(registry))
}

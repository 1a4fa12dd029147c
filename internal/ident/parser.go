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
	"regexp"
	"strings"
	"sync"
)

// Sentinel tokens separating the free-text fields of an identification string.
const (
	CopyrightSymbol = "(C)"
	OtherSymbol     = "->"
)

const months = "Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec"

// Result is the outcome of parsing one candidate. Record is nil when the
// candidate did not match the grammar.
type Result struct {
	Raw    string
	Record *Record
}

func (r Result) Recognized() bool {
	return r.Record != nil
}

// Parser classifies candidates against the identification string grammar:
//
//	@(#) <type> <status> <name> <version> (C) <copyright> <Mon dd yyyy> -> <other>
//
// A Parser is immutable and safe for concurrent use.
type Parser struct {
	re *regexp.Regexp
}

func NewParser() *Parser {
	kinds := make([]string, 0, len(kindTokens))
	for _, k := range []Kind{KindHeader, KindLibrary, KindExecutable, KindDocumentation} {
		kinds = append(kinds, k.Token())
	}
	statuses := make([]string, 0, len(statusTokens))
	for _, s := range []Status{StatusDevelopment, StatusReleaseCandidate, StatusReleased} {
		statuses = append(statuses, s.Token())
	}

	expr := `^\@\(#\)[ \t]*` +
		`(` + strings.Join(kinds, "|") + `) ` +
		`(` + strings.Join(statuses, "|") + `) ` +
		`(\S+) ` + // name
		`(\S+) ` + // version
		regexp.QuoteMeta(CopyrightSymbol) + ` (.+) ` +
		`((?:` + months + `) [ 0-3]?[0-9] [0-9]{4}) ` +
		regexp.QuoteMeta(OtherSymbol) + `(?: (.*))?$`

	return &Parser{re: regexp.MustCompile(expr)}
}

// DefaultParser returns the process-wide parser, compiled on first use.
var DefaultParser = sync.OnceValue(NewParser)

// Parse matches the whole candidate against the grammar. Any deviation
// yields an unrecognized Result carrying the candidate verbatim.
func (p *Parser) Parse(candidate string) Result {
	m := p.re.FindStringSubmatch(candidate)
	if m == nil {
		return Result{Raw: candidate}
	}

	kind, err := ParseKind(m[1])
	if err != nil {
		return Result{Raw: candidate}
	}
	status, err := ParseStatus(m[2])
	if err != nil {
		return Result{Raw: candidate}
	}

	return Result{
		Raw: candidate,
		Record: &Record{
			Kind:      kind,
			Status:    status,
			Name:      m[3],
			Version:   m[4],
			Copyright: m[5],
			Date:      m[6],
			Other:     m[7],
		},
	}
}

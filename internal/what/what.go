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
package what

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ostafen/dwmwhat/internal/env"
	"github.com/ostafen/dwmwhat/internal/ident"
	"github.com/ostafen/dwmwhat/internal/logger"
	"github.com/ostafen/dwmwhat/internal/pkginfo"
	"github.com/ostafen/dwmwhat/internal/source"
	fmtutil "github.com/ostafen/dwmwhat/pkg/util/format"
	osutils "github.com/ostafen/dwmwhat/pkg/util/os"
)

// Ident describes this package in the program's own version listing.
var Ident = pkginfo.Register(pkginfo.Info{
	Kind:      ident.KindLibrary,
	Status:    ident.StatusReleased,
	Name:      "libwhat",
	Version:   env.Version,
	Copyright: env.Copyright,
	Date:      env.ReleaseDate,
	Other:     env.Homepage,
}.ID())

type Options struct {
	Format ident.Format

	// Strict turns a file that cannot be read into a failure of the whole
	// run. Either way the remaining files are still processed.
	Strict bool

	// Recursive expands directory arguments into the regular files below them.
	Recursive bool

	Source source.Options
}

// Collect scans paths in order and merges everything found into a single
// ResultSet. A file that cannot be opened is logged and skipped; with
// opts.Strict the joined per-file errors are returned as well.
func Collect(ctx context.Context, paths []string, opts Options, log *logger.Logger) (*ident.ResultSet, error) {
	rs := ident.NewResultSet()
	parser := ident.DefaultParser()

	var errs []error
	for _, arg := range paths {
		files := []string{arg}
		if opts.Recursive {
			expanded, err := osutils.ListFiles(arg)
			if err != nil {
				log.Warnf("skipping %s: %s", arg, err)
				errs = append(errs, source.Classify(err))
				continue
			}
			files = expanded
		}

		for _, path := range files {
			if err := ctx.Err(); err != nil {
				return rs, err
			}

			n, err := collectFile(rs, parser, path, opts.Source, log)
			if err != nil {
				log.Warnf("skipping %s: %s", path, err)
				errs = append(errs, err)
				continue
			}
			log.Debugf("%s: %d identification strings", path, n)
		}
	}

	if opts.Strict {
		return rs, errors.Join(errs...)
	}
	return rs, nil
}

func collectFile(rs *ident.ResultSet, p *ident.Parser, path string, opts source.Options, log *logger.Logger) (n int, err error) {
	buf, err := source.Open(path, opts)
	if err != nil {
		return 0, err
	}
	defer func() {
		if closeErr := buf.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if decodeErr := buf.DecodeErr(); decodeErr != nil {
		log.Debugf("%s: %s, scanning raw bytes", path, decodeErr)
	}
	if codec := buf.Codec(); codec != "" {
		log.Debugf("%s: scanning %s of %s data", path, fmtutil.FormatBytes(int64(buf.Len())), codec)
	} else {
		log.Debugf("%s: scanning %s", path, fmtutil.FormatBytes(int64(buf.Len())))
	}
	return rs.Collect(buf.Bytes(), p), nil
}

// Run collects the identification strings of paths and renders them to w.
// Whatever was collected is rendered even when a strict run fails.
func Run(ctx context.Context, w io.Writer, paths []string, opts Options, log *logger.Logger) error {
	rs, err := Collect(ctx, paths, opts, log)
	if renderErr := ident.Render(w, rs, opts.Format); renderErr != nil {
		return fmt.Errorf("failed to write output: %w", renderErr)
	}
	return err
}

// Versions writes the identification strings of the running program. The
// plain listing prints one string per line; verbose prints a JSON array.
func Versions(w io.Writer, verbose bool) error {
	rs := ident.NewResultSet()
	parser := ident.DefaultParser()
	for _, id := range pkginfo.Registered() {
		rs.Insert(id, parser.Parse(id))
	}

	if verbose {
		return ident.RenderJSONArray(w, rs)
	}
	return ident.Render(w, rs, ident.FormatPlain)
}

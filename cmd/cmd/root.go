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
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ostafen/dwmwhat/internal/env"
	"github.com/ostafen/dwmwhat/internal/ident"
	"github.com/ostafen/dwmwhat/internal/logger"
	"github.com/ostafen/dwmwhat/internal/source"
	"github.com/ostafen/dwmwhat/internal/what"
	"github.com/ostafen/dwmwhat/pkg/util/format"
	"github.com/spf13/cobra"
)

const AppName = env.AppName

func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

type options struct {
	what.Options

	ShowVersion bool
	Verbose     bool
	LogLevel    logger.Level
}

func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   AppName + " [flags] [file ...]",
		Short: AppName + " - find identification strings in binary files",
		Long: `The '` + AppName + `' command scans files for identification strings, the what(1) style
marked lines embedded by the build process in executables, libraries and object files.
Strings following the package grammar are listed as packages, any other marked
string is listed verbatim. Output is plain text or, with -j, a JSON document.`,
		Args: cobra.ArbitraryArgs,
		RunE: RunWhat,
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.Flags().BoolP("json", "j", false, "print the results as a JSON document, same as --format json")
	cmd.Flags().String("format", "plain", "output format (plain, json)")
	cmd.Flags().BoolP("version", "v", false, "print the identification strings of this program and exit")
	cmd.Flags().BoolP("verbose-version", "V", false, "like --version, printed as a JSON array")
	cmd.Flags().BoolP("recursive", "r", false, "scan every regular file below directory arguments")
	cmd.Flags().Bool("strict", false, "exit with a non-zero status if any file cannot be read")
	cmd.Flags().BoolP("decompress", "z", false, "scan the decompressed content of gzip, zstd, xz, lz4 and bzip2 files")
	cmd.Flags().String("max-size", "1GB", "maximum decompressed size of a single file")
	cmd.Flags().String("log-level", "WARN", "diagnostics level (DEBUG, INFO, WARN, ERROR, OFF)")

	return cmd
}

func RunWhat(cmd *cobra.Command, args []string) error {
	opts, err := parseOptions(cmd)
	if err != nil {
		return err
	}
	// flags are valid past this point, failures are no longer usage errors
	cmd.SilenceUsage = true

	if opts.ShowVersion {
		return printVersion(cmd.OutOrStdout(), opts.Verbose)
	}

	log := logger.New(cmd.ErrOrStderr(), opts.LogLevel).WithPrefix(AppName)
	return what.Run(cmd.Context(), cmd.OutOrStdout(), args, opts.Options, log)
}

func printVersion(w io.Writer, verbose bool) error {
	if err := what.Versions(w, verbose); err != nil || verbose {
		return err
	}
	_, err := fmt.Fprintf(w, "commit %s, built %s\n", env.CommitHash, env.BuildTime)
	return err
}

func parseOptions(cmd *cobra.Command) (options, error) {
	showJSON, _ := cmd.Flags().GetBool("json")
	showVersion, _ := cmd.Flags().GetBool("version")
	verbose, _ := cmd.Flags().GetBool("verbose-version")
	strict, _ := cmd.Flags().GetBool("strict")
	recursive, _ := cmd.Flags().GetBool("recursive")
	decompress, _ := cmd.Flags().GetBool("decompress")

	maxSizeStr, _ := cmd.Flags().GetString("max-size")
	maxSize, err := format.ParseBytes(maxSizeStr)
	if err != nil {
		return options{}, fmt.Errorf("invalid --max-size: %w", err)
	}

	levelStr, _ := cmd.Flags().GetString("log-level")
	level, err := logger.ParseLevel(levelStr)
	if err != nil {
		return options{}, err
	}

	formatStr, _ := cmd.Flags().GetString("format")
	outFormat, err := ident.ParseFormat(formatStr)
	if err != nil {
		return options{}, err
	}
	if showJSON {
		outFormat = ident.FormatJSON
	}

	return options{
		Options: what.Options{
			Format:    outFormat,
			Strict:    strict,
			Recursive: recursive,
			Source:    source.Options{
				Decompress: decompress,
				MaxSize:    maxSize,
			},
		},
		ShowVersion: showVersion || verbose,
		Verbose:     verbose,
		LogLevel:    level,
	}, nil
}

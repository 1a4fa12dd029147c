package what_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/ostafen/dwmwhat/internal/env"
	"github.com/ostafen/dwmwhat/internal/ident"
	"github.com/ostafen/dwmwhat/internal/logger"
	"github.com/ostafen/dwmwhat/internal/source"
	"github.com/ostafen/dwmwhat/internal/what"
	"github.com/stretchr/testify/require"
)

const exeRaw = "@(#) EXE REL dwmwhat 1.0.0 (C) Daniel McRobb 2025 Jan  1 2025 -> mcplex.net"

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func binary(strs ...string) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0x7F, 'E', 'L', 'F', 0x00, 0xFF})
	for _, s := range strs {
		buf.WriteString(s)
		buf.WriteByte(0)
		buf.Write([]byte{0xCA, 0xFE, 0x00})
	}
	return buf.Bytes()
}

func TestCollectMergesFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.out", binary(exeRaw, "@(#) only in a"))
	b := writeFile(t, dir, "b.out", binary(exeRaw))

	rs, err := what.Collect(context.Background(), []string{a, b}, what.Options{}, logger.Nop())
	require.NoError(t, err)
	require.Equal(t, 2, rs.Len())
	require.Len(t, rs.Records(), 1)
	require.Equal(t, []ident.Unrecognized{{ID: "@(#) only in a"}}, rs.Others())
}

func TestCollectEmptyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty", nil)

	rs, err := what.Collect(context.Background(), []string{path}, what.Options{Strict: true}, logger.Nop())
	require.NoError(t, err)
	require.Equal(t, 0, rs.Len())
}

func TestCollectSkipsMissing(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing")
	good := writeFile(t, dir, "good", binary(exeRaw))

	var logs bytes.Buffer
	log := logger.New(&logs, logger.WarnLevel)

	rs, err := what.Collect(context.Background(), []string{missing, good}, what.Options{}, log)
	require.NoError(t, err)
	require.Equal(t, 1, rs.Len())
	require.Contains(t, logs.String(), "[WARN] skipping "+missing)

	rs, err = what.Collect(context.Background(), []string{missing, good}, what.Options{Strict: true}, logger.Nop())
	require.ErrorIs(t, err, source.ErrNotFound)
	require.Equal(t, 1, rs.Len())
}

func TestCollectCanceled(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a", binary(exeRaw))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := what.Collect(ctx, []string{path}, what.Options{}, logger.Nop())
	require.ErrorIs(t, err, context.Canceled)
}

func TestCollectDecompress(t *testing.T) {
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close()

	path := writeFile(t, t.TempDir(), "mod.ko.zst", enc.EncodeAll(binary(exeRaw), nil))

	var logs bytes.Buffer
	log := logger.New(&logs, logger.DebugLevel)

	opts := what.Options{Source: source.Options{Decompress: true}}
	rs, err := what.Collect(context.Background(), []string{path}, opts, log)
	require.NoError(t, err)
	require.Equal(t, 1, rs.Len())
	require.Equal(t, exeRaw, rs.Records()[0].Raw)
	require.Contains(t, logs.String(), "of zstd data")
}

func TestCollectDecompressFallsBackToRaw(t *testing.T) {
	data := append([]byte("BZh"), binary(exeRaw)...)
	path := writeFile(t, t.TempDir(), "libfoo.so", data)

	var logs bytes.Buffer
	log := logger.New(&logs, logger.DebugLevel)

	opts := what.Options{Source: source.Options{Decompress: true}, Strict: true}
	rs, err := what.Collect(context.Background(), []string{path}, opts, log)
	require.NoError(t, err)
	require.Equal(t, 1, rs.Len())
	require.Equal(t, exeRaw, rs.Records()[0].Raw)
	require.Contains(t, logs.String(), "not a valid bzip2 stream")
}

func TestRunPlain(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a", binary("@(#) not a valid format at all", exeRaw))

	var out bytes.Buffer
	err := what.Run(context.Background(), &out, []string{path}, what.Options{}, logger.Nop())
	require.NoError(t, err)
	require.Equal(t,
		ident.StripMarker(exeRaw)+"\n"+"not a valid format at all\n",
		out.String(),
	)
}

func TestRunJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a", binary(exeRaw))

	var out bytes.Buffer
	err := what.Run(context.Background(), &out, []string{path}, what.Options{Format: ident.FormatJSON}, logger.Nop())
	require.NoError(t, err)

	var doc map[string][]map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	require.NotContains(t, doc, "others")
	require.Equal(t, "Daniel McRobb 2025", doc["pkgs"][0]["copyright"])
}

func TestRunNoMatches(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a", []byte("nothing to see"))

	var out bytes.Buffer
	err := what.Run(context.Background(), &out, []string{path}, what.Options{Format: ident.FormatJSON}, logger.Nop())
	require.NoError(t, err)
	require.Empty(t, out.String())
}

func TestRunStrictStillRenders(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good", binary(exeRaw))

	var out bytes.Buffer
	err := what.Run(context.Background(), &out, []string{filepath.Join(dir, "nope"), good}, what.Options{Strict: true}, logger.Nop())
	require.Error(t, err)
	require.Equal(t, ident.StripMarker(exeRaw)+"\n", out.String())
}

func TestVersions(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, what.Versions(&out, false))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Contains(t, lines, ident.StripMarker(strings.TrimSuffix(env.Ident, "\x00")))
	require.Contains(t, lines, ident.StripMarker(what.Ident))

	out.Reset()
	require.NoError(t, what.Versions(&out, true))

	var items []ident.Record
	require.NoError(t, json.Unmarshal(out.Bytes(), &items))

	names := make([]string, len(items))
	for i, rec := range items {
		names[i] = rec.Name
	}
	require.Contains(t, names, env.AppName)
	require.Contains(t, names, "libwhat")
}

func TestEnvIdentIsRecognized(t *testing.T) {
	rs := ident.NewResultSet()
	n := rs.Collect([]byte("\x00"+env.Ident), ident.DefaultParser())
	require.Equal(t, 1, n)

	records := rs.Records()
	require.Len(t, records, 1)
	require.Equal(t, ident.KindExecutable, records[0].Record.Kind)
	require.Equal(t, env.Version, records[0].Record.Version)
}

func TestCollectRecursive(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "lib"), 0755))
	writeFile(t, dir, "a.out", binary(exeRaw))
	writeFile(t, filepath.Join(dir, "lib"), "libx.so", binary("@(#) LIB REL libx 2 (C) X Jan  2 2024 -> x"))

	rs, err := what.Collect(context.Background(), []string{dir}, what.Options{Strict: true}, logger.Nop())
	require.ErrorIs(t, err, source.ErrIO)
	require.Equal(t, 0, rs.Len())

	rs, err = what.Collect(context.Background(), []string{dir}, what.Options{Strict: true, Recursive: true}, logger.Nop())
	require.NoError(t, err)
	require.Len(t, rs.Records(), 2)

	_, err = what.Collect(context.Background(), []string{filepath.Join(dir, "nope")}, what.Options{Strict: true, Recursive: true}, logger.Nop())
	require.ErrorIs(t, err, source.ErrNotFound)
}

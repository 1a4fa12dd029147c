package os_test

import (
	"os"
	"path/filepath"
	"testing"

	osutils "github.com/ostafen/dwmwhat/pkg/util/os"
	"github.com/stretchr/testify/require"
)

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lib", "sub"), 0755))

	for _, name := range []string{"b.out", "a.out", "lib/libx.so", "lib/sub/liby.a"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Symlink(filepath.Join(dir, "a.out"), filepath.Join(dir, "link")))

	files, err := osutils.ListFiles(dir)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "a.out"),
		filepath.Join(dir, "b.out"),
		filepath.Join(dir, "lib", "libx.so"),
		filepath.Join(dir, "lib", "sub", "liby.a"),
	}, files)

	single := filepath.Join(dir, "a.out")
	files, err = osutils.ListFiles(single)
	require.NoError(t, err)
	require.Equal(t, []string{single}, files)

	_, err = osutils.ListFiles(filepath.Join(dir, "missing"))
	require.Error(t, err)
}

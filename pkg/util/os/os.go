package os

import (
	"io/fs"
	"os"
	"path/filepath"
)

// ListFiles returns path itself if it is not a directory. Otherwise it walks
// the directory recursively and returns every regular file found, in
// lexical order. Symbolic links are not followed.
func ListFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

//go:build !unix

package mmap

import (
	"fmt"
	"os"
)

// MmapFile holds the content of a file. On platforms without mmap(2) the
// file is read into memory once and released on Close.
type MmapFile struct {
	Data     []byte
	File     *os.File
	FileSize int
}

func NewMmapFile(filePath string) (*MmapFile, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", filePath, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info for %q: %w", filePath, err)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%q is not a regular file", filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	return &MmapFile{Data: data, FileSize: len(data)}, nil
}

func (mr *MmapFile) Close() error {
	mr.Data = nil
	return nil
}

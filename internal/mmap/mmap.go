//go:build unix

package mmap

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// MmapFile represents a read-only memory-mapped file.
type MmapFile struct {
	Data     []byte   // The mapped bytes, nil for an empty file
	File     *os.File // The underlying opened file
	FileSize int      // Size of the file at open time
}

// NewMmapFile opens filePath and maps its whole content read-only.
//
// An empty file is not an error: it yields an MmapFile with no mapping and
// a zero-length Data slice, since mmap(2) rejects zero-length mappings.
func NewMmapFile(filePath string) (*MmapFile, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", filePath, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to get file info for %q: %w", filePath, err)
	}
	if !fi.Mode().IsRegular() {
		f.Close()
		return nil, fmt.Errorf("%q is not a regular file", filePath)
	}

	fileSize := int(fi.Size())
	if fileSize == 0 {
		return &MmapFile{File: f}, nil
	}

	data, err := unix.Mmap(
		int(f.Fd()),
		0,
		fileSize,
		unix.PROT_READ,
		unix.MAP_SHARED,
	)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to mmap file %q with length %d: %w", filePath, fileSize, err)
	}

	return &MmapFile{
		Data:     data,
		File:     f,
		FileSize: fileSize,
	}, nil
}

// Close unmaps the memory region and closes the underlying file.
// Calling Close more than once is a no-op.
func (mr *MmapFile) Close() error {
	var err error
	if mr.Data != nil {
		err = unix.Munmap(mr.Data)
		mr.Data = nil
		if err != nil {
			err = fmt.Errorf("failed to munmap: %w", err)
		}
	}

	if mr.File != nil {
		closeErr := mr.File.Close()
		mr.File = nil
		if closeErr != nil {
			if err != nil {
				return fmt.Errorf("%w (and close file: %v)", err, closeErr)
			}
			return fmt.Errorf("failed to close file: %w", closeErr)
		}
	}
	return err
}

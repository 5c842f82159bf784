//go:build unix

package fileid

import (
	"fmt"
	"os"
	"syscall"
)

// Stat returns the unique file identifier (device + inode) and link count for a file.
// This uses direct syscall.Stat() instead of os.Stat() for better performance.
func Stat(path string) (ID, uint64, error) {
	var stat syscall.Stat_t
	err := syscall.Stat(path, &stat)
	if err != nil {
		return ID{}, 0, fmt.Errorf("stat file: %w", err)
	}

	return ID{
		Device: uint64(stat.Dev),
		Inode:  uint64(stat.Ino),
	}, uint64(stat.Nlink), nil
}

// FromFileInfo extracts the identifier and link count from an existing stat
// result, avoiding a second syscall when the caller already holds one.
// The second return value is false if the platform does not expose this.
func FromFileInfo(info os.FileInfo) (ID, uint64, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok || stat == nil {
		return ID{}, 0, false
	}

	return ID{
		Device: uint64(stat.Dev),
		Inode:  uint64(stat.Ino),
	}, uint64(stat.Nlink), true
}

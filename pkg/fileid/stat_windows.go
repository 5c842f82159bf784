//go:build windows

package fileid

import (
	"fmt"
	"os"
	"syscall"
)

// Stat returns the unique file identifier (device + inode equivalent) and link
// count for a file on Windows, via GetFileInformationByHandle.
func Stat(path string) (ID, uint64, error) {
	pathp, err := syscall.UTF16PtrFromString(path)
	if err != nil {
		return ID{}, 0, fmt.Errorf("convert path to UTF16: %w", err)
	}

	attrs := uint32(syscall.FILE_FLAG_BACKUP_SEMANTICS)

	h, err := syscall.CreateFile(pathp, 0, 0, nil, syscall.OPEN_EXISTING, attrs, 0)
	if err != nil {
		return ID{}, 0, fmt.Errorf("open file: %w", err)
	}
	defer syscall.CloseHandle(h)

	var info syscall.ByHandleFileInformation
	if err := syscall.GetFileInformationByHandle(h, &info); err != nil {
		return ID{}, 0, fmt.Errorf("get file info: %w", err)
	}

	// Device = VolumeSerialNumber, Inode = (FileIndexHigh << 32) | FileIndexLow
	id := ID{
		Device: uint64(info.VolumeSerialNumber),
		Inode:  (uint64(info.FileIndexHigh) << 32) | uint64(info.FileIndexLow),
	}

	return id, uint64(info.NumberOfLinks), nil
}

// FromFileInfo cannot recover the volume serial / file index pair from an
// os.FileInfo on Windows, so callers fall back to Stat by path.
func FromFileInfo(_ os.FileInfo) (ID, uint64, bool) {
	return ID{}, 0, false
}

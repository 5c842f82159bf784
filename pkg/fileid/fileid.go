package fileid

import (
	"fmt"
)

// ID uniquely identifies physical file storage (device ID + inode number).
// Two paths with the same ID are hard links to the same data.
type ID struct {
	Device uint64 // Device ID
	Inode  uint64 // Inode number
}

// String returns a string representation of the ID.
func (f ID) String() string {
	return fmt.Sprintf("%d:%d", f.Device, f.Inode)
}

// Equal checks if two IDs are equal.
func (f ID) Equal(other ID) bool {
	return f.Device == other.Device && f.Inode == other.Inode
}

package registry

import (
	"io/fs"

	"github.com/filekit/dupfind/pkg/fileid"
)

// FileRecord is an immutable snapshot of one candidate path, taken when the
// path was registered. Later stages reference records, never copy them.
type FileRecord struct {
	Path  string
	Size  int64
	Links uint64
	Mode  fs.FileMode
	ID    fileid.ID
}

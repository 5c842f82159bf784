package action

import (
	"io"

	"github.com/filekit/dupfind/pkg/config"
	"github.com/filekit/dupfind/pkg/logger"
	"github.com/filekit/dupfind/pkg/resolver"
)

var log = logger.GetLogger("action")

// Dispatcher applies the configured disposition to confirmed equivalence
// groups. Failures are counted per file, never aborting the batch.
type Dispatcher interface {
	Dispatch(group *resolver.Group)
	Failures() int
}

// New selects the dispatcher for the run. Exactly one of link or delete may
// be set (validated before any work); neither means list. Result output goes
// to out, the interactive delete session reads from in.
func New(opts config.Options, in io.Reader, out io.Writer) Dispatcher {
	switch {
	case opts.Link:
		return NewLinker()
	case opts.Delete:
		return NewDeleter(in, out)
	default:
		return NewLister(out, opts)
	}
}

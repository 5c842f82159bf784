package action

import (
	"fmt"
	"io"

	"github.com/filekit/dupfind/pkg/config"
	"github.com/filekit/dupfind/pkg/registry"
	"github.com/filekit/dupfind/pkg/resolver"
)

// Lister prints each group, master first, one entry per line or
// space-separated on a single line.
type Lister struct {
	out       io.Writer
	sameLine  bool
	omitFirst bool
	showSize  bool
}

func NewLister(out io.Writer, opts config.Options) *Lister {
	return &Lister{
		out:       out,
		sameLine:  opts.SameLine,
		omitFirst: opts.OmitFirst,
		showSize:  opts.ShowSize,
	}
}

func (l *Lister) Dispatch(group *resolver.Group) {
	sep := byte('\n')
	if l.sameLine {
		sep = ' '
	}

	if !l.omitFirst {
		l.printEntry(group.Master, sep)
	}
	for _, dup := range group.Duplicates {
		l.printEntry(dup, sep)
	}

	// blank line between groups in multi-line mode, line terminator otherwise
	fmt.Fprintln(l.out)
}

func (l *Lister) printEntry(rec *registry.FileRecord, sep byte) {
	if l.showSize {
		fmt.Fprintf(l.out, "%s (%d)%c", rec.Path, rec.Size, sep)
	} else {
		fmt.Fprintf(l.out, "%s%c", rec.Path, sep)
	}
}

func (l *Lister) Failures() int {
	return 0
}

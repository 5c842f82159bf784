package action

import (
	"os"

	"github.com/filekit/dupfind/pkg/resolver"
)

// Linker replaces each duplicate's directory entry with a hard link to the
// master's storage. There is no rollback; safety rests on the byte-exact
// confirmation done by the resolver.
type Linker struct {
	failures int
}

func NewLinker() *Linker {
	return &Linker{}
}

func (l *Linker) Dispatch(group *resolver.Group) {
	for _, dup := range group.Duplicates {
		if err := os.Remove(dup.Path); err != nil {
			log.WithError(err).Warnf("Unable to unlink %q", dup.Path)
			l.failures++
			continue
		}
		if err := os.Link(group.Master.Path, dup.Path); err != nil {
			log.WithError(err).Warnf("Unable to link %q to %q", group.Master.Path, dup.Path)
			l.failures++
		}
	}
}

func (l *Linker) Failures() int {
	return l.failures
}

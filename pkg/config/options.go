package config

import "github.com/pkg/errors"

// Options is the resolved option set for one scan run. It is built once from
// the command line and threaded through the registry, resolver and action
// dispatcher; nothing mutates it after that.
type Options struct {
	// registry behaviour
	Recurse        bool
	FollowSymlinks bool
	SkipEmpty      bool
	ReadStdin      bool
	Quiet          bool

	// resolver behaviour; when true, hard-linked names are treated as
	// independent duplicates instead of being collapsed to one representative
	HardlinkAware bool

	// listing behaviour
	SameLine  bool
	OmitFirst bool
	ShowSize  bool

	// actions, mutually exclusive; neither set means list
	Delete bool
	Link   bool
}

var (
	ErrExclusiveActions = errors.New("link and delete are mutually exclusive")
	ErrNoInput          = errors.New("no files or directories given and stdin not enabled")
)

// Validate rejects impossible option combinations before any work begins.
func (o Options) Validate(argCount int) error {
	if o.Delete && o.Link {
		return ErrExclusiveActions
	}
	if argCount == 0 && !o.ReadStdin {
		return ErrNoInput
	}
	return nil
}

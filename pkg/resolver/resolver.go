package resolver

import (
	"sort"

	"github.com/filekit/dupfind/pkg/index"
	"github.com/filekit/dupfind/pkg/logger"
	"github.com/filekit/dupfind/pkg/registry"
)

var log = logger.GetLogger("resolver")

// Group is one confirmed equivalence class: a master plus every record that
// compared byte-identical to it.
type Group struct {
	Digest     string
	Master     *registry.FileRecord
	Duplicates []*registry.FileRecord
}

// CompareFunc reports whether two files are byte-identical.
type CompareFunc func(pathA string, pathB string) bool

// Resolver partitions digest buckets into true content-equivalence groups.
type Resolver struct {
	hardlinkAware bool
	compare       CompareFunc
}

// New creates a resolver. With hardlinkAware set, names already sharing
// storage are treated as independent duplicates; otherwise each (device,
// inode) identity keeps a single representative.
func New(hardlinkAware bool) *Resolver {
	return &Resolver{
		hardlinkAware: hardlinkAware,
		compare:       CompareFiles,
	}
}

// NewWithCompare is New with a custom comparison function, for tests.
func NewWithCompare(hardlinkAware bool, compare CompareFunc) *Resolver {
	return &Resolver{
		hardlinkAware: hardlinkAware,
		compare:       compare,
	}
}

// Resolve partitions one bucket and emits each confirmed group. Buckets with
// a single member cannot contain duplicates and are skipped outright.
//
// A bucket may hold more than one equivalence class when digests collide, so
// records that fail the comparison against the current master are retried
// with a new master until none remain. Quadratic in the worst case, which is
// fine at duplicate-scan scale; byte-exact confirmation is what makes the
// destructive actions safe.
func (r *Resolver) Resolve(bucket *index.Bucket, emit func(group *Group)) {
	if bucket.Count <= 1 {
		return
	}

	working := make([]*registry.FileRecord, len(bucket.Files))
	copy(working, bucket.Files)

	// records with more existing hard links are preferred as master
	sort.Slice(working, func(i, j int) bool {
		if working[i].Links != working[j].Links {
			return working[i].Links > working[j].Links
		}
		return working[i].Path < working[j].Path
	})

	if !r.hardlinkAware {
		working = filterLinks(working)
	}

	for len(working) > 0 {
		master := working[0]

		var good, bad []*registry.FileRecord
		for _, candidate := range working[1:] {
			if r.compare(master.Path, candidate.Path) {
				good = append(good, candidate)
			} else {
				bad = append(bad, candidate)
			}
		}

		if len(good) > 0 {
			emit(&Group{
				Digest:     bucket.Digest,
				Master:     master,
				Duplicates: good,
			})
		}

		working = bad
	}
}

// filterLinks keeps the first-seen record for each distinct (device, inode)
// identity, preserving order. Two names for the same physical storage must
// not be reported as duplicates of each other.
func filterLinks(records []*registry.FileRecord) []*registry.FileRecord {
	filtered := records[:0:0]
	for _, rec := range records {
		found := false
		for _, kept := range filtered {
			if kept.ID.Equal(rec.ID) {
				found = true
				break
			}
		}
		if !found {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

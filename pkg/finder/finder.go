package finder

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/filekit/dupfind/pkg/action"
	"github.com/filekit/dupfind/pkg/digest"
	"github.com/filekit/dupfind/pkg/index"
	"github.com/filekit/dupfind/pkg/logger"
	"github.com/filekit/dupfind/pkg/registry"
	"github.com/filekit/dupfind/pkg/resolver"
)

// Finder runs the duplicate pipeline over a fixed snapshot of file records:
// one pass digesting every file into the index, then one pass resolving each
// bucket and dispatching confirmed groups. Stages run strictly in sequence;
// the interactive delete action needs ordered, blocking operator input.
type Finder struct {
	digestFn   digest.Func
	resolver   *resolver.Resolver
	dispatcher action.Dispatcher
	log        *logrus.Entry

	// Observer, when set, sees every confirmed group after dispatch.
	Observer func(group *resolver.Group)
}

type Stats struct {
	FilesIndexed     int
	Buckets          int
	Groups           int
	Duplicates       int
	ReclaimableBytes uint64
	Duration         time.Duration
}

func New(digestFn digest.Func, res *resolver.Resolver, dispatcher action.Dispatcher) *Finder {
	return &Finder{
		digestFn:   digestFn,
		resolver:   res,
		dispatcher: dispatcher,
		log:        logger.GetLogger("finder"),
	}
}

// Run consumes the records in order. A file whose digest cannot be computed
// is warned about and contributes no bucket entry; the run continues.
func (f *Finder) Run(records []*registry.FileRecord) *Stats {
	start := time.Now()
	stats := &Stats{}

	f.log.Debug("Calculating digests")

	idx := index.New()
	for _, rec := range records {
		d, err := f.digestFn(rec.Path)
		if err != nil {
			f.log.WithError(err).Warnf("Digest calculation failed on file %q", rec.Path)
			continue
		}
		idx.Insert(d, rec)
		stats.FilesIndexed++
	}
	stats.Buckets = idx.Length()

	f.log.Debug("Performing required actions")

	idx.ForEach(func(bucket *index.Bucket) {
		f.resolver.Resolve(bucket, func(group *resolver.Group) {
			f.dispatcher.Dispatch(group)

			stats.Groups++
			stats.Duplicates += len(group.Duplicates)
			for _, dup := range group.Duplicates {
				stats.ReclaimableBytes += uint64(dup.Size)
			}

			if f.Observer != nil {
				f.Observer(group)
			}
		})
	})

	stats.Duration = time.Since(start)
	return stats
}

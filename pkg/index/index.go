package index

import (
	"github.com/filekit/dupfind/pkg/registry"
)

// Bucket holds the files sharing one digest, in insertion order. Sharing a
// digest is necessary but not sufficient for being duplicates; the resolver
// still confirms byte equality.
type Bucket struct {
	Digest string
	Files  []*registry.FileRecord
	Count  int
}

// DigestIndex maps digest values to buckets. Buckets are visited in
// first-insertion order of their digest, which keeps output deterministic;
// the partition itself does not depend on it.
type DigestIndex struct {
	buckets map[string]*Bucket
	order   []string
}

func New() *DigestIndex {
	return &DigestIndex{
		buckets: make(map[string]*Bucket),
	}
}

// Insert appends rec to the bucket for digest, creating the bucket on first
// insertion of that digest.
func (i *DigestIndex) Insert(digest string, rec *registry.FileRecord) {
	if bucket, exists := i.buckets[digest]; exists {
		bucket.Files = append(bucket.Files, rec)
		bucket.Count++
		return
	}

	i.buckets[digest] = &Bucket{
		Digest: digest,
		Files:  []*registry.FileRecord{rec},
		Count:  1,
	}
	i.order = append(i.order, digest)
}

// ForEach visits every bucket exactly once.
func (i *DigestIndex) ForEach(fn func(bucket *Bucket)) {
	for _, digest := range i.order {
		fn(i.buckets[digest])
	}
}

// Length returns the number of distinct digests seen.
func (i *DigestIndex) Length() int {
	return len(i.buckets)
}

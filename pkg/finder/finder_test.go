package finder

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filekit/dupfind/pkg/action"
	"github.com/filekit/dupfind/pkg/config"
	"github.com/filekit/dupfind/pkg/digest"
	"github.com/filekit/dupfind/pkg/fileid"
	"github.com/filekit/dupfind/pkg/registry"
	"github.com/filekit/dupfind/pkg/resolver"
)

func writeFile(t *testing.T, dir, name string, data []byte) *registry.FileRecord {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	id, links, err := fileid.Stat(path)
	require.NoError(t, err)

	return &registry.FileRecord{
		Path:  path,
		Size:  int64(len(data)),
		Links: links,
		ID:    id,
	}
}

func TestFinder_ListsIdenticalFiles(t *testing.T) {
	dir := t.TempDir()

	shared := []byte("same bytes in all three files\n")
	a := writeFile(t, dir, "a", shared)
	b := writeFile(t, dir, "b", shared)
	c := writeFile(t, dir, "c", shared)
	d := writeFile(t, dir, "d", []byte("nothing like the others\n"))

	var out bytes.Buffer
	dispatcher := action.New(config.Options{}, nil, &out)

	f := New(digest.File, resolver.New(false), dispatcher)
	stats := f.Run([]*registry.FileRecord{a, b, c, d})

	assert.Equal(t, 4, stats.FilesIndexed)
	assert.Equal(t, 2, stats.Buckets)
	assert.Equal(t, 1, stats.Groups)
	assert.Equal(t, 2, stats.Duplicates)
	assert.Equal(t, uint64(2*len(shared)), stats.ReclaimableBytes)

	listing := out.String()
	assert.Contains(t, listing, a.Path+"\n")
	assert.Contains(t, listing, b.Path+"\n")
	assert.Contains(t, listing, c.Path+"\n")
	assert.NotContains(t, listing, d.Path)
}

func TestFinder_CollidingDigestsProduceNoGroup(t *testing.T) {
	dir := t.TempDir()

	a := writeFile(t, dir, "a", []byte("first"))
	b := writeFile(t, dir, "b", []byte("second"))

	// every file lands in the same bucket; byte comparison must still
	// keep the two apart
	collide := func(string) (string, error) { return "0000000000000000", nil }

	var out bytes.Buffer
	f := New(collide, resolver.New(false), action.New(config.Options{}, nil, &out))
	stats := f.Run([]*registry.FileRecord{a, b})

	assert.Equal(t, 2, stats.FilesIndexed)
	assert.Equal(t, 1, stats.Buckets)
	assert.Zero(t, stats.Groups)
	assert.Zero(t, stats.Duplicates)
	assert.Empty(t, out.String())
}

func TestFinder_DigestFailureSkipsFile(t *testing.T) {
	dir := t.TempDir()

	shared := []byte("payload")
	a := writeFile(t, dir, "a", shared)
	b := writeFile(t, dir, "b", shared)
	c := writeFile(t, dir, "c", shared)

	failing := func(path string) (string, error) {
		if path == c.Path {
			return "", fmt.Errorf("open %s: permission denied", path)
		}
		return digest.File(path)
	}

	var out bytes.Buffer
	f := New(failing, resolver.New(false), action.New(config.Options{}, nil, &out))
	stats := f.Run([]*registry.FileRecord{a, b, c})

	assert.Equal(t, 2, stats.FilesIndexed)
	assert.Equal(t, 1, stats.Groups)
	assert.Equal(t, 1, stats.Duplicates)

	listing := out.String()
	assert.Contains(t, listing, a.Path)
	assert.Contains(t, listing, b.Path)
	assert.NotContains(t, listing, c.Path)
}

func TestFinder_ObserverSeesEachGroup(t *testing.T) {
	dir := t.TempDir()

	a := writeFile(t, dir, "a", []byte("pair one"))
	b := writeFile(t, dir, "b", []byte("pair one"))
	x := writeFile(t, dir, "x", []byte("pair two"))
	y := writeFile(t, dir, "y", []byte("pair two"))

	var out bytes.Buffer
	f := New(digest.File, resolver.New(false), action.New(config.Options{}, nil, &out))

	var masters []string
	f.Observer = func(group *resolver.Group) {
		masters = append(masters, group.Master.Path)
	}

	stats := f.Run([]*registry.FileRecord{a, b, x, y})

	assert.Equal(t, 2, stats.Groups)
	assert.ElementsMatch(t, []string{a.Path, x.Path}, masters)
}

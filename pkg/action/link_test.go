package action

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filekit/dupfind/pkg/fileid"
	"github.com/filekit/dupfind/pkg/registry"
	"github.com/filekit/dupfind/pkg/resolver"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func record(t *testing.T, path string) *registry.FileRecord {
	t.Helper()
	info, err := os.Lstat(path)
	require.NoError(t, err)
	id, nlink, ok := fileid.FromFileInfo(info)
	require.True(t, ok)
	return &registry.FileRecord{Path: path, Size: info.Size(), Links: nlink, ID: id}
}

func TestLinker_ReplacesDuplicateWithHardLink(t *testing.T) {
	dir := t.TempDir()
	content := []byte("identical content\n")
	master := writeFile(t, dir, "master", content)
	dup := writeFile(t, dir, "dup", content)

	masterID, _, err := fileid.Stat(master)
	require.NoError(t, err)
	dupID, _, err := fileid.Stat(dup)
	require.NoError(t, err)
	require.False(t, masterID.Equal(dupID))

	linker := NewLinker()
	linker.Dispatch(&resolver.Group{
		Master:     record(t, master),
		Duplicates: []*registry.FileRecord{record(t, dup)},
	})

	assert.Zero(t, linker.Failures())

	// the duplicate path now shares the master's inode with two links
	newDupID, nlink, err := fileid.Stat(dup)
	require.NoError(t, err)
	assert.True(t, masterID.Equal(newDupID))
	assert.Equal(t, uint64(2), nlink)

	data, err := os.ReadFile(dup)
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestLinker_PartialFailureContinues(t *testing.T) {
	dir := t.TempDir()
	content := []byte("identical content\n")
	master := writeFile(t, dir, "master", content)
	dup := writeFile(t, dir, "dup", content)

	// a stale record whose path no longer exists fails to unlink; the
	// healthy duplicate after it must still be processed
	missing := &registry.FileRecord{Path: filepath.Join(dir, "missing")}

	linker := NewLinker()
	linker.Dispatch(&resolver.Group{
		Master:     record(t, master),
		Duplicates: []*registry.FileRecord{missing, record(t, dup)},
	})

	assert.Equal(t, 1, linker.Failures())

	// the healthy duplicate was still linked
	masterID, _, err := fileid.Stat(master)
	require.NoError(t, err)
	dupID, _, err := fileid.Stat(dup)
	require.NoError(t, err)
	assert.True(t, masterID.Equal(dupID))
}

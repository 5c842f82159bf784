package action

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filekit/dupfind/pkg/registry"
	"github.com/filekit/dupfind/pkg/resolver"
)

func deleteGroup(t *testing.T, dir string) (*resolver.Group, string, string, string) {
	t.Helper()
	content := []byte("identical content\n")
	master := writeFile(t, dir, "master", content)
	d1 := writeFile(t, dir, "d1", content)
	d2 := writeFile(t, dir, "d2", content)

	group := &resolver.Group{
		Digest:     "feedfacefeedface",
		Master:     record(t, master),
		Duplicates: []*registry.FileRecord{record(t, d1), record(t, d2)},
	}
	return group, master, d1, d2
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func TestDeleter_ToggleThenGo(t *testing.T) {
	group, master, d1, d2 := deleteGroup(t, t.TempDir())

	// entry 2 is d1; toggling it back to keep leaves only d2 marked
	var out bytes.Buffer
	deleter := NewDeleter(strings.NewReader("2\ngo\n"), &out)
	deleter.Dispatch(group)

	assert.True(t, exists(master))
	assert.True(t, exists(d1))
	assert.False(t, exists(d2))
	assert.Zero(t, deleter.Failures())
	assert.Contains(t, out.String(), d2+" deleted")
	assert.NotContains(t, out.String(), d1+" deleted")
}

func TestDeleter_GoDeletesAllMarked(t *testing.T) {
	group, master, d1, d2 := deleteGroup(t, t.TempDir())

	var out bytes.Buffer
	deleter := NewDeleter(strings.NewReader("go\n"), &out)
	deleter.Dispatch(group)

	assert.True(t, exists(master))
	assert.False(t, exists(d1))
	assert.False(t, exists(d2))
}

func TestDeleter_EOFAbortsWithoutDeleting(t *testing.T) {
	group, master, d1, d2 := deleteGroup(t, t.TempDir())

	var out bytes.Buffer
	deleter := NewDeleter(strings.NewReader(""), &out)
	deleter.Dispatch(group)

	assert.True(t, exists(master))
	assert.True(t, exists(d1))
	assert.True(t, exists(d2))
	assert.Contains(t, out.String(), "*** EOF *** no action taken")
}

func TestDeleter_InvalidInputRePrompts(t *testing.T) {
	group, master, d1, d2 := deleteGroup(t, t.TempDir())

	var out bytes.Buffer
	deleter := NewDeleter(strings.NewReader("nonsense\n99\ngo\n"), &out)
	deleter.Dispatch(group)

	assert.Contains(t, out.String(), "invalid input - please type a number or 'go'")
	assert.Contains(t, out.String(), "no file number 99")

	// invalid input changed nothing; go still deletes every marked entry
	assert.True(t, exists(master))
	assert.False(t, exists(d1))
	assert.False(t, exists(d2))
}

func TestDeleter_ListingShowsDisposition(t *testing.T) {
	group, master, _, _ := deleteGroup(t, t.TempDir())

	var out bytes.Buffer
	deleter := NewDeleter(strings.NewReader(""), &out)
	deleter.Dispatch(group)

	listing := out.String()
	assert.Contains(t, listing, "Disposition of files with digest feedfacefeedface")
	// master is kept from the start
	assert.Contains(t, listing, "1 * "+master)
	assert.Contains(t, listing, "Files marked (*) will be kept")
}

func TestDeleter_UnlinkFailureIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	group, master, d1, d2 := deleteGroup(t, dir)
	require.NoError(t, os.Remove(d1))

	var out bytes.Buffer
	deleter := NewDeleter(strings.NewReader("go\n"), &out)
	deleter.Dispatch(group)

	// d1 was already gone: warn and carry on with d2
	assert.Equal(t, 1, deleter.Failures())
	assert.True(t, exists(master))
	assert.False(t, exists(d2))
}

func TestDeleter_SessionPerGroup(t *testing.T) {
	dir1 := t.TempDir()
	dir2 := t.TempDir()
	groupA, _, a1, a2 := deleteGroup(t, dir1)
	groupB, _, b1, b2 := deleteGroup(t, dir2)

	// one reader feeds consecutive sessions: abort the first group's session
	// via toggling everything off then go, delete everything in the second
	var out bytes.Buffer
	deleter := NewDeleter(strings.NewReader("2\n3\ngo\ngo\n"), &out)
	deleter.Dispatch(groupA)
	deleter.Dispatch(groupB)

	assert.True(t, exists(a1))
	assert.True(t, exists(a2))
	assert.False(t, exists(b1))
	assert.False(t, exists(b2))
}

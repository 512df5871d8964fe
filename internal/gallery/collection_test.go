package gallery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sidecap/internal/config"
	"sidecap/internal/store"
)

func writeImage(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("img"), 0644))
	return path
}

func newCollection(t *testing.T) *Collection {
	t.Helper()
	col, err := New(config.New())
	require.NoError(t, err)
	return col
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name()
	}
	return out
}

func TestLoadSortsCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "B.png")
	writeImage(t, dir, "a.png")
	writeImage(t, dir, "C.png")

	col := newCollection(t)
	require.NoError(t, col.Load(dir))

	assert.Equal(t, []string{"a.png", "B.png", "C.png"}, names(col.Entries()))
	assert.Equal(t, 0, col.Index())
}

func TestLoadRecursiveAndFiltered(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "top.jpg")
	writeImage(t, dir, filepath.Join("sub", "deep.jpeg"))
	writeImage(t, dir, "SHOUT.PNG")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an image"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "movie.gif"), []byte("nope"), 0644))

	col := newCollection(t)
	require.NoError(t, col.Load(dir))

	assert.Equal(t, 3, col.Len())
	for _, e := range col.Entries() {
		assert.NotEqual(t, "notes.txt", e.Name())
		assert.NotEqual(t, "movie.gif", e.Name())
	}
}

func TestLoadSkipsTrashFolder(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "keep.jpg")
	writeImage(t, dir, filepath.Join("_deleted", "gone.jpg"))

	col := newCollection(t)
	require.NoError(t, col.Load(dir))

	assert.Equal(t, []string{"keep.jpg"}, names(col.Entries()))
}

func TestSetIndexFlooredModulo(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "a.jpg")
	writeImage(t, dir, "b.jpg")
	writeImage(t, dir, "c.jpg")

	col := newCollection(t)
	require.NoError(t, col.Load(dir))

	n := col.Len()
	for i := -2*n - 1; i <= 2*n+1; i++ {
		col.SetIndex(i)
		want := ((i % n) + n) % n
		assert.Equal(t, want, col.Index(), "SetIndex(%d)", i)
	}

	// SetIndex(-1) lands on the last element.
	col.SetIndex(-1)
	assert.Equal(t, n-1, col.Index())
}

func TestGoToFlushesBeforeMove(t *testing.T) {
	dir := t.TempDir()
	first := writeImage(t, dir, "a.jpg")
	writeImage(t, dir, "b.jpg")

	col := newCollection(t)
	require.NoError(t, col.Load(dir))

	col.SetCaption("  a red fox \n")
	require.NoError(t, col.Next())

	// The caption for the entry we left must already be on disk,
	// normalized.
	got, err := store.Read(first)
	require.NoError(t, err)
	assert.Equal(t, "a red fox", got)

	// The buffer now holds the new entry's caption.
	assert.Equal(t, "", col.Caption())
}

func TestNavigationWraps(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "a.jpg")
	writeImage(t, dir, "b.jpg")
	writeImage(t, dir, "c.jpg")

	col := newCollection(t)
	require.NoError(t, col.Load(dir))

	require.NoError(t, col.Prev())
	assert.Equal(t, 2, col.Index(), "prev from the start wraps to the end")

	require.NoError(t, col.Next())
	assert.Equal(t, 0, col.Index(), "next from the end wraps to the start")

	require.NoError(t, col.Jump(10))
	assert.Equal(t, 1, col.Index())

	require.NoError(t, col.Jump(-10))
	assert.Equal(t, 0, col.Index())

	require.NoError(t, col.Last())
	assert.Equal(t, 2, col.Index())

	require.NoError(t, col.First())
	assert.Equal(t, 0, col.Index())
}

func TestEmptyCollectionNoOps(t *testing.T) {
	dir := t.TempDir()

	col := newCollection(t)
	require.NoError(t, col.Load(dir))
	require.True(t, col.Empty())

	assert.NoError(t, col.Next())
	assert.NoError(t, col.Prev())
	assert.NoError(t, col.Jump(10))
	assert.NoError(t, col.GoTo(5))
	assert.NoError(t, col.Delete())
	assert.NoError(t, col.Shuffle())
	assert.NoError(t, col.Flush())
	assert.Equal(t, 0, col.Index())

	_, ok := col.Current()
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "a.jpg")
	b := writeImage(t, dir, "b.jpg")
	writeImage(t, dir, "c.jpg")
	require.NoError(t, store.Write(b, "middle"))

	col := newCollection(t)
	require.NoError(t, col.Load(dir))
	require.NoError(t, col.GoTo(1))

	require.NoError(t, col.Delete())

	assert.Equal(t, 2, col.Len())
	assert.Equal(t, []string{"a.jpg", "c.jpg"}, names(col.Entries()))
	assert.Equal(t, 1, col.Index(), "cursor stays, now on the next entry")

	assert.FileExists(t, filepath.Join(dir, "_deleted", "b.jpg"))
	assert.FileExists(t, filepath.Join(dir, "_deleted", "b.txt"))
	assert.NoFileExists(t, b)
}

func TestDeleteLastEntryClampsCursor(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "a.jpg")
	writeImage(t, dir, "b.jpg")
	writeImage(t, dir, "c.jpg")

	col := newCollection(t)
	require.NoError(t, col.Load(dir))
	require.NoError(t, col.Last())

	require.NoError(t, col.Delete())

	assert.Equal(t, 2, col.Len())
	assert.Equal(t, 1, col.Index(), "deleting the last element moves the cursor to the new last element")
}

func TestDeleteToEmpty(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "only.jpg")

	col := newCollection(t)
	require.NoError(t, col.Load(dir))

	require.NoError(t, col.Delete())
	assert.True(t, col.Empty())
	assert.Equal(t, "", col.Caption())

	// Delete on the now-empty collection is a no-op.
	assert.NoError(t, col.Delete())
}

func TestDeleteFailureKeepsEntry(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "a.jpg")

	// Occupy the trash slot so the rename must fail.
	trash := filepath.Join(dir, "_deleted")
	require.NoError(t, os.MkdirAll(trash, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(trash, "a.jpg"), []byte("old"), 0644))

	col := newCollection(t)
	require.NoError(t, col.Load(dir))

	err := col.Delete()
	require.Error(t, err)

	// The collection state must remain consistent with disk.
	assert.Equal(t, 1, col.Len())
	assert.Equal(t, 0, col.Index())
	assert.FileExists(t, filepath.Join(dir, "a.jpg"))
}

func TestShuffle(t *testing.T) {
	dir := t.TempDir()
	first := writeImage(t, dir, "a.jpg")
	writeImage(t, dir, "b.jpg")
	writeImage(t, dir, "c.jpg")

	col := newCollection(t)
	require.NoError(t, col.Load(dir))
	col.SetCaption("keep me")

	require.NoError(t, col.Shuffle())

	assert.Equal(t, 0, col.Index())
	assert.Equal(t, 3, col.Len())

	// Shuffle flushes the pending caption before permuting.
	got, err := store.Read(first)
	require.NoError(t, err)
	assert.Equal(t, "keep me", got)

	// Same set of entries, possibly reordered.
	assert.ElementsMatch(t, []string{"a.jpg", "b.jpg", "c.jpg"}, names(col.Entries()))
}

func TestRefreshKeepsCurrentEntry(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "a.jpg")
	b := writeImage(t, dir, "b.jpg")

	col := newCollection(t)
	require.NoError(t, col.Load(dir))
	require.NoError(t, col.GoTo(1))

	// A new image appears before the current one.
	writeImage(t, dir, "aa.jpg")
	require.NoError(t, col.Refresh())

	assert.Equal(t, 3, col.Len())
	entry, ok := col.Current()
	require.True(t, ok)
	assert.Equal(t, b, entry.Path)
	assert.Equal(t, 2, col.Index())
}

func TestCaptionAt(t *testing.T) {
	dir := t.TempDir()
	a := writeImage(t, dir, "a.jpg")
	writeImage(t, dir, "b.jpg")
	require.NoError(t, store.Write(a, "a red fox"))

	col := newCollection(t)
	require.NoError(t, col.Load(dir))

	got, err := col.CaptionAt(0)
	require.NoError(t, err)
	assert.Equal(t, "a red fox", got)

	got, err = col.CaptionAt(1)
	require.NoError(t, err)
	assert.Equal(t, "", got)

	// Out of range reads as empty, defensively.
	got, err = col.CaptionAt(99)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestVersionBumpsOnStructuralChange(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "a.jpg")
	writeImage(t, dir, "b.jpg")

	col := newCollection(t)
	require.NoError(t, col.Load(dir))
	v := col.Version()

	require.NoError(t, col.Next())
	assert.Equal(t, v, col.Version(), "navigation is not a structural change")

	require.NoError(t, col.Shuffle())
	assert.NotEqual(t, v, col.Version())
}

package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sidecap/internal/config"
	"sidecap/internal/gallery"
	"sidecap/internal/store"
)

// fixture builds a collection of images with the given captions, in
// sorted order, cursor at 0.
func fixture(t *testing.T, captions ...string) (*gallery.Collection, *Engine) {
	t.Helper()
	dir := t.TempDir()

	for i, caption := range captions {
		name := string(rune('a'+i)) + ".jpg"
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("img"), 0644))
		if caption != "" {
			require.NoError(t, store.Write(path, caption))
		}
	}

	col, err := gallery.New(config.New())
	require.NoError(t, err)
	require.NoError(t, col.Load(dir))
	return col, New(col)
}

func TestFindNextWrapAround(t *testing.T) {
	col, e := fixture(t, "red fox", "blue sky", "red fox jumps")
	require.Equal(t, 0, col.Index())

	// First match scanning forward from cursor+1.
	found, err := e.FindNext("red")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, col.Index())

	// Wraps past the end, skips "blue sky", lands on index 0.
	found, err = e.FindNext("red")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 0, col.Index())

	// And back again.
	found, err = e.FindNext("red")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, col.Index())
}

func TestFindNextNoMatchLeavesCursor(t *testing.T) {
	col, e := fixture(t, "red fox", "blue sky", "red fox jumps")
	require.NoError(t, col.GoTo(1))

	found, err := e.FindNext("zzz")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 1, col.Index())
}

func TestFindNextIsCaseSensitive(t *testing.T) {
	col, e := fixture(t, "a cat", "a Cat")

	found, err := e.FindNext("Cat")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, col.Index())

	// Lowercase query never matches the capitalized caption.
	col2, e2 := fixture(t, "a Dog", "a Dog")
	found, err = e2.FindNext("dog")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, col2.Index())
}

func TestFindNextMatchesCurrentOnWrap(t *testing.T) {
	// The wrap range includes the start index itself.
	col, e := fixture(t, "blue", "red", "blue")
	require.NoError(t, col.GoTo(1))

	found, err := e.FindNext("red")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, col.Index())
}

func TestFindPrev(t *testing.T) {
	col, e := fixture(t, "red fox", "blue sky", "red fox jumps")
	require.NoError(t, col.GoTo(2))

	found, err := e.FindPrev("red")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 0, col.Index())

	// Wraps backward past the start.
	found, err = e.FindPrev("red")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, col.Index())
}

func TestFindPrevNoMatchLeavesCursor(t *testing.T) {
	col, e := fixture(t, "red fox", "blue sky")

	found, err := e.FindPrev("zzz")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, col.Index())
}

func TestStickyQuery(t *testing.T) {
	col, e := fixture(t, "red fox", "blue sky", "red sun")

	_, err := e.FindNext("red")
	require.NoError(t, err)
	assert.Equal(t, "red", e.Query())

	// An empty query reuses the sticky one.
	found, err := e.FindNext("")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 0, col.Index())

	// A new query replaces it.
	_, err = e.FindNext("blue")
	require.NoError(t, err)
	assert.Equal(t, "blue", e.Query())
}

func TestFindWithoutQueryIsNoOp(t *testing.T) {
	col, e := fixture(t, "red fox", "blue sky")

	found, err := e.FindNext("")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, col.Index())
}

func TestEmptyCollectionIsNoOp(t *testing.T) {
	col, e := fixture(t)
	require.True(t, col.Empty())

	found, err := e.FindNext("red")
	require.NoError(t, err)
	assert.False(t, found)

	found, err = e.FindPrev("red")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSearchMovesViaGoTo(t *testing.T) {
	// Navigating through a match flushes the caption being left.
	col, e := fixture(t, "red fox", "blue sky")
	first, ok := col.Current()
	require.True(t, ok)

	col.SetCaption("edited caption")
	found, err := e.FindNext("blue")
	require.NoError(t, err)
	require.True(t, found)

	got, err := store.Read(first.Path)
	require.NoError(t, err)
	assert.Equal(t, "edited caption", got)
}

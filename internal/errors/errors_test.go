package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileErrorMessage(t *testing.T) {
	err := NewFileError("failed to move image to trash", "/data/cat.jpg", RelocationFailed, fmt.Errorf("permission denied"))

	assert.Equal(t, "failed to move image to trash: /data/cat.jpg: permission denied", err.Error())
	assert.Equal(t, "/data/cat.jpg", err.Path())
	assert.Equal(t, RelocationFailed, err.Kind())
}

func TestFileErrorWithoutPath(t *testing.T) {
	err := NewFileError("scan failed", "", ScanFailed, nil)
	assert.Equal(t, "scan failed", err.Error())
}

func TestKindHelpers(t *testing.T) {
	relocation := NewFileError("move failed", "/x.jpg", RelocationFailed, nil)
	notFound := NewFileError("missing", "/y.jpg", FileNotFound, nil)
	scan := NewFileError("walk failed", "/z", ScanFailed, nil)

	assert.True(t, IsRelocationFailed(relocation))
	assert.False(t, IsRelocationFailed(notFound))

	assert.True(t, IsFileNotFound(notFound))
	assert.False(t, IsFileNotFound(scan))

	assert.True(t, IsScanFailed(scan))
	assert.False(t, IsScanFailed(relocation))

	assert.False(t, IsRelocationFailed(New("plain error")))
	assert.False(t, IsRelocationFailed(nil))
}

func TestKindHelpersSeeThroughWrapping(t *testing.T) {
	inner := NewFileError("move failed", "/x.jpg", RelocationFailed, nil)
	wrapped := Wrap(inner, "delete failed")

	assert.True(t, IsRelocationFailed(wrapped))
	assert.Contains(t, wrapped.Error(), "delete failed")
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(cause, "write failed")

	require.NotNil(t, err)
	assert.Equal(t, cause, Unwrap(err))
	assert.True(t, Is(err, cause))
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("invalid configuration", "spell.delay_ms", InvalidConfig, nil)

	assert.Equal(t, "invalid configuration: spell.delay_ms", err.Error())
	assert.Equal(t, "spell.delay_ms", err.Param())
	assert.True(t, IsInvalidConfig(err))
}

// Package store owns the on-disk representation of image captions.
// Each image has at most one sidecar file next to it, sharing the
// image's name with a .txt extension. A missing sidecar reads as an
// empty caption; it is created on first write.
package store

import (
	"os"
	"path/filepath"
	"strings"

	"sidecap/internal/errors"
	"sidecap/internal/log"
)

// CaptionPath returns the sidecar path for an image: same directory,
// same stem, .txt extension.
func CaptionPath(imagePath string) string {
	ext := filepath.Ext(imagePath)
	return strings.TrimSuffix(imagePath, ext) + ".txt"
}

// Normalize strips carriage returns, line feeds, and surrounding
// whitespace. Captions are single-line by convention; this is applied
// by callers before Write.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.ReplaceAll(text, "\n", "")
	return strings.TrimSpace(text)
}

// Read returns the sidecar contents for an image. A missing sidecar is
// an empty caption, not an error.
func Read(imagePath string) (string, error) {
	data, err := os.ReadFile(CaptionPath(imagePath))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.NewFileError("failed to read caption", CaptionPath(imagePath), errors.FileAccessDenied, err)
	}
	return string(data), nil
}

// Write overwrites (or creates) the sidecar file with UTF-8 content.
// No newline translation is applied beyond what the caller already
// normalized.
func Write(imagePath, text string) error {
	captionPath := CaptionPath(imagePath)
	if err := os.WriteFile(captionPath, []byte(text), 0644); err != nil {
		return errors.NewFileError("failed to write caption", captionPath, errors.FileAccessDenied, err)
	}
	return nil
}

// Relocate moves the image and, if present, its sidecar into trashDir,
// preserving filenames. trashDir is created if absent.
//
// The two renames are not transactional: if the image move succeeds and
// the caption move fails, the caption is orphaned at the old location.
// The error is surfaced rather than masked so the caller can leave its
// state untouched.
func Relocate(imagePath, trashDir string) error {
	if err := os.MkdirAll(trashDir, 0755); err != nil {
		return errors.NewFileError("failed to create trash directory", trashDir, errors.RelocationFailed, err)
	}

	imageDest := filepath.Join(trashDir, filepath.Base(imagePath))
	if _, err := os.Stat(imageDest); err == nil {
		return errors.NewFileError("trash already contains file", imageDest, errors.RelocationFailed, nil)
	}
	if err := os.Rename(imagePath, imageDest); err != nil {
		return errors.NewFileError("failed to move image to trash", imagePath, errors.RelocationFailed, err)
	}
	log.Debug("Moved %s -> %s", imagePath, imageDest)

	captionPath := CaptionPath(imagePath)
	if _, err := os.Stat(captionPath); err != nil {
		if os.IsNotExist(err) {
			return nil // No sidecar to move
		}
		return errors.NewFileError("failed to stat caption", captionPath, errors.RelocationFailed, err)
	}

	captionDest := filepath.Join(trashDir, filepath.Base(captionPath))
	if err := os.Rename(captionPath, captionDest); err != nil {
		// The image has already moved; the caption stays behind.
		return errors.NewFileError("failed to move caption to trash", captionPath, errors.RelocationFailed, err)
	}
	log.Debug("Moved %s -> %s", captionPath, captionDest)

	return nil
}

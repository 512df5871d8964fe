package gallery

import (
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/gobwas/glob"

	"sidecap/internal/errors"
	"sidecap/internal/log"
)

// Scanner finds image files under a directory tree. The accepted
// extension set comes from configuration and is compiled once into
// glob matchers; matching is case-insensitive.
type Scanner struct {
	matchers []glob.Glob
	skipDirs map[string]bool
}

// NewScanner compiles the accepted extensions (without dot, e.g.
// "jpg") into matchers. Directories named in skipDirs are not
// descended into; the collection uses this to keep trashed images out
// of a reloaded collection.
func NewScanner(extensions []string, skipDirs ...string) (*Scanner, error) {
	matchers := make([]glob.Glob, 0, len(extensions))
	for _, ext := range extensions {
		pattern := "*." + strings.ToLower(strings.TrimPrefix(ext, "."))
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid extension pattern %q", pattern)
		}
		matchers = append(matchers, g)
	}
	skip := make(map[string]bool, len(skipDirs))
	for _, d := range skipDirs {
		skip[d] = true
	}
	return &Scanner{matchers: matchers, skipDirs: skip}, nil
}

// Match reports whether a file name has an accepted image extension.
func (s *Scanner) Match(name string) bool {
	lower := strings.ToLower(filepath.Base(name))
	for _, g := range s.matchers {
		if g.Match(lower) {
			return true
		}
	}
	return false
}

// Scan walks root recursively and returns one entry per accepted
// image, as absolute paths. Unreadable subtrees are skipped with a
// warning rather than aborting the scan.
func (s *Scanner) Scan(root string) ([]Entry, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.NewFileError("invalid scan root", root, errors.InvalidPath, err)
	}

	var (
		entries []Entry
		mu      sync.Mutex
	)

	conf := &fastwalk.Config{Follow: false}
	err = fastwalk.Walk(conf, absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			log.Warn("Skipping %s: %v", path, walkErr)
			return nil // Skip errors, continue walking
		}
		if d.IsDir() {
			if s.skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !s.Match(d.Name()) {
			return nil
		}

		mu.Lock()
		entries = append(entries, NewEntry(path))
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, errors.NewFileError("directory scan failed", absRoot, errors.ScanFailed, err)
	}

	return entries, nil
}

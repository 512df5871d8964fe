package spell

import (
	"bufio"
	_ "embed"
	"io"
	"os"
	"strings"

	"sidecap/internal/errors"
	"sidecap/internal/log"
)

//go:embed words_en_us.txt
var builtinWords string

// Dictionary answers case-insensitive word lookups for one locale.
// The word list is loaded once; lookups are pure functions of
// (locale, word).
type Dictionary struct {
	locale string
	words  map[string]bool
}

// LoadDictionary builds a dictionary for locale from a word list file
// (one word per line, # comments allowed). An empty path loads the
// builtin en_US list.
func LoadDictionary(locale, path string) (*Dictionary, error) {
	d := &Dictionary{
		locale: locale,
		words:  make(map[string]bool),
	}

	if path == "" {
		d.addWords(strings.NewReader(builtinWords))
		log.Debug("Loaded builtin %s dictionary (%d words)", locale, len(d.words))
		return d, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewFileError("failed to open dictionary", path, errors.DictionaryLoadFailed, err)
	}
	defer f.Close()

	d.addWords(f)
	log.Debug("Loaded %s dictionary from %s (%d words)", locale, path, len(d.words))
	return d, nil
}

func (d *Dictionary) addWords(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		d.words[strings.ToLower(word)] = true
	}
}

// Locale returns the dictionary's locale.
func (d *Dictionary) Locale() string {
	return d.locale
}

// Len returns the number of words in the dictionary.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// Check reports whether word is in the dictionary. Lookup is
// case-insensitive; a possessive "'s" suffix is stripped before a
// second lookup so "fox's" passes when "fox" does.
func (d *Dictionary) Check(word string) bool {
	lower := strings.ToLower(word)
	if d.words[lower] {
		return true
	}
	if base, ok := strings.CutSuffix(lower, "'s"); ok {
		return d.words[base]
	}
	return false
}

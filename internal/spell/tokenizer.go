package spell

import "unicode"

// Token is one word of a line with its starting column. Columns count
// runes, not bytes, so they line up with what an editor displays.
type Token struct {
	Word  string
	Start int
}

// Tokenize splits a single line of text into word tokens. A word is a
// run of letters, with apostrophes and hyphens allowed between
// letters ("it's", "well-known"). Digits, punctuation, and whitespace
// separate words.
func Tokenize(line string) []Token {
	var tokens []Token
	runes := []rune(line)

	i := 0
	for i < len(runes) {
		if !unicode.IsLetter(runes[i]) {
			i++
			continue
		}
		start := i
		for i < len(runes) {
			r := runes[i]
			if unicode.IsLetter(r) {
				i++
				continue
			}
			// Allow ' and - only between letters.
			if (r == '\'' || r == '-') && i+1 < len(runes) && unicode.IsLetter(runes[i+1]) {
				i += 2
				continue
			}
			break
		}
		tokens = append(tokens, Token{
			Word:  string(runes[start:i]),
			Start: start,
		})
	}

	return tokens
}

package spell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeSimpleLine(t *testing.T) {
	tokens := Tokenize("a red fox")

	assert.Equal(t, []Token{
		{Word: "a", Start: 0},
		{Word: "red", Start: 2},
		{Word: "fox", Start: 6},
	}, tokens)
}

func TestTokenizePunctuationAndDigits(t *testing.T) {
	tokens := Tokenize("two dogs, 3 cats!")

	assert.Equal(t, []Token{
		{Word: "two", Start: 0},
		{Word: "dogs", Start: 4},
		{Word: "cats", Start: 12},
	}, tokens)
}

func TestTokenizeApostropheAndHyphen(t *testing.T) {
	tokens := Tokenize("it's a well-known fact")

	assert.Equal(t, []Token{
		{Word: "it's", Start: 0},
		{Word: "a", Start: 5},
		{Word: "well-known", Start: 7},
		{Word: "fact", Start: 18},
	}, tokens)
}

func TestTokenizeTrailingApostrophe(t *testing.T) {
	// A quote after a word is not part of it.
	tokens := Tokenize("'quoted'")

	assert.Equal(t, []Token{{Word: "quoted", Start: 1}}, tokens)
}

func TestTokenizeColumnsAreRunes(t *testing.T) {
	// Multibyte runes count as one column each.
	tokens := Tokenize("héllo wörld")

	assert.Equal(t, []Token{
		{Word: "héllo", Start: 0},
		{Word: "wörld", Start: 6},
	}, tokens)
}

func TestTokenizeEmptyLine(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("   123 !?"))
}

// Package fields is a dictionary-free tokenizer.
// Latin words and numbers become whole tokens; runs of Han characters
// become overlapping character bigrams, which needs no word list and
// still lets multi-character terms such as 五行 match.
package fields

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/custodia-labs/ganzhi/internal/core/ports/driven"
)

// Ensure Tokenizer implements the interface.
var _ driven.Tokenizer = (*Tokenizer)(nil)

// Tokenizer splits text on anything that is not a letter or digit.
type Tokenizer struct{}

// New creates a new fields tokenizer.
func New() *Tokenizer {
	return &Tokenizer{}
}

// Segment returns the tokens of text in order of appearance.
func (t *Tokenizer) Segment(text string) []string {
	var tokens []string
	var word []rune
	var han []rune

	flushWord := func() {
		if len(word) > 0 {
			tokens = append(tokens, string(word))
			word = word[:0]
		}
	}
	flushHan := func() {
		tokens = append(tokens, bigrams(han)...)
		han = han[:0]
	}

	for _, r := range Normalize(text) {
		switch {
		case unicode.Is(unicode.Han, r):
			flushWord()
			han = append(han, r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			flushHan()
			word = append(word, r)
		default:
			flushWord()
			flushHan()
		}
	}
	flushWord()
	flushHan()

	return tokens
}

// Normalize folds full-width forms and compatibility characters and
// lowercases text, so "ＡＢＣ" and "abc" produce the same tokens.
func Normalize(text string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFKC, width.Fold), text)
	if err != nil {
		folded = text
	}
	return strings.ToLower(folded)
}

// bigrams returns overlapping pairs of runes. A single rune is its own token.
func bigrams(run []rune) []string {
	switch len(run) {
	case 0:
		return nil
	case 1:
		return []string{string(run)}
	}
	out := make([]string, 0, len(run)-1)
	for i := 0; i+1 < len(run); i++ {
		out = append(out, string(run[i:i+2]))
	}
	return out
}

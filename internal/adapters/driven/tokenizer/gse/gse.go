// Package gse segments Chinese text into dictionary words with the gse
// segmenter. The embedded dictionary is loaded on first use.
package gse

import (
	"strings"
	"sync"
	"unicode"

	segmenter "github.com/go-ego/gse"

	"github.com/custodia-labs/ganzhi/internal/adapters/driven/tokenizer/fields"
	"github.com/custodia-labs/ganzhi/internal/core/ports/driven"
	"github.com/custodia-labs/ganzhi/internal/logger"
)

// Ensure Tokenizer implements the interface.
var _ driven.Tokenizer = (*Tokenizer)(nil)

var log = logger.Component("gse")

// Tokenizer is a dictionary based Chinese word segmenter.
// If the dictionary cannot be loaded it degrades to the fields tokenizer.
type Tokenizer struct {
	once     sync.Once
	seg      segmenter.Segmenter
	fallback driven.Tokenizer
	loadErr  error

	// mu guards seg; the segmenter keeps per-call state.
	mu sync.Mutex
}

// New creates a tokenizer. The dictionary loads lazily on first Segment.
func New() *Tokenizer {
	return &Tokenizer{fallback: fields.New()}
}

// Load loads the dictionary now instead of on first use.
func (t *Tokenizer) Load() error {
	t.once.Do(func() {
		t.seg.SkipLog = true
		log.Debug("Loading embedded dictionary")
		if err := t.seg.LoadDictEmbed(); err != nil {
			t.loadErr = err
			log.Warn("Dictionary load failed, using fields tokenizer: %v", err)
			return
		}
		log.Debug("Dictionary loaded")
	})
	return t.loadErr
}

// Segment splits text into normalised words, dropping punctuation and
// whitespace tokens.
func (t *Tokenizer) Segment(text string) []string {
	if err := t.Load(); err != nil {
		return t.fallback.Segment(text)
	}

	t.mu.Lock()
	words := t.seg.Cut(fields.Normalize(text), true)
	t.mu.Unlock()

	tokens := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" || !hasWordRune(w) {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// hasWordRune reports whether w contains a letter or digit.
func hasWordRune(w string) bool {
	return strings.IndexFunc(w, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) >= 0
}

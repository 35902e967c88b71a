package driven

// Tokenizer segments text into words.
// The same tokenizer must be used for indexing and querying; any
// deterministic segmentation keeps ranking correct.
type Tokenizer interface {
	// Segment splits text into tokens. Order follows the text and
	// duplicates are kept. Whitespace-only tokens are never returned.
	Segment(text string) []string
}

// TokenizerFunc adapts a plain function to the Tokenizer interface.
type TokenizerFunc func(text string) []string

// Segment calls f(text).
func (f TokenizerFunc) Segment(text string) []string {
	return f(text)
}

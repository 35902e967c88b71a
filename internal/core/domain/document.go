package domain

// Document is a short reference text in the knowledge corpus.
type Document struct {
	// Content is the free text that is tokenised and indexed.
	Content string `json:"content" toml:"content" yaml:"content"`

	// Source labels where the text came from.
	Source string `json:"source" toml:"source" yaml:"source"`

	// Category groups documents by topic.
	Category string `json:"category" toml:"category" yaml:"category"`
}

// IndexedDocument is a document with the identifier assigned at insertion.
// Identifiers increase monotonically from 0 in insertion order.
type IndexedDocument struct {
	ID int `json:"id"`
	Document
}

// ScoredResult is a document matched by the relevance ranker.
type ScoredResult struct {
	Document IndexedDocument `json:"document"`

	// Score is the number of distinct query tokens present in the document.
	Score int `json:"score"`
}

// IndexStatus describes the currently loaded knowledge index.
type IndexStatus struct {
	// Loaded is false until a corpus has been indexed.
	Loaded bool `json:"loaded"`

	// Documents is the number of indexed documents.
	Documents int `json:"documents"`

	// Tokens is the number of distinct indexed tokens.
	Tokens int `json:"tokens"`

	// Source describes where the corpus was loaded from.
	Source string `json:"source,omitempty"`
}

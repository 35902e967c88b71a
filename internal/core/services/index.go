package services

import (
	"cmp"
	"slices"
	"strings"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
	"github.com/custodia-labs/ganzhi/internal/core/ports/driven"
)

// DocumentIndex is an inverted index over a static corpus.
// It records token presence, not frequency, and is never mutated after
// BuildIndex returns, so it may be shared across goroutines freely.
type DocumentIndex struct {
	documents []domain.IndexedDocument
	postings  map[string][]int
	tokenizer driven.Tokenizer
}

// BuildIndex indexes documents in order; the i-th document gets ID i.
// A nil tokenizer splits on whitespace.
func BuildIndex(docs []domain.Document, tokenizer driven.Tokenizer) *DocumentIndex {
	if tokenizer == nil {
		tokenizer = driven.TokenizerFunc(strings.Fields)
	}

	idx := &DocumentIndex{
		documents: make([]domain.IndexedDocument, 0, len(docs)),
		postings:  make(map[string][]int),
		tokenizer: tokenizer,
	}

	for _, doc := range docs {
		id := len(idx.documents)
		idx.documents = append(idx.documents, domain.IndexedDocument{ID: id, Document: doc})

		// Tokens are unique per document, so posting lists stay duplicate free.
		for _, token := range uniqueTokens(tokenizer, doc.Content) {
			idx.postings[token] = append(idx.postings[token], id)
		}
	}

	return idx
}

// Search scores documents by the number of distinct query tokens they
// contain and returns at most limit of them, highest score first.
// Equal scores keep ascending ID order. Documents sharing no token with
// the query are never returned.
func (idx *DocumentIndex) Search(query string, limit int) []domain.ScoredResult {
	results := []domain.ScoredResult{}
	if idx == nil || limit <= 0 {
		return results
	}

	scores := make(map[int]int)
	for _, token := range uniqueTokens(idx.tokenizer, query) {
		for _, id := range idx.postings[token] {
			scores[id]++
		}
	}

	ids := make([]int, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	slices.SortStableFunc(ids, func(a, b int) int {
		return cmp.Compare(scores[b], scores[a])
	})

	if len(ids) > limit {
		ids = ids[:limit]
	}

	for _, id := range ids {
		results = append(results, domain.ScoredResult{
			Document: idx.documents[id],
			Score:    scores[id],
		})
	}

	return results
}

// Len returns the number of indexed documents.
func (idx *DocumentIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.documents)
}

// TokenCount returns the number of distinct indexed tokens.
func (idx *DocumentIndex) TokenCount() int {
	if idx == nil {
		return 0
	}
	return len(idx.postings)
}

// Postings returns a copy of the posting list for token.
func (idx *DocumentIndex) Postings(token string) []int {
	if idx == nil {
		return nil
	}
	return slices.Clone(idx.postings[token])
}

// Document returns the document with the given ID.
func (idx *DocumentIndex) Document(id int) (domain.IndexedDocument, bool) {
	if idx == nil || id < 0 || id >= len(idx.documents) {
		return domain.IndexedDocument{}, false
	}
	return idx.documents[id], true
}

// Documents returns a copy of all documents in ID order.
func (idx *DocumentIndex) Documents() []domain.IndexedDocument {
	if idx == nil {
		return nil
	}
	return slices.Clone(idx.documents)
}

// uniqueTokens segments text and drops repeated and blank tokens,
// keeping first occurrence order.
func uniqueTokens(tokenizer driven.Tokenizer, text string) []string {
	tokens := tokenizer.Segment(text)
	seen := make(map[string]struct{}, len(tokens))
	unique := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.TrimSpace(token) == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		unique = append(unique, token)
	}
	return unique
}

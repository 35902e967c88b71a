package services

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
	"github.com/custodia-labs/ganzhi/internal/core/ports/driven"
	"github.com/custodia-labs/ganzhi/internal/core/ports/driving"
	"github.com/custodia-labs/ganzhi/internal/logger"
)

// Ensure KnowledgeService implements the interface.
var _ driving.KnowledgeService = (*KnowledgeService)(nil)

// KnowledgeLimit is the number of documents ComposeKnowledge includes.
const KnowledgeLimit = domain.DefaultKnowledgeLimit

// pillarMarkers follow each pillar label in the knowledge query.
var pillarMarkers = [4]string{"年柱", "月柱", "日柱", "时柱"}

// analysisTerms bias retrieval towards general analysis documents.
var analysisTerms = []string{"命理分析", "五行", "运势"}

// KnowledgeQuery builds the retrieval query for a pillar result,
// e.g. "己卯年柱 丙子月柱 戊午日柱 戊午时柱 命理分析 五行 运势".
func KnowledgeQuery(p domain.PillarResult) string {
	parts := make([]string, 0, len(pillarMarkers)+len(analysisTerms))
	for i, pillar := range p.Pillars() {
		parts = append(parts, pillar.String()+pillarMarkers[i])
	}
	parts = append(parts, analysisTerms...)
	return strings.Join(parts, " ")
}

// ComposeKnowledge returns the top KnowledgeLimit documents for the
// pillars formatted as blank-line separated blocks. It returns an empty
// string when no document matches.
func ComposeKnowledge(idx *DocumentIndex, p domain.PillarResult) string {
	return composeKnowledge(idx, p, KnowledgeLimit)
}

func composeKnowledge(idx *DocumentIndex, p domain.PillarResult, limit int) string {
	results := idx.Search(KnowledgeQuery(p), limit)
	blocks := make([]string, len(results))
	for i := range results {
		blocks[i] = FormatResult(results[i])
	}
	return strings.Join(blocks, "\n\n")
}

// FormatResult renders one ranked document as a knowledge block.
func FormatResult(r domain.ScoredResult) string {
	return fmt.Sprintf("来源：%s\n分类：%s\n相关度：%d\n内容：%s",
		r.Document.Source, r.Document.Category, r.Score, r.Document.Content)
}

// loadedIndex pairs an index with the corpus it was built from.
type loadedIndex struct {
	index  *DocumentIndex
	source string
}

// KnowledgeService owns the live knowledge index.
// Reload builds a fresh index and swaps it in atomically; readers always
// see a complete, immutable index.
type KnowledgeService struct {
	corpus       driven.CorpusStore
	tokenizer    driven.Tokenizer
	composeLimit int
	current      atomic.Pointer[loadedIndex]
}

// NewKnowledgeService creates a knowledge service. Call Reload before use.
func NewKnowledgeService(corpus driven.CorpusStore, tokenizer driven.Tokenizer) *KnowledgeService {
	return &KnowledgeService{
		corpus:       corpus,
		tokenizer:    tokenizer,
		composeLimit: KnowledgeLimit,
	}
}

// SetComposeLimit sets how many documents Compose includes.
// Non-positive values restore the default.
func (s *KnowledgeService) SetComposeLimit(limit int) {
	if limit <= 0 {
		limit = KnowledgeLimit
	}
	s.composeLimit = limit
}

// Reload rebuilds the index from the corpus store.
// On failure the previous index stays in place.
func (s *KnowledgeService) Reload(ctx context.Context) error {
	logger.Section("Knowledge Index")

	if s.corpus == nil {
		return fmt.Errorf("reload: %w", domain.ErrIndexUnavailable)
	}

	docs, err := s.corpus.Load(ctx)
	if err != nil {
		logger.Warn("Corpus load failed: %v", err)
		return fmt.Errorf("load corpus: %w", err)
	}

	idx := BuildIndex(docs, s.tokenizer)
	s.current.Store(&loadedIndex{index: idx, source: s.corpus.Describe()})

	logger.Info("Indexed %d documents (%d tokens) from %s", idx.Len(), idx.TokenCount(), s.corpus.Describe())
	return nil
}

// Search ranks documents against query. A non-positive limit uses
// domain.DefaultSearchLimit.
func (s *KnowledgeService) Search(_ context.Context, query string, limit int) ([]domain.ScoredResult, error) {
	idx, err := s.index()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}

	logger.Debug("Knowledge search: query=%q, limit=%d", query, limit)
	results := idx.Search(query, limit)
	logger.Debug("Knowledge search: %d results", len(results))
	return results, nil
}

// Compose builds the knowledge text for a pillar result.
func (s *KnowledgeService) Compose(_ context.Context, pillars domain.PillarResult) (string, error) {
	idx, err := s.index()
	if err != nil {
		return "", err
	}

	logger.Debug("Knowledge query: %q", KnowledgeQuery(pillars))
	return composeKnowledge(idx, pillars, s.composeLimit), nil
}

// Documents returns the indexed documents in ID order.
func (s *KnowledgeService) Documents(_ context.Context) ([]domain.IndexedDocument, error) {
	idx, err := s.index()
	if err != nil {
		return nil, err
	}
	return idx.Documents(), nil
}

// Status reports the loaded index size.
func (s *KnowledgeService) Status(_ context.Context) domain.IndexStatus {
	loaded := s.current.Load()
	if loaded == nil {
		return domain.IndexStatus{}
	}
	return domain.IndexStatus{
		Loaded:    true,
		Documents: loaded.index.Len(),
		Tokens:    loaded.index.TokenCount(),
		Source:    loaded.source,
	}
}

func (s *KnowledgeService) index() (*DocumentIndex, error) {
	loaded := s.current.Load()
	if loaded == nil {
		return nil, domain.ErrIndexUnavailable
	}
	return loaded.index, nil
}

package normalisers

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/custodia-labs/ganzhi/internal/adapters/driven/corpus/file"
	"github.com/custodia-labs/ganzhi/internal/core/domain"
	"github.com/custodia-labs/ganzhi/internal/core/ports/driven"
	"github.com/custodia-labs/ganzhi/internal/normalisers/markdown"
	"github.com/custodia-labs/ganzhi/internal/normalisers/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry maps file extensions to normalisers.
type Registry struct {
	byExt map[string]driven.Normaliser
}

// NewRegistry creates a registry holding normalisers.
func NewRegistry(normalisers ...driven.Normaliser) *Registry {
	r := &Registry{byExt: make(map[string]driven.Normaliser)}
	for _, n := range normalisers {
		r.Register(n)
	}
	return r
}

// Default returns a registry for corpus files, Markdown and plain text.
func Default() *Registry {
	return NewRegistry(CorpusFile{}, markdown.New(), plaintext.New())
}

// Register adds a normaliser for each of its extensions.
func (r *Registry) Register(n driven.Normaliser) {
	for _, ext := range n.Extensions() {
		r.byExt[strings.ToLower(ext)] = n
	}
}

// Normalise parses data with the normaliser for name's extension.
func (r *Registry) Normalise(name string, data []byte) ([]domain.Document, error) {
	ext := strings.ToLower(filepath.Ext(name))
	n, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %s)",
			domain.ErrUnsupportedFormat, filepath.Base(name), strings.Join(r.SupportedExtensions(), ", "))
	}
	return n.Normalise(name, data)
}

// SupportedExtensions returns the registered extensions in sorted order.
func (r *Registry) SupportedExtensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// CorpusFile normalises TOML and YAML corpus files, which already hold
// a list of documents.
type CorpusFile struct{}

// Extensions returns the corpus file extensions.
func (CorpusFile) Extensions() []string {
	return []string{".toml", ".yaml", ".yml"}
}

// Normalise decodes the document list.
func (CorpusFile) Normalise(name string, data []byte) ([]domain.Document, error) {
	return file.Decode(name, data)
}

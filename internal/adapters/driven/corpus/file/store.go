// Package file loads the knowledge corpus from a TOML or YAML file.
//
// Both formats hold a list of documents under a "documents" key:
//
//	[[documents]]
//	source = "五行理论"
//	category = "基础知识"
//	content = "..."
//
// When no path is configured the corpus embedded in the binary is used.
package file

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
	"github.com/custodia-labs/ganzhi/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.CorpusStore = (*Store)(nil)

//go:embed default.toml
var defaultCorpus []byte

// DefaultName describes the embedded corpus.
const DefaultName = "built-in corpus"

// corpusFile is the on-disk layout shared by both formats.
type corpusFile struct {
	Documents []domain.Document `toml:"documents" yaml:"documents"`
}

// Store reads documents from a corpus file on every Load.
type Store struct {
	path string
}

// NewStore creates a corpus store for path.
// An empty path loads the embedded default corpus.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads and decodes the corpus file.
func (s *Store) Load(ctx context.Context) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.path == "" {
		return Decode("default.toml", defaultCorpus)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return Decode(s.path, data)
}

// Describe returns the corpus file path.
func (s *Store) Describe() string {
	if s.path == "" {
		return DefaultName
	}
	return s.path
}

// Path returns the corpus file path, or "" for the embedded corpus.
func (s *Store) Path() string {
	return s.path
}

// DefaultDocuments returns the embedded corpus.
func DefaultDocuments() []domain.Document {
	docs, err := Decode("default.toml", defaultCorpus)
	if err != nil {
		panic(fmt.Sprintf("embedded corpus: %v", err))
	}
	return docs
}

// Decode parses corpus data, choosing the format from name's extension.
// Surrounding whitespace is trimmed from every field.
func Decode(name string, data []byte) ([]domain.Document, error) {
	var file corpusFile

	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("decode %s: %w", filepath.Base(name), err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode %s: %w", filepath.Base(name), err)
		}
	default:
		return nil, fmt.Errorf("%w: %q (want .toml, .yaml or .yml)", domain.ErrUnsupportedFormat, filepath.Base(name))
	}

	docs := make([]domain.Document, 0, len(file.Documents))
	for _, d := range file.Documents {
		docs = append(docs, domain.Document{
			Content:  strings.TrimSpace(d.Content),
			Source:   strings.TrimSpace(d.Source),
			Category: strings.TrimSpace(d.Category),
		})
	}
	return docs, nil
}

// Encode renders documents in the format implied by name's extension.
func Encode(name string, docs []domain.Document) ([]byte, error) {
	file := corpusFile{Documents: docs}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return toml.Marshal(file)
	case ".yaml", ".yml":
		return yaml.Marshal(file)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, filepath.Base(name))
	}
}

// Package plaintext normalises plain text files into corpus documents.
package plaintext

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
	"github.com/custodia-labs/ganzhi/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text files. Each blank-line separated
// paragraph becomes one document named after the file.
type Normaliser struct{}

// New creates a new plaintext normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the file extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".txt", ".text"}
}

var paragraphBreak = regexp.MustCompile(`\n[ \t]*\n`)

// Normalise splits text into paragraph documents.
func (n *Normaliser) Normalise(name string, data []byte) ([]domain.Document, error) {
	if data == nil {
		return nil, domain.ErrInvalidInput
	}

	title := extractTitle(name)
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	var docs []domain.Document
	for _, para := range paragraphBreak.Split(text, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		docs = append(docs, domain.Document{Content: para, Source: title})
	}
	return docs, nil
}

// extractTitle extracts a human-readable title from a file name.
func extractTitle(name string) string {
	// Get filename from path
	filename := filepath.Base(name)

	// Remove common extensions for cleaner title
	filename = strings.TrimSuffix(filename, filepath.Ext(filename))

	// Replace underscores and dashes with spaces
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")

	return filename
}

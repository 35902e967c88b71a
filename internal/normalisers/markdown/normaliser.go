// Package markdown normalises Markdown notes into corpus documents.
package markdown

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
	"github.com/custodia-labs/ganzhi/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Markdown documents.
//
// A note becomes one document per second-level section: the "## " heading
// is the document source and the note title (first "# " heading, or the
// file name) is its category. A note without sections becomes a single
// document named after its title.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the file extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".md", ".markdown"}
}

// Normalise splits a Markdown note into documents with plain text content.
func (n *Normaliser) Normalise(name string, data []byte) ([]domain.Document, error) {
	if data == nil {
		return nil, domain.ErrInvalidInput
	}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	title := extractMarkdownTitle(content, name)

	var docs []domain.Document
	add := func(source, category, body string) {
		text := stripMarkdown(body)
		if text == "" {
			return
		}
		docs = append(docs, domain.Document{Content: text, Source: source, Category: category})
	}

	sections := splitSections(content)
	if len(sections) == 0 {
		add(title, "", dropTitle(content))
		return docs, nil
	}

	// Text before the first section introduces the note.
	add(title, title, dropTitle(content[:sections[0].start]))
	for _, s := range sections {
		add(s.heading, title, content[s.bodyStart:s.end])
	}
	return docs, nil
}

// section locates one "## " section inside a note.
type section struct {
	heading   string
	start     int
	bodyStart int
	end       int
}

var sectionHeading = regexp.MustCompile(`(?m)^##[ \t]+(.+?)[ \t#]*$`)

func splitSections(content string) []section {
	matches := sectionHeading.FindAllStringSubmatchIndex(content, -1)
	sections := make([]section, len(matches))
	for i, m := range matches {
		end := len(content)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		sections[i] = section{
			heading:   strings.TrimSpace(content[m[2]:m[3]]),
			start:     m[0],
			bodyStart: m[1],
			end:       end,
		}
	}
	return sections
}

var titleHeading = regexp.MustCompile(`(?m)^#[ \t]+.*$`)

// dropTitle removes the first-level heading lines.
func dropTitle(content string) string {
	return titleHeading.ReplaceAllString(content, "")
}

// extractMarkdownTitle extracts a title from the markdown content or falls back to filename.
func extractMarkdownTitle(content, name string) string {
	// Try to find first H1 heading (# Title)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}

	// Fall back to filename
	filename := filepath.Base(name)
	filename = strings.TrimSuffix(filename, filepath.Ext(filename))
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}

var (
	codeBlock    = regexp.MustCompile("(?s)```.*?```")
	inlineCode   = regexp.MustCompile("`([^`]+)`")
	images       = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	links        = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headings     = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blockquote   = regexp.MustCompile(`(?m)^>\s*`)
	hr           = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	listMarkers  = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	emphasis     = regexp.MustCompile(`(\*\*|__|\*)`)
	multiNewline = regexp.MustCompile(`\n{3,}`)
)

// stripMarkdown removes common markdown formatting for plain text content.
// Numbered list markers are kept; knowledge notes often rely on them.
func stripMarkdown(content string) string {
	content = codeBlock.ReplaceAllString(content, "")
	content = inlineCode.ReplaceAllString(content, "$1")
	content = images.ReplaceAllString(content, "")
	content = links.ReplaceAllString(content, "$1")
	content = headings.ReplaceAllString(content, "")
	content = blockquote.ReplaceAllString(content, "")
	content = hr.ReplaceAllString(content, "")
	content = listMarkers.ReplaceAllString(content, "")
	content = emphasis.ReplaceAllString(content, "")
	content = multiNewline.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}

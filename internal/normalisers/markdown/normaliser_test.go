package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
)

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestExtensions(t *testing.T) {
	assert.Equal(t, []string{".md", ".markdown"}, New().Extensions())
}

func TestNormalise_Sections(t *testing.T) {
	note := `# 十神

十神以日干为我。

## 正印

生我者为印，阴阳相异为**正印**。

## 食神

我生者为食伤。
- 阴阳相同为食神
- 主才华
`

	docs, err := New().Normalise("notes/shishen.md", []byte(note))

	require.NoError(t, err)
	assert.Equal(t, []domain.Document{
		{Content: "十神以日干为我。", Source: "十神", Category: "十神"},
		{Content: "生我者为印，阴阳相异为正印。", Source: "正印", Category: "十神"},
		{Content: "我生者为食伤。\n阴阳相同为食神\n主才华", Source: "食神", Category: "十神"},
	}, docs)
}

func TestNormalise_NoSections(t *testing.T) {
	docs, err := New().Normalise("/path/to/five-elements.md", []byte("金生水，水生木。\n\n> 木生火。"))

	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "five elements", docs[0].Source, "title falls back to the file name")
	assert.Empty(t, docs[0].Category)
	assert.Equal(t, "金生水，水生木。\n\n木生火。", docs[0].Content)
}

func TestNormalise_SkipsEmptySections(t *testing.T) {
	docs, err := New().Normalise("a.md", []byte("# Title\n\n## Empty\n\n## Full\n\ntext\n"))

	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Full", docs[0].Source)
	assert.Equal(t, "text", docs[0].Content)
}

func TestNormalise_WindowsLineEndings(t *testing.T) {
	docs, err := New().Normalise("a.md", []byte("# T\r\n\r\n## S\r\n\r\nbody\r\n"))

	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "S", docs[0].Source)
	assert.Equal(t, "body", docs[0].Content)
}

func TestNormalise_NilData(t *testing.T) {
	_, err := New().Normalise("a.md", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExtractMarkdownTitle(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		file     string
		expected string
	}{
		{name: "H1 heading", content: "# My Title\n\nBody", file: "x.md", expected: "My Title"},
		{name: "H2 is not a title", content: "## Section\n\nBody", file: "my_notes.md", expected: "my notes"},
		{name: "indented heading", content: "  # Spaced  ", file: "x.md", expected: "Spaced"},
		{name: "no heading", content: "Just text", file: "/a/b/day-master.md", expected: "day master"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractMarkdownTitle(tt.content, tt.file))
		})
	}
}

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "code block", input: "before\n```\ncode\n```\nafter", expected: "before\n\nafter"},
		{name: "inline code keeps text", input: "use `甲子` here", expected: "use 甲子 here"},
		{name: "link keeps text", input: "see [五行](https://example.com)", expected: "see 五行"},
		{name: "image removed", input: "![chart](chart.png)text", expected: "text"},
		{name: "emphasis", input: "**bold** and *italic*", expected: "bold and italic"},
		{name: "numbered list kept", input: "1. 日主强弱\n2. 喜忌判断", expected: "1. 日主强弱\n2. 喜忌判断"},
		{name: "horizontal rule", input: "a\n---\nb", expected: "a\n\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripMarkdown(tt.input))
		})
	}
}

package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
)

func TestConfigStore(t *testing.T) {
	s := NewConfigStore(map[string]any{"corpus.path": "/srv/corpus.toml"})

	assert.Equal(t, "/srv/corpus.toml", s.GetString("corpus.path"))
	assert.Equal(t, ":memory:", s.Path())
	assert.NoError(t, s.Load())

	require.NoError(t, s.Set("knowledge.limit", int64(7)))
	require.NoError(t, s.Set("location.longitude", 87.6))
	require.NoError(t, s.Set("corpus.watch", true))

	assert.Equal(t, 7, s.GetInt("knowledge.limit"))
	assert.InDelta(t, 7.0, s.GetFloat("knowledge.limit"), 1e-9)
	assert.InDelta(t, 87.6, s.GetFloat("location.longitude"), 1e-9)
	assert.True(t, s.GetBool("corpus.watch"))

	_, ok := s.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, s.GetString("missing"))
	assert.Zero(t, s.GetInt("corpus.path"))
	assert.Zero(t, s.GetFloat("corpus.path"))
	assert.False(t, s.GetBool("corpus.path"))
}

func TestConfigStore_SeedIsCopied(t *testing.T) {
	seed := map[string]any{"mcp.port": 9000}
	s := NewConfigStore(seed)
	seed["mcp.port"] = 1

	assert.Equal(t, 9000, s.GetInt("mcp.port"))
}

func TestCorpusStore(t *testing.T) {
	ctx := context.Background()
	s := NewCorpusStore(domain.Document{Content: "甲木"})

	require.NoError(t, s.Append(ctx, []domain.Document{{Content: "乙木"}, {Content: "丙火"}}))
	docs, err := s.Load(ctx)

	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "甲木", docs[0].Content)
	assert.Equal(t, "丙火", docs[2].Content)
	assert.Equal(t, "memory", s.Describe())

	docs[0].Content = "changed"
	again, _ := s.Load(ctx)
	assert.Equal(t, "甲木", again[0].Content)
}

func TestCorpusStore_Remove(t *testing.T) {
	ctx := context.Background()
	s := NewCorpusStore(domain.Document{Content: "甲木"}, domain.Document{Content: "乙木"}, domain.Document{Content: "丙火"})

	require.NoError(t, s.Remove(ctx, 1))

	docs, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "丙火", docs[1].Content)

	assert.ErrorIs(t, s.Remove(ctx, 2), domain.ErrNotFound)
	assert.ErrorIs(t, s.Remove(ctx, -1), domain.ErrNotFound)
}

package fs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/kbharvest"
	"github.com/fwojciec/kbharvest/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Knowledge Base Output
// Harvested items are written as one JSON document, replaced atomically.

func TestKnowledgeBaseStore_CommitWritesDocument(t *testing.T) {
	t.Parallel()

	// Given a store with a book chapter and a blog post
	path := filepath.Join(t.TempDir(), "aline_knowledgebase_output.json")
	store := fs.NewKnowledgeBaseStore(path, "aline123")
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, kbharvest.NewItem("Chapter 1: Intro", "Text", kbharvest.ContentTypeBook, "book.pdf", "")))
	require.NoError(t, store.Save(ctx, kbharvest.NewItem("Heaps", "## Heaps", kbharvest.ContentTypeBlog, "https://nilmamano.com/blog/heaps", "Nil Mamano")))

	// When I commit
	require.NoError(t, store.Commit())

	// Then the document holds the team and the items in save order
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var kb kbharvest.KnowledgeBase
	require.NoError(t, json.Unmarshal(data, &kb))
	assert.Equal(t, "aline123", kb.TeamID)
	require.Len(t, kb.Items, 2)
	assert.Equal(t, "Chapter 1: Intro", kb.Items[0].Title)
	assert.Equal(t, "Nil Mamano", kb.Items[1].Author)

	// And the temp file is gone
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestKnowledgeBaseStore_CommitWithoutItems(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "kb.json")
	store := fs.NewKnowledgeBaseStore(path, "aline123")

	require.NoError(t, store.Commit())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"team_id\": \"aline123\",\n  \"items\": []\n}", string(data))
}

func TestKnowledgeBaseStore_CommitReplacesExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "kb.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	store := fs.NewKnowledgeBaseStore(path, "team")
	require.NoError(t, store.Save(context.Background(), kbharvest.NewItem("T", "C", kbharvest.ContentTypeBlog, "https://quill.co/blog/t", "")))
	require.NoError(t, store.Commit())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"source_url": "https://quill.co/blog/t"`)
}

func TestKnowledgeBaseStore_AbortKeepsExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "kb.json")
	require.NoError(t, os.WriteFile(path, []byte("previous run"), 0o644))

	store := fs.NewKnowledgeBaseStore(path, "team")
	require.NoError(t, store.Save(context.Background(), kbharvest.NewItem("T", "C", kbharvest.ContentTypeBlog, "https://quill.co/blog/t", "")))
	require.NoError(t, store.Abort())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous run", string(data))
}

func TestKnowledgeBaseStore_SaveRejectsInvalidItem(t *testing.T) {
	t.Parallel()

	store := fs.NewKnowledgeBaseStore(filepath.Join(t.TempDir(), "kb.json"), "team")

	err := store.Save(context.Background(), &kbharvest.Item{Title: "T", ContentType: kbharvest.ContentTypeBlog})

	assert.Equal(t, kbharvest.EINVALID, kbharvest.ErrorCode(err))
}

func TestMarshalKnowledgeBase(t *testing.T) {
	t.Parallel()

	t.Run("writes non-ASCII and HTML characters literally", func(t *testing.T) {
		t.Parallel()

		kb := &kbharvest.KnowledgeBase{
			TeamID: "aline123",
			Items: []*kbharvest.Item{
				kbharvest.NewItem("Café <3", "a & b > c", kbharvest.ContentTypeBlog, "https://quill.co/blog/café", ""),
			},
		}

		data, err := fs.MarshalKnowledgeBase(kb)

		require.NoError(t, err)
		assert.Contains(t, string(data), `"title": "Café <3"`)
		assert.Contains(t, string(data), `"content": "a & b > c"`)
	})

	t.Run("indents with two spaces and keeps field order", func(t *testing.T) {
		t.Parallel()

		kb := &kbharvest.KnowledgeBase{
			TeamID: "t",
			Items:  []*kbharvest.Item{kbharvest.NewItem("T", "C", kbharvest.ContentTypeBook, "b.pdf", "")},
		}

		data, err := fs.MarshalKnowledgeBase(kb)

		require.NoError(t, err)
		assert.Equal(t, `{
  "team_id": "t",
  "items": [
    {
      "title": "T",
      "content": "C",
      "content_type": "book",
      "source_url": "b.pdf",
      "author": "",
      "user_id": ""
    }
  ]
}`, string(data))
	})

	t.Run("writes nil items as an empty array", func(t *testing.T) {
		t.Parallel()

		data, err := fs.MarshalKnowledgeBase(&kbharvest.KnowledgeBase{TeamID: "t"})

		require.NoError(t, err)
		assert.Contains(t, string(data), `"items": []`)
	})
}

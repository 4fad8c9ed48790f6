package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/kbharvest"
	main "github.com/fwojciec/kbharvest/cmd/kbharvest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "kbharvest")
	assert.Contains(t, stdout.String(), "--max-chapters")
	assert.Contains(t, stdout.String(), "--render-js")
}

func TestMain_Run_UnreadableBook(t *testing.T) {
	t.Parallel()

	// Given: a book that does not exist and no blogs
	dir := t.TempDir()
	output := filepath.Join(dir, "kb.json")
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	// When
	err := m.Run(context.Background(), []string{
		"--book", filepath.Join(dir, "missing.pdf"),
		"--no-blogs",
		"--output", output,
		"--log-file", filepath.Join(dir, "kbharvest.log"),
	}, &stdout, &stderr)

	// Then: the run succeeds with an empty knowledge base
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), " Done! Extracted 0 items.")
	assert.Contains(t, stderr.String(), "warning: book")
	assert.Contains(t, stderr.String(), "missing.pdf")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"team_id": "aline123"`)
	assert.Contains(t, string(data), `"items": []`)

	logData, err := os.ReadFile(filepath.Join(dir, "kbharvest.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logData), `msg="open book"`)
}

func TestMain_Run_Mirrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{
		"--no-book", "--no-blogs",
		"--team-id", "team42",
		"--output", filepath.Join(dir, "kb.json"),
		"--db", filepath.Join(dir, "kb.db"),
		"--markdown-dir", filepath.Join(dir, "md"),
		"--log-file", "-",
	}, &stdout, &stderr)

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "kb.json"))
	assert.FileExists(t, filepath.Join(dir, "kb.db"))
	assert.DirExists(t, filepath.Join(dir, "md", "team42"))
}

func TestMain_Run_PreviewWritesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	output := filepath.Join(dir, "kb.json")
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{
		"--preview", "--no-book", "--no-blogs",
		"--output", output,
		"--log-file", "-",
	}, &stdout, &stderr)

	require.NoError(t, err)
	assert.NoFileExists(t, output)
	assert.NotContains(t, stdout.String(), "Done!")
}

func TestMain_Run_InvalidFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown markdown mode", args: []string{"--markdown", "html"}},
		{name: "unknown fallback", args: []string{"--fallback", "llm"}},
		{name: "unknown log level", args: []string{"--log-level", "trace"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := main.NewMain()
			var stdout, stderr bytes.Buffer

			err := m.Run(context.Background(), tt.args, &stdout, &stderr)

			assert.Error(t, err)
		})
	}
}

func TestMain_Run_InvalidSourcesFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sources := filepath.Join(dir, "sources.yaml")
	require.NoError(t, os.WriteFile(sources, []byte("blogs: []\n"), 0o644))
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{
		"--no-book",
		"--sources", sources,
		"--output", filepath.Join(dir, "kb.json"),
		"--log-file", "-",
	}, &stdout, &stderr)

	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "kb.json"))
}

func TestMain_Run_MaxChapters(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"0", "-1"} {
		t.Run("rejects "+value, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			output := filepath.Join(dir, "kb.json")
			m := main.NewMain()
			var stdout, stderr bytes.Buffer

			err := m.Run(context.Background(), []string{
				"--max-chapters=" + value,
				"--no-blogs",
				"--output", output,
				"--log-file", "-",
			}, &stdout, &stderr)

			require.Error(t, err)
			assert.Equal(t, kbharvest.EINVALID, kbharvest.ErrorCode(err))
			assert.Contains(t, kbharvest.ErrorMessage(err), "--max-chapters must be at least 1")
			assert.NoFileExists(t, output)
		})
	}

	t.Run("accepts a cap of one", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		m := main.NewMain()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{
			"--max-chapters=1",
			"--book", filepath.Join(dir, "missing.pdf"),
			"--no-blogs",
			"--output", filepath.Join(dir, "kb.json"),
			"--log-file", "-",
		}, &stdout, &stderr)

		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "kb.json"))
	})
}

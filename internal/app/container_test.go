package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) (string, string) {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	t.Setenv("HOME", dir)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return dir, path
}

func TestBuildContainerCreatesWorkspaceAndSkipsKeylessBackends(t *testing.T) {
	dir, path := writeConfig(t, `
workspace:
  dir: ~/ws
models:
  - name: gpt
    provider: openai
  - name: local
    provider: http
    endpoint: http://127.0.0.1:1/v1/chat/completions
`)
	c, err := BuildContainer(context.Background(), Options{ConfigPath: path, LogOutput: io.Discard})
	require.NoError(t, err)
	defer c.Close()

	assert.DirExists(t, filepath.Join(dir, "ws"))
	assert.Equal(t, []string{"local"}, c.Backends)
	assert.Equal(t, filepath.Join(dir, "ws", ".jarvis_history.json"), c.HistoryStore.Path())

	res := c.Core.Turn(context.Background(), "help")
	assert.True(t, res.Success)
}

func TestBuildContainerSQLiteHistory(t *testing.T) {
	dir, path := writeConfig(t, "workspace:\n  dir: ~/ws\nhistory:\n  backend: sqlite\n")
	c, err := BuildContainer(context.Background(), Options{ConfigPath: path, LogOutput: io.Discard})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ws", ".jarvis_history.db"), c.HistoryStore.Path())
	assert.Empty(t, c.Backends)
	require.NoError(t, c.Close())
}

func TestBuildContainerRejectsUnknownBackend(t *testing.T) {
	_, path := writeConfig(t, "classifier:\n  backends: [missing]\n")
	_, err := BuildContainer(context.Background(), Options{ConfigPath: path, LogOutput: io.Discard})
	assert.Error(t, err)
}

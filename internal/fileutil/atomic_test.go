package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "stats.json")

	require.NoError(t, WriteFileAtomic(path, []byte("first"), 0o644))
	require.NoError(t, WriteFileAtomic(path, []byte("second"), 0o600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files are renamed away")
	assert.Equal(t, "stats.json", entries[0].Name())
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	t.Parallel()

	err := WriteFileAtomic(filepath.Join(t.TempDir(), "missing", "stats.json"), []byte("x"), 0o644)
	assert.Error(t, err)
}

func TestWriteJSONAtomic(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.json")
	in := map[string]int{"games": 10, "stalled": 1}
	require.NoError(t, WriteJSONAtomic(path, in, 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var out map[string]int
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)

	err = WriteJSONAtomic(path, func() {}, 0o644)
	assert.Error(t, err)
}

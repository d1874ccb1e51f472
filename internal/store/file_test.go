package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/projector/internal/projector"
)

func TestFileStore_LoadMissingFile(t *testing.T) {
	logger, logs := captureLogger(t)
	path := filepath.Join(t.TempDir(), "projector.json")
	s := NewFileStore(path, WithLogger(logger))

	data := s.Load(context.Background())

	assert.Equal(t, 0, data.Len())
	require.NotNil(t, data.Projector)
	assert.Contains(t, logs.String(), "not found")
	assert.NotContains(t, logs.String(), "level=WARN")

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "Load must not create the file")
}

func TestFileStore_LoadCorruptFile(t *testing.T) {
	logger, logs := captureLogger(t)
	path := filepath.Join(t.TempDir(), "projector.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"projector:": {}`), 0o644))

	data := NewFileStore(path, WithLogger(logger)).Load(context.Background())

	assert.Equal(t, 0, data.Len())
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "corrupt")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"projector:": {}`, string(raw), "Load must not rewrite a corrupt file")
}

func TestFileStore_LoadUnreadable(t *testing.T) {
	logger, logs := captureLogger(t)
	// A directory cannot be read as a file.
	path := t.TempDir()

	data := NewFileStore(path, WithLogger(logger)).Load(context.Background())

	assert.Equal(t, 0, data.Len())
	assert.Contains(t, logs.String(), "unreadable")
}

func TestFileStore_SaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projector.json")
	s := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testData()))

	assert.Equal(t, testData(), s.Load(ctx))
}

func TestFileStore_SaveFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projector.json")
	require.NoError(t, NewFileStore(path).Save(context.Background(), testData()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"projector":{"/":{"foo":"bar1","fem":"is great"},"/foo":{"foo":"baz","bar":"baz"},"/foo/bar":{"foo":"bar3"}}}`,
		string(raw))
}

func TestFileStore_SaveOverwritesWholesale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projector.json")
	s := NewFileStore(path)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, testData()))

	smaller := projector.NewData()
	smaller.Projector["/only"] = projector.KeyValueMap{"k": "v"}
	require.NoError(t, s.Save(ctx, smaller))

	assert.Equal(t, smaller, s.Load(ctx))
}

func TestFileStore_SaveReplacesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projector.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))
	s := NewFileStore(path)
	ctx := context.Background()

	data := s.Load(ctx)
	proj := projector.New(data, "/foo")
	proj.SetValue("k", "v")
	require.NoError(t, s.Save(ctx, proj.Data()))

	assert.Equal(t, proj.Data(), s.Load(ctx))
}

func TestFileStore_SaveCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "projector.json")

	require.NoError(t, NewFileStore(path).Save(context.Background(), testData()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestFileStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projector.json")

	require.NoError(t, NewFileStore(path).Save(context.Background(), testData()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "projector.json", entries[0].Name())
}

func TestFileStore_SavePreservesMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projector.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"projector":{}}`), 0o600))
	require.NoError(t, os.Chmod(path, 0o600))

	require.NoError(t, NewFileStore(path).Save(context.Background(), testData()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_SaveNewFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projector.json")

	require.NoError(t, NewFileStore(path).Save(context.Background(), testData()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestFileStore_SaveFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := NewFileStore(filepath.Join(blocker, "projector.json")).Save(context.Background(), testData())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "save store")
}

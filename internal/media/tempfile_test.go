package media

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTempStoreSweep(t *testing.T) {
	dir := t.TempDir()
	store := TempStore{Dir: dir}

	stale := filepath.Join(dir, "stale.mp4")
	fresh := filepath.Join(dir, "fresh.png")
	require.NoError(t, os.WriteFile(stale, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(fresh, []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	removed, err := store.Sweep(time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh)
	assert.DirExists(t, filepath.Join(dir, "nested"))
}

func TestTempStoreSweepMissingDir(t *testing.T) {
	removed, err := TempStore{Dir: filepath.Join(t.TempDir(), "absent")}.Sweep(time.Now())
	assert.NoError(t, err)
	assert.Zero(t, removed)
}

func TestTempStoreCleanupIgnoresEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	TempStore{}.Cleanup("", path)
	assert.NoFileExists(t, path)
}

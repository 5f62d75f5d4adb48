package migrations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	require.Equal(t, "001", Version("001_create_records.sql"))
	require.Equal(t, "002", Version("/tmp/migrations/002_index.sql"))
	require.Equal(t, "plain.sql", Version("plain.sql"))
}

func TestSQLFilesSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_b.sql", "001_a.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "003_dir.sql"), 0o755))

	files, err := SQLFiles(dir)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "001_a.sql"),
		filepath.Join(dir, "002_b.sql"),
	}, files)
}

func TestSQLFilesMissingDirectory(t *testing.T) {
	_, err := SQLFiles(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

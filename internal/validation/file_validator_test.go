package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInputDirectory(t *testing.T) {
	v := NewFileValidator(nil)

	t.Run("existing directory", func(t *testing.T) {
		assert.NoError(t, v.ValidateInputDirectory(t.TempDir(), "*.xlsx"))
	})

	t.Run("missing directory", func(t *testing.T) {
		err := v.ValidateInputDirectory(filepath.Join(t.TempDir(), "absent"), "")
		assert.Error(t, err)
	})

	t.Run("path is a file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "file.txt")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
		assert.Error(t, v.ValidateInputDirectory(path, ""))
	})
}

func TestValidateOutputDirectory(t *testing.T) {
	v := NewFileValidator(nil)

	dir := filepath.Join(t.TempDir(), "out", "nested")
	require.NoError(t, v.ValidateOutputDirectory(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// The writability probe must not leave files behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestValidateWorkbookFile(t *testing.T) {
	v := NewFileValidator(nil)
	dir := t.TempDir()

	xlsx := filepath.Join(dir, "ledger.xlsx")
	require.NoError(t, os.WriteFile(xlsx, []byte("x"), 0644))

	upper := filepath.Join(dir, "ledger2.XLSX")
	require.NoError(t, os.WriteFile(upper, []byte("x"), 0644))

	csv := filepath.Join(dir, "ledger.csv")
	require.NoError(t, os.WriteFile(csv, []byte("x"), 0644))

	assert.NoError(t, v.ValidateWorkbookFile(xlsx))
	assert.NoError(t, v.ValidateWorkbookFile(upper))
	assert.Error(t, v.ValidateWorkbookFile(csv))
	assert.Error(t, v.ValidateWorkbookFile(dir))
	assert.Error(t, v.ValidateWorkbookFile(filepath.Join(dir, "absent.xlsx")))
}

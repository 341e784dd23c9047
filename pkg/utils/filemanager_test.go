package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestGenerateOutputFileName(t *testing.T) {
	name := GenerateOutputFileName("{original}_{timestamp}", ".log", map[string]string{"original": "site"})
	assert.Regexp(t, regexp.MustCompile(`^site_\d{8}_\d{6}\.log$`), name)

	name = GenerateOutputFileName("{uuid}", ".xlsx", nil)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f-]{36}\.xlsx$`), name)

	assert.Equal(t, "run-42.log", GenerateOutputFileName("run-{uuid}.log", ".log", map[string]string{"uuid": "42"}))
	assert.Equal(t, "plain", GenerateOutputFileName("plain", "", nil))
}

func TestFileManager_OutputPath(t *testing.T) {
	fm := NewFileManager("out", "{original}-{uuid}")
	assert.Equal(t, filepath.Join("out", "site-abc.log"),
		fm.OutputPath(filepath.Join("data", "site.ags"), ".log", map[string]string{"uuid": "abc"}))

	fm = NewFileManager("", "{original}")
	assert.Equal(t, filepath.Join("data", "site"), fm.OutputPath(filepath.Join("data", "site.ags"), "", nil))
}

func TestFileManager_EnsureOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, NewFileManager(dir, "").EnsureOutputDir())
	assert.True(t, FileExists(dir))
	assert.False(t, IsRegularFile(dir))
}

func TestDiscoverInputFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.ags"))
	touch(t, filepath.Join(dir, "a.AGS"))
	touch(t, filepath.Join(dir, "notes.txt"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.ags"), 0o755))

	single := filepath.Join(dir, "notes.txt")
	files, err := DiscoverInputFiles([]string{single, dir}, DefaultExtension)
	require.NoError(t, err)
	assert.Equal(t, []string{single, filepath.Join(dir, "a.AGS"), filepath.Join(dir, "b.ags")}, files)

	_, err = DiscoverInputFiles([]string{filepath.Join(dir, "missing.ags")}, DefaultExtension)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.ags")
	assert.False(t, FileExists(path))
	touch(t, path)
	assert.True(t, FileExists(path))
	assert.True(t, IsRegularFile(path))
}

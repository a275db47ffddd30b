package util

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/sdlppx/errors"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("writes and creates parent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "out.tmx")

		err := WriteFileAtomic(path, 0644, func(w io.Writer) error {
			_, err := io.WriteString(w, "<tmx/>")
			return err
		})
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<tmx/>", string(data))
		assertOnlyFile(t, filepath.Dir(path), "out.tmx")
	})

	t.Run("failure leaves nothing behind", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "glossary.txt")

		err := WriteFileAtomic(path, 0644, func(w io.Writer) error {
			io.WriteString(w, "partial")
			return errors.New("render failed")
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "render failed")

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("replaces existing file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.csv")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

		require.NoError(t, WriteFileAtomic(path, 0644, func(w io.Writer) error {
			_, err := io.WriteString(w, "new")
			return err
		}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
		assertOnlyFile(t, dir, "out.csv")
	})
}

func TestSafeFileName(t *testing.T) {
	assert.Equal(t, "Client_EN_DE", SafeFileName("Client/EN\\DE"))
	assert.Equal(t, "C__memories", SafeFileName("C:/memories"))
	assert.Equal(t, "plain", SafeFileName("plain"))
}

func TestTrimExt(t *testing.T) {
	assert.Equal(t, "Project", TrimExt("/tmp/in/Project.sdlppx"))
	assert.Equal(t, "archive.v2", TrimExt("archive.v2.sdlrpx"))
	assert.Equal(t, "noext", TrimExt("noext"))
}

func assertOnlyFile(t *testing.T, dir, name string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, name, entries[0].Name())
}

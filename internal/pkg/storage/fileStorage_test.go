package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndGet(t *testing.T) {
	s := NewFileStorage(t.TempDir())

	require.NoError(t, s.Save("a/b/c.txt", strings.NewReader("hello")))
	assert.True(t, s.Exists("a/b/c.txt"))

	r, err := s.Get("a/b/c.txt")
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestSaveFuncFailureLeavesNothing(t *testing.T) {
	base := t.TempDir()
	s := NewFileStorage(base)
	boom := errors.New("boom")

	err := s.SaveFunc("out/img.jpg", func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.False(t, s.Exists("out/img.jpg"))
	entries, err := os.ReadDir(filepath.Join(base, "out"))
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary file must be cleaned up")
}

func TestSaveFuncReplacesExisting(t *testing.T) {
	s := NewFileStorage(t.TempDir())
	require.NoError(t, s.Save("f.txt", strings.NewReader("old")))

	require.NoError(t, s.SaveFunc("f.txt", func(w io.Writer) error {
		_, err := io.WriteString(w, "new")
		return err
	}))

	data, err := os.ReadFile(s.Path("f.txt"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestListDirsAndFiles(t *testing.T) {
	base := t.TempDir()
	s := NewFileStorage(base)
	require.NoError(t, os.MkdirAll(filepath.Join(base, "root", "b"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(base, "root", "a"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "root", "z.png"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(base, "root", "y.jpg"), []byte("x"), 0644))

	dirs, err := s.ListDirs("root")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, dirs)

	files, err := s.ListFiles("root")
	require.NoError(t, err)
	assert.Equal(t, []string{"y.jpg", "z.png"}, files)

	_, err = s.ListDirs("missing")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDelete(t *testing.T) {
	s := NewFileStorage(t.TempDir())
	require.NoError(t, s.Save("d/x.txt", strings.NewReader("x")))

	require.NoError(t, s.Delete("d"))
	assert.False(t, s.Exists("d/x.txt"))
}

package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
)

type FileStorage interface {
	Save(path string, data io.Reader) error
	SaveFunc(path string, write func(w io.Writer) error) error
	Get(path string) (io.ReadCloser, error)
	Delete(path string) error
	Exists(path string) bool
	ListDirs(path string) ([]string, error)
	ListFiles(path string) ([]string, error)
	Path(path string) string
}

type fileStorage struct {
	basePath string
}

func NewFileStorage(basePath string) FileStorage {
	return &fileStorage{basePath: basePath}
}

func (s *fileStorage) Path(path string) string {
	return filepath.Join(s.basePath, path)
}

func (s *fileStorage) Save(path string, data io.Reader) error {
	return s.SaveFunc(path, func(w io.Writer) error {
		_, err := io.Copy(w, data)
		return err
	})
}

// SaveFunc writes into a temporary file next to the destination and renames
// it into place, so readers never observe a partial file.
func (s *fileStorage) SaveFunc(path string, write func(w io.Writer) error) error {
	fullPath := s.Path(path)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(fullPath), "."+filepath.Base(fullPath)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, fullPath); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func (s *fileStorage) Get(path string) (io.ReadCloser, error) {
	return os.Open(s.Path(path))
}

func (s *fileStorage) Delete(path string) error {
	return os.RemoveAll(s.Path(path))
}

func (s *fileStorage) Exists(path string) bool {
	_, err := os.Stat(s.Path(path))
	return !errors.Is(err, os.ErrNotExist)
}

// ListDirs returns the sorted names of the sub-directories of path.
func (s *fileStorage) ListDirs(path string) ([]string, error) {
	return s.list(path, true)
}

// ListFiles returns the sorted names of the regular files in path.
func (s *fileStorage) ListFiles(path string) ([]string, error) {
	return s.list(path, false)
}

func (s *fileStorage) list(path string, dirs bool) ([]string, error) {
	entries, err := os.ReadDir(s.Path(path))
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() == dirs && (dirs || e.Type().IsRegular()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

package dictionary

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileCache stores raw lookup responses on disk, one JSON file per word.
// A FileCache with an empty root directory never caches.
type FileCache struct {
	rootDir string
}

func NewFileCache(cacheDirectory string) *FileCache {
	return &FileCache{
		rootDir: cacheDirectory,
	}
}

func (f *FileCache) enabled() bool {
	return f != nil && f.rootDir != ""
}

func (f *FileCache) filePath(word string) string {
	name := strings.ReplaceAll(word, string(filepath.Separator), "_")
	return filepath.Join(f.rootDir, name+".json")
}

// cache returns the cached contents for word, or calls fetch and stores its
// result. fetch reports whether its contents may be cached.
func (cache *FileCache) cache(word string, fetch func() ([]byte, bool, error)) ([]byte, error) {
	if !cache.enabled() {
		contents, _, err := fetch()
		return contents, err
	}

	contents, err := cache.read(word)
	if err == nil {
		return contents, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("cache.read > %w", err)
	}

	contents, cacheable, err := fetch()
	if err != nil {
		return nil, err
	}
	if !cacheable {
		return contents, nil
	}

	if err := os.MkdirAll(cache.rootDir, 0755); err != nil {
		return contents, fmt.Errorf("os.MkdirAll > %w", err)
	}
	file, err := os.Create(cache.filePath(word))
	if err != nil {
		return contents, fmt.Errorf("os.Create > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	if _, err := file.Write(contents); err != nil {
		return contents, fmt.Errorf("file.Write > %w", err)
	}
	return contents, nil
}

func (cache *FileCache) read(word string) ([]byte, error) {
	file, err := os.Open(cache.filePath(word))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	contents, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll > %w", err)
	}
	return contents, nil
}

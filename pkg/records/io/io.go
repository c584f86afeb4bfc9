package io

import (
	"context"
	"os"
	"sync"

	"corgraph/pkg/records"

	"golang.org/x/sync/singleflight"
)

// FileSource reads record-set files from the local filesystem with caching.
type FileSource struct {
	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewFileSource creates a new filesystem-based record source.
func NewFileSource() *FileSource {
	return &FileSource{
		cache: make(map[string][]byte),
	}
}

// Read returns the file content from the filesystem. Results are cached and
// concurrent reads of the same path are collapsed into one.
func (s *FileSource) Read(ctx context.Context, file records.GroupFile) ([]byte, error) {
	key := file.Path

	s.cacheMu.RLock()
	if cached, ok := s.cache[key]; ok {
		s.cacheMu.RUnlock()
		return cached, nil
	}
	s.cacheMu.RUnlock()

	result, err, _ := s.group.Do(key, func() (any, error) {
		s.cacheMu.RLock()
		if cached, ok := s.cache[key]; ok {
			s.cacheMu.RUnlock()
			return cached, nil
		}
		s.cacheMu.RUnlock()

		content, err := os.ReadFile(file.Path)
		if err != nil {
			return nil, err
		}

		s.cacheMu.Lock()
		s.cache[key] = content
		s.cacheMu.Unlock()

		return content, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}

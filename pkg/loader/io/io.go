package io

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/loader"

	"golang.org/x/sync/singleflight"
)

// IOByteLoader loads files directly from the local filesystem with caching.
type IOByteLoader struct {
	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewIOByteLoader creates a new filesystem-based byte loader.
func NewIOByteLoader() *IOByteLoader {
	return &IOByteLoader{
		cache: make(map[string][]byte),
	}
}

// GetFileBytes reads the file content from the filesystem. Results are cached.
// A nonexistent path is reported as loader.ErrTableNotFound.
func (l *IOByteLoader) GetFileBytes(ctx context.Context, file loader.TableFile) ([]byte, error) {
	key := loader.CacheKey(file)

	l.cacheMu.RLock()
	if cached, ok := l.cache[key]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, _ := l.group.Do(key, func() (any, error) {
		l.cacheMu.RLock()
		if cached, ok := l.cache[key]; ok {
			l.cacheMu.RUnlock()
			return cached, nil
		}
		l.cacheMu.RUnlock()

		result, err := os.ReadFile(file.FilePath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", loader.ErrTableNotFound, file.FilePath)
			}
			return nil, err
		}

		l.cacheMu.Lock()
		l.cache[key] = result
		l.cacheMu.Unlock()

		return result, nil
	})

	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}

package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// FileStore keeps preferences in a JSON object on disk. Every write
// rewrites the whole file.
type FileStore struct {
	path   string
	logger *zap.Logger

	mu     sync.RWMutex
	values map[string]string
}

// NewFileStore opens the store at path. A missing file is an empty store
// and is created on the first write.
func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	fs := &FileStore{
		path:   path,
		logger: logger,
		values: make(map[string]string),
	}
	if err := fs.load(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *FileStore) load() error {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read preferences file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &fs.values); err != nil {
		return fmt.Errorf("failed to parse preferences file: %w", err)
	}

	fs.logger.Debug("Preferences loaded",
		zap.String("file", fs.path),
		zap.Int("keys", len(fs.values)))

	return nil
}

// save writes the current values; callers hold the write lock
func (fs *FileStore) save() error {
	data, err := json.MarshalIndent(fs.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if dir := filepath.Dir(fs.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create preferences dir: %w", err)
		}
	}

	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preferences file: %w", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("failed to replace preferences file: %w", err)
	}

	fs.logger.Debug("Preferences saved", zap.String("file", fs.path))
	return nil
}

func (fs *FileStore) Get(ctx context.Context, key string) (string, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	value, ok := fs.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return value, nil
}

func (fs *FileStore) Set(ctx context.Context, key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	prev, existed := fs.values[key]
	fs.values[key] = value
	if err := fs.save(); err != nil {
		if existed {
			fs.values[key] = prev
		} else {
			delete(fs.values, key)
		}
		return err
	}
	return nil
}

func (fs *FileStore) Delete(ctx context.Context, key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	prev, ok := fs.values[key]
	if !ok {
		return nil
	}
	delete(fs.values, key)
	if err := fs.save(); err != nil {
		fs.values[key] = prev
		return err
	}
	return nil
}

func (fs *FileStore) All(ctx context.Context) (map[string]string, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	out := make(map[string]string, len(fs.values))
	for k, v := range fs.values {
		out[k] = v
	}
	return out, nil
}

// Close is a no-op; every write is already on disk
func (fs *FileStore) Close() error {
	return nil
}

package data

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/repo"
)

var (
	// ErrDecodeFailed marks persisted state that exists but cannot be parsed
	ErrDecodeFailed = errors.New("decode persisted state")
	// ErrEncodeFailed marks in-memory state that cannot be serialized
	ErrEncodeFailed = errors.New("encode state")
)

const (
	stateFilePerm = 0o644
	stateDirPerm  = 0o755
)

// fileStore keeps one pretty-printed JSON document per key under dir
type fileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates a JSON file backed state store
func NewFileStore(dir string) (repo.StateStore, error) {
	if err := os.MkdirAll(dir, stateDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create state dir: %w", err)
	}
	return &fileStore{dir: dir}, nil
}

func (s *fileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load reads key into v. A missing file is not an error.
func (s *fileStore) Load(ctx context.Context, key string, v any) (bool, error) {
	raw, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrDecodeFailed, key, err)
	}
	return true, nil
}

// Save writes v as indented JSON, replacing the file atomically
func (s *fileStore) Save(ctx context.Context, key string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncodeFailed, key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return writeAtomic(s.path(key), raw)
}

func (s *fileStore) Close() error { return nil }

// writeAtomic writes content to a temp file in the target directory and renames it into place
func writeAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, stateDirPerm); err != nil {
		return fmt.Errorf("ensure dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp for %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp for %s: %w", path, err)
	}
	if err := tmp.Chmod(stateFilePerm); err != nil {
		return fmt.Errorf("chmod temp for %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp for %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp for %s: %w", path, err)
	}

	// Best effort directory sync
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}

// ABOUTME: Persisted key-value storage for the client session
// ABOUTME: JSON file in the XDG config directory, plus an in-memory variant for tests

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Persisted storage keys
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUsername     = "username"
)

// Store is a durable string key-value store
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

// BatchStore is a Store that can write several keys in one step
type BatchStore interface {
	Store
	SetAll(values map[string]string) error
}

// DefaultConfigDir returns the default config directory following the XDG base directory layout
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "atlantic-photo")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "atlantic-photo")
}

// FileStore keeps values in <dir>/session.json
type FileStore struct {
	dir    string
	mu     sync.Mutex
	values map[string]string
}

// NewFileStore creates a FileStore rooted at dir. Nothing is read until first use.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path returns the location of the backing file
func (fs *FileStore) Path() string {
	return filepath.Join(fs.dir, "session.json")
}

// load reads the file once; a missing or corrupt file is an empty store
func (fs *FileStore) load() {
	if fs.values != nil {
		return
	}
	fs.values = map[string]string{}

	data, err := os.ReadFile(fs.Path())
	if err != nil {
		return
	}
	var stored map[string]string
	if err := json.Unmarshal(data, &stored); err != nil {
		return
	}
	for k, v := range stored {
		fs.values[k] = v
	}
}

// Get returns the value for key
func (fs *FileStore) Get(key string) (string, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.load()
	v, ok := fs.values[key]
	return v, ok
}

// Set stores value under key and flushes to disk
func (fs *FileStore) Set(key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.load()
	fs.values[key] = value
	return fs.flush()
}

// SetAll stores every value with a single flush. On failure the file
// keeps its previous contents.
func (fs *FileStore) SetAll(values map[string]string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.load()
	prev := make(map[string]string, len(fs.values))
	for k, v := range fs.values {
		prev[k] = v
	}
	for k, v := range values {
		fs.values[k] = v
	}
	if err := fs.flush(); err != nil {
		fs.values = prev
		return err
	}
	return nil
}

// Remove deletes key and flushes to disk
func (fs *FileStore) Remove(key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.load()
	if _, ok := fs.values[key]; !ok {
		return nil
	}
	delete(fs.values, key)
	return fs.flush()
}

// flush writes a temp file and renames it over the old one
func (fs *FileStore) flush() error {
	if err := os.MkdirAll(fs.dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(fs.values, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(fs.dir, "session-*.json")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, fs.Path())
}

// MemoryStore is a Store that lives only in memory
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore creates a MemoryStore seeded with initial values
func NewMemoryStore(initial map[string]string) *MemoryStore {
	values := make(map[string]string, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &MemoryStore{values: values}
}

func (ms *MemoryStore) Get(key string) (string, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	v, ok := ms.values[key]
	return v, ok
}

func (ms *MemoryStore) Set(key, value string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.values[key] = value
	return nil
}

func (ms *MemoryStore) SetAll(values map[string]string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	for k, v := range values {
		ms.values[k] = v
	}
	return nil
}

func (ms *MemoryStore) Remove(key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.values, key)
	return nil
}

// Len returns the number of stored keys
func (ms *MemoryStore) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.values)
}

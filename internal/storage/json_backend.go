package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// JSONBackend implements StorageBackend using a single JSON file.
//
// The file holds one JSON object mapping every key to its string value.
// Writes go through a temporary file and os.Rename so the file is never
// observed half-written.
type JSONBackend struct {
	// File is the absolute path to the JSON storage file.
	File string

	mu sync.Mutex
}

// NewJSONBackend creates a new JSONBackend for the given file path.
//
// Parent directories are created on the first write.
func NewJSONBackend(file string) *JSONBackend {
	return &JSONBackend{
		File: file,
	}
}

// readItems loads the key-value map from disk.
//
// Returns an empty map if the file doesn't exist, can't be read, or does
// not contain a JSON object of strings. A broken file is treated the same
// as a missing one so the next write starts fresh.
func (b *JSONBackend) readItems() map[string]string {
	data, err := os.ReadFile(b.File)
	if err != nil {
		return make(map[string]string)
	}

	var items map[string]string
	if err := json.Unmarshal(data, &items); err != nil || items == nil {
		return make(map[string]string)
	}

	return items
}

// writeItems atomically replaces the file with the given map.
//
// Writes JSON with 2-space indentation and a trailing newline.
func (b *JSONBackend) writeItems(items map[string]string) error {
	dir := filepath.Dir(b.File)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmpFile, err := os.CreateTemp(dir, "*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()

	if writeErr != nil {
		_ = os.Remove(tmpPath)
		return writeErr
	}
	if closeErr != nil {
		_ = os.Remove(tmpPath)
		return closeErr
	}

	if err := os.Rename(tmpPath, b.File); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	return nil
}

// GetItem returns the value stored under key.
//
// Never returns an error: a missing or corrupt file reads as empty.
func (b *JSONBackend) GetItem(key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	v, ok := b.readItems()[key]
	return v, ok, nil
}

// SetItem stores value under key, keeping every other key in the file.
//
// Returns an error if directory creation, writing, or the atomic rename
// fails.
func (b *JSONBackend) SetItem(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	items := b.readItems()
	items[key] = value
	return b.writeItems(items)
}

// RemoveItem deletes key from the file. A missing file or key is a no-op.
func (b *JSONBackend) RemoveItem(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	items := b.readItems()
	if _, ok := items[key]; !ok {
		return nil
	}
	delete(items, key)
	return b.writeItems(items)
}

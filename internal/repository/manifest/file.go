package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultFilePermissions is used when writing the manifest file.
const DefaultFilePermissions os.FileMode = 0o644

// Repository defines persistence operations for the wheel manifest.
type Repository interface {
	Load(ctx context.Context) (*Manifest, error)
	Save(ctx context.Context, m *Manifest) error
}

// FileRepository persists the manifest to a JSON file on disk.
// Output is deterministic: wheels sorted, keys in fixed (alphabetical)
// order, 2-space indentation and a trailing newline.
type FileRepository struct {
	// path is the filesystem location of the manifest file.
	path string
	// mu protects concurrent access to the manifest file within a process.
	mu sync.Mutex
}

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Path returns the cleaned manifest location.
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads the manifest from disk. A missing file yields an empty
// manifest; malformed JSON or schema violations fail with ErrCorrupt.
func (r *FileRepository) Load(_ context.Context) (*Manifest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}

		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest

	decoder := json.NewDecoder(bytes.NewReader(contents))
	decoder.DisallowUnknownFields()

	if err = decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorrupt, err)
	}

	if err = m.validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Save writes the manifest to disk after sorting the wheel list.
func (r *FileRepository) Save(_ context.Context, m *Manifest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m.Sort()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	data = append(data, '\n')

	if err = os.WriteFile(r.path, data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/cinema-engine/backend/internal/dataset"
)

// CatalogStorage defines the interface for persisting parsed catalog
// records between restarts
type CatalogStorage interface {
	Save(record *dataset.MovieRecord) error
	Get(id int) (*dataset.MovieRecord, error)
	List() ([]dataset.MovieRecord, error)
	Close() error
}

// FileStorage implements CatalogStorage using the local file system,
// one JSON file per record
type FileStorage struct {
	baseDir string
	mu      sync.RWMutex
}

// NewFileStorage creates a new file-based catalog storage
func NewFileStorage(baseDir string) (*FileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStorage{
		baseDir: baseDir,
	}, nil
}

// Save writes the record to a JSON file named after its ID
func (fs *FileStorage) Save(record *dataset.MovieRecord) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	path := filepath.Join(fs.baseDir, recordFilename(record.ID))

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Get retrieves a single record from disk
func (fs *FileStorage) Get(id int) (*dataset.MovieRecord, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	path := filepath.Join(fs.baseDir, recordFilename(id))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var record dataset.MovieRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	return &record, nil
}

// List loads every stored record, ordered by ID so the corpus order
// survives a restart. Files that fail to parse are skipped.
func (fs *FileStorage) List() ([]dataset.MovieRecord, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	files, err := os.ReadDir(fs.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage directory: %w", err)
	}

	var records []dataset.MovieRecord
	for _, file := range files {
		if filepath.Ext(file.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(fs.baseDir, file.Name()))
		if err != nil {
			continue
		}
		var record dataset.MovieRecord
		if err := json.Unmarshal(data, &record); err == nil {
			records = append(records, record)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})

	return records, nil
}

// Close is a no-op for file storage
func (fs *FileStorage) Close() error {
	return nil
}

func recordFilename(id int) string {
	return fmt.Sprintf("movie_%06d.json", id)
}

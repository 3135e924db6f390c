package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/ghs/internal/core/ports/driven"
)

// HistoryFileName is the name of the search history file.
const HistoryFileName = "history.json"

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore persists search history as a JSON array of strings.
type HistoryStore struct {
	filePath string
}

// NewHistoryStore creates a history store in dir.
// If dir is empty, DefaultDir is used. The file is not created until the
// first Save.
func NewHistoryStore(dir string) (*HistoryStore, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return &HistoryStore{filePath: filepath.Join(dir, HistoryFileName)}, nil
}

// Load reads the stored queries. A missing file yields an empty list.
func (s *HistoryStore) Load(_ context.Context) ([]string, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var searches []string
	if err := json.Unmarshal(data, &searches); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.filePath, err)
	}
	if searches == nil {
		searches = []string{}
	}
	return searches, nil
}

// Save writes the full list, replacing the file atomically.
func (s *HistoryStore) Save(_ context.Context, searches []string) error {
	if searches == nil {
		searches = []string{}
	}

	data, err := json.Marshal(searches)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.filePath), HistoryFileName+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.filePath)
}

// Path returns the history file path.
func (s *HistoryStore) Path() string {
	return s.filePath
}

// Package history persists the published-topic archive as one JSON document.
package history

import (
	"bytes"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"ContentPipeline/internal/domain"
	"ContentPipeline/internal/ports"
)

// ErrConflict reports that the history file changed between read and write.
var ErrConflict = errors.New("history file modified concurrently")

// JSONStore is a flat-file history store. Append rewrites the whole document
// and refuses to clobber a concurrent writer's change: the file content hash
// observed on read must still match just before the rewrite.
type JSONStore struct {
	path string
	mu   sync.Mutex
}

var _ ports.HistoryStore = (*JSONStore)(nil)

// NewJSONStore creates a store backed by the given file path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Load returns the full record sequence. A missing file is an empty archive,
// not an error.
func (s *JSONStore) Load() ([]domain.HistoryRecord, error) {
	records, _, err := s.read()
	return records, err
}

// Append adds one record and rewrites the document.
func (s *JSONStore) Append(record domain.HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, revision, err := s.read()
	if err != nil {
		return err
	}
	records = append(records, record)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	// Re-check the revision before the rewrite so a concurrent append
	// surfaces as a conflict instead of a silently lost record.
	_, current, err := s.read()
	if err != nil {
		return err
	}
	if current != revision {
		return ErrConflict
	}

	return s.writeAtomic(data)
}

// Wipe deletes the backing document entirely.
func (s *JSONStore) Wipe() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("wipe history: %w", err)
	}
	return nil
}

// read loads the record list and a revision token over the raw file bytes.
func (s *JSONStore) read() ([]domain.HistoryRecord, string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.HistoryRecord{}, "", nil
		}
		return nil, "", fmt.Errorf("read history: %w", err)
	}

	var records []domain.HistoryRecord
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, "", fmt.Errorf("parse history: %w", err)
		}
	}
	if records == nil {
		records = []domain.HistoryRecord{}
	}

	return records, fmt.Sprintf("%x", md5.Sum(data)), nil
}

func (s *JSONStore) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".history-*")
	if err != nil {
		return fmt.Errorf("create temp history: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp history: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace history: %w", err)
	}
	return nil
}

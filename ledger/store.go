// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"errors"
	"os"
	"path/filepath"
)

// Store persists one opaque blob: the serialized pending set.
type Store interface {
	// Load returns the stored blob, or ok=false when nothing is stored.
	Load() (data []byte, ok bool, err error)
	// Save replaces the stored blob.
	Save(data []byte) error
	// Clear removes the stored blob. Clearing an empty store is not an error.
	Clear() error
}

// FileStore keeps the blob in a single file, written atomically.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() ([]byte, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *FileStore) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	// Temp file + rename so a crash mid-write leaves the old blob intact.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemStore is the in-memory test substitute. FailSave and FailClear
// force the next matching operation to fail, for storage-error paths.
type MemStore struct {
	data      []byte
	ok        bool
	FailSave  error
	FailClear error
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Load() ([]byte, bool, error) {
	if !s.ok {
		return nil, false, nil
	}
	cp := make([]byte, len(s.data))
	copy(cp, s.data)
	return cp, true, nil
}

func (s *MemStore) Save(data []byte) error {
	if s.FailSave != nil {
		return s.FailSave
	}
	s.data = make([]byte, len(data))
	copy(s.data, data)
	s.ok = true
	return nil
}

func (s *MemStore) Clear() error {
	if s.FailClear != nil {
		return s.FailClear
	}
	s.data = nil
	s.ok = false
	return nil
}

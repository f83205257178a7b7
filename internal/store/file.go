// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/afrokokoroot/site/internal/model"
)

// FileStore reads and writes the content document on the local
// filesystem. It is the development/self-hosted backing store.
//
// There is deliberately no locking and no transaction support: the store
// serves a single trusted administrator editing through one browser
// session. Concurrent writers perform independent read-modify-write
// cycles and the last write wins.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore backed by the JSON file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads and parses the backing file. A missing or unparsable file
// degrades to an empty document; the site must render in a degraded
// state rather than fail.
func (s *FileStore) Load(_ context.Context) model.Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		slog.Error("reading content document", "path", s.path, "error", err)
		return model.EmptyDocument()
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		slog.Error("parsing content document", "path", s.path, "error", err)
		return model.EmptyDocument()
	}

	return doc
}

// Save serializes the full document as pretty-printed JSON and replaces
// the backing file. The write goes through a temp file followed by an
// atomic rename so a crash mid-write never leaves a truncated document.
func (s *FileStore) Save(_ context.Context, doc model.Document) error {
	doc.Normalize()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding content document: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".content-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing content document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing content document: %w", err)
	}

	return nil
}

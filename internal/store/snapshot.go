// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/afrokokoroot/site/internal/model"
)

// SnapshotStore serves an immutable in-memory document captured once at
// process start. It backs production deployments where the live content
// file is not reachable at request time: reads are always consistent
// with the captured snapshot, never with admin edits made afterwards.
type SnapshotStore struct {
	doc model.Document
}

// NewSnapshotStore captures a snapshot of the given document.
func NewSnapshotStore(doc model.Document) *SnapshotStore {
	doc.Normalize()
	return &SnapshotStore{doc: doc}
}

// NewSnapshotStoreFromJSON parses raw JSON (typically an embedded,
// build-time copy of the content file) into a snapshot store. Unparsable
// input degrades to an empty document, matching FileStore's read
// contract.
func NewSnapshotStoreFromJSON(data []byte) *SnapshotStore {
	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		slog.Error("parsing content snapshot", "error", err)
		return NewSnapshotStore(model.EmptyDocument())
	}
	return NewSnapshotStore(doc)
}

// Load returns the captured snapshot.
func (s *SnapshotStore) Load(_ context.Context) model.Document {
	return s.doc
}

// Save always fails: the snapshot is a read-only path and must not be
// used as a write target.
func (s *SnapshotStore) Save(_ context.Context, _ model.Document) error {
	return ErrReadOnly
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package backup

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScheduler(t *testing.T, keep int) (*Scheduler, string, string) {
	t.Helper()

	dir := t.TempDir()
	contentPath := filepath.Join(dir, "content.json")
	require.NoError(t, os.WriteFile(contentPath, []byte(`{"events": []}`), 0o644))

	backupDir := filepath.Join(dir, "backups")
	s := New(Config{
		ContentPath: contentPath,
		BackupDir:   backupDir,
		Keep:        keep,
	}, slog.New(slog.NewTextHandler(os.Stderr, nil)))

	return s, contentPath, backupDir
}

func TestRunOnceCopiesContent(t *testing.T) {
	s, _, backupDir := testScheduler(t, 5)

	require.NoError(t, s.RunOnce())

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(backupDir, entries[0].Name()))
	require.NoError(t, err)
	assert.JSONEq(t, `{"events": []}`, string(data))
}

func TestRunOncePrunesOldBackups(t *testing.T) {
	s, _, backupDir := testScheduler(t, 2)

	base := time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		s.now = func() time.Time { return base.Add(time.Duration(i) * time.Hour) }
		require.NoError(t, s.RunOnce())
	}

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// The newest two survive.
	assert.Equal(t, "content-20260301-050000.json", entries[0].Name())
	assert.Equal(t, "content-20260301-060000.json", entries[1].Name())
}

func TestRunOnceMissingContentFile(t *testing.T) {
	s, contentPath, _ := testScheduler(t, 5)
	require.NoError(t, os.Remove(contentPath))

	assert.Error(t, s.RunOnce())
}

func TestDefaultsApplied(t *testing.T) {
	s := New(Config{}, slog.Default())

	assert.Equal(t, 14, s.keep)
	assert.Equal(t, "0 3 * * *", s.schedule)
}

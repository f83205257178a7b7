// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package backup takes scheduled snapshots of the content file and
// prunes old ones.
package backup

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs periodic backups of the content file.
type Scheduler struct {
	contentPath string
	backupDir   string
	keep        int
	schedule    string
	cron        *cron.Cron
	logger      *slog.Logger
	now         func() time.Time
}

// Config holds backup scheduler configuration.
type Config struct {
	// ContentPath is the content file to back up.
	ContentPath string
	// BackupDir receives timestamped copies.
	BackupDir string
	// Keep is how many backups to retain. Older ones are pruned.
	Keep int
	// Schedule is a standard 5-field cron expression.
	Schedule string
}

// New creates a backup scheduler.
func New(cfg Config, logger *slog.Logger) *Scheduler {
	if cfg.Keep <= 0 {
		cfg.Keep = 14
	}
	if cfg.Schedule == "" {
		cfg.Schedule = "0 3 * * *" // daily at 03:00
	}

	return &Scheduler{
		contentPath: cfg.ContentPath,
		backupDir:   cfg.BackupDir,
		keep:        cfg.Keep,
		schedule:    cfg.Schedule,
		cron:        cron.New(),
		logger:      logger,
		now:         time.Now,
	}
}

// Start begins the backup schedule.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.RunOnce(); err != nil {
			s.logger.Error("content backup failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("adding backup job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("backup scheduler started", "schedule", s.schedule, "dir", s.backupDir)
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("backup scheduler stopped")
}

// RunOnce copies the content file into the backup directory and prunes
// backups beyond the retention count.
func (s *Scheduler) RunOnce() error {
	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return fmt.Errorf("creating backup dir: %w", err)
	}

	name := fmt.Sprintf("content-%s.json", s.now().UTC().Format("20060102-150405"))
	dst := filepath.Join(s.backupDir, name)

	if err := copyFile(s.contentPath, dst); err != nil {
		return err
	}

	s.logger.Info("content backed up", "file", dst)
	return s.prune()
}

// prune removes the oldest backups beyond the retention count.
func (s *Scheduler) prune() error {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		return fmt.Errorf("reading backup dir: %w", err)
	}

	var backups []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "content-") && strings.HasSuffix(e.Name(), ".json") {
			backups = append(backups, e.Name())
		}
	}

	if len(backups) <= s.keep {
		return nil
	}

	// Timestamped names sort chronologically.
	sort.Strings(backups)
	for _, name := range backups[:len(backups)-s.keep] {
		if err := os.Remove(filepath.Join(s.backupDir, name)); err != nil {
			s.logger.Warn("failed to prune backup", "file", name, "error", err)
		}
	}

	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening content file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating backup file: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying content: %w", err)
	}
	return out.Close()
}

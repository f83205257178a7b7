// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package analytics

import (
	"context"
	"time"
)

// Totals summarizes traffic over a period.
type Totals struct {
	PageViews      int64
	UniqueVisitors int64
}

// PathCount is one entry in a top-pages listing.
type PathCount struct {
	Path  string
	Count int64
}

// TotalsSince returns view and visitor counts since the cutoff.
func (t *Tracker) TotalsSince(ctx context.Context, since time.Time) (Totals, error) {
	var totals Totals
	err := t.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT visitor_hash)
		FROM page_views
		WHERE created_at >= ?
	`, since.UTC().Format("2006-01-02 15:04:05")).Scan(&totals.PageViews, &totals.UniqueVisitors)
	return totals, err
}

// TopPages returns the most viewed paths since the cutoff.
func (t *Tracker) TopPages(ctx context.Context, since time.Time, limit int) ([]PathCount, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT path, COUNT(*) AS views
		FROM page_views
		WHERE created_at >= ?
		GROUP BY path
		ORDER BY views DESC
		LIMIT ?
	`, since.UTC().Format("2006-01-02 15:04:05"), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []PathCount
	for rows.Next() {
		var pc PathCount
		if err := rows.Scan(&pc.Path, &pc.Count); err != nil {
			return nil, err
		}
		results = append(results, pc)
	}
	return results, rows.Err()
}

// RealTimeVisitors returns the number of unique visitors in the last
// N minutes.
func (t *Tracker) RealTimeVisitors(ctx context.Context, minutes int) int {
	cutoff := timeNow().Add(-time.Duration(minutes) * time.Minute)

	var count int
	err := t.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT visitor_hash)
		FROM page_views
		WHERE created_at >= ?
	`, cutoff.UTC().Format("2006-01-02 15:04:05")).Scan(&count)
	if err != nil {
		return 0
	}
	return count
}

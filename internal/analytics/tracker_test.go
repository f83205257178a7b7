// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package analytics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrokokoroot/site/internal/geoip"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()

	db, err := NewDB(filepath.Join(t.TempDir(), "analytics.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(db))

	geo, err := geoip.NewLookup("")
	require.NoError(t, err)

	return NewTracker(db, geo)
}

func TestShouldTrack(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   bool
	}{
		{http.MethodGet, "/", true},
		{http.MethodGet, "/events/heritage-festival", true},
		{http.MethodGet, "/blog", true},
		{http.MethodPost, "/", false},
		{http.MethodGet, "/admin", false},
		{http.MethodGet, "/admin/events", false},
		{http.MethodGet, "/api/auth/login", false},
		{http.MethodGet, "/healthz", false},
		{http.MethodGet, "/static/site.css", false},
		{http.MethodGet, "/favicon.ico", false},
		{http.MethodGet, "/robots.txt", false},
		{http.MethodGet, "/sitemap.xml", false},
		{http.MethodGet, "/logo.png", false},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(tt.method, tt.path, nil)
		assert.Equal(t, tt.want, shouldTrack(r), "%s %s", tt.method, tt.path)
	}
}

func TestInsertAndTotals(t *testing.T) {
	tr := newTestTracker(t)

	now := time.Now()
	for i, path := range []string{"/", "/", "/events"} {
		hash := "visitor-a"
		if i == 2 {
			hash = "visitor-b"
		}
		err := tr.insertPageView(&PageView{
			VisitorHash: hash,
			Path:        path,
			CreatedAt:   now,
		})
		require.NoError(t, err)
	}

	totals, err := tr.TotalsSince(context.Background(), now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(3), totals.PageViews)
	assert.Equal(t, int64(2), totals.UniqueVisitors)

	top, err := tr.TopPages(context.Background(), now.Add(-time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "/", top[0].Path)
	assert.Equal(t, int64(2), top[0].Count)

	assert.Equal(t, 2, tr.RealTimeVisitors(context.Background(), 30))
}

func TestVisitorHashRotatesDaily(t *testing.T) {
	tr := newTestTracker(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return base }
	defer func() { timeNow = time.Now }()

	h1 := tr.visitorHash("203.0.113.5", "Mozilla/5.0")
	h2 := tr.visitorHash("203.0.113.5", "Mozilla/5.0")
	assert.Equal(t, h1, h2)

	timeNow = func() time.Time { return base.Add(24 * time.Hour) }
	h3 := tr.visitorHash("203.0.113.5", "Mozilla/5.0")
	assert.NotEqual(t, h1, h3)
}

func TestTrackPageViewSkipsBots(t *testing.T) {
	tr := newTestTracker(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)")
	tr.trackPageView(r)

	totals, err := tr.TotalsSince(context.Background(), time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, totals.PageViews)
}

func TestExtractReferrerDomain(t *testing.T) {
	assert.Equal(t, "www.example.com", extractReferrerDomain("https://www.example.com/some/page"))
	assert.Equal(t, "example.com", extractReferrerDomain("http://example.com:8080/x"))
	assert.Equal(t, "", extractReferrerDomain(""))
}

func TestParseAcceptLanguage(t *testing.T) {
	assert.Equal(t, "en", parseAcceptLanguage("en-US,en;q=0.9,fr;q=0.8"))
	assert.Equal(t, "fr", parseAcceptLanguage("fr"))
	assert.Equal(t, "", parseAcceptLanguage(""))
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTemplatesFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{
			Data: []byte(`{{define "base"}}<html><head><title>{{.Title}}</title></head><body>{{template "content" .}}</body></html>{{end}}`),
		},
		"layouts/admin.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}<nav>admin</nav>{{template "admin-content" .}}{{end}}`),
		},
		"partials/footer.html": &fstest.MapFile{
			Data: []byte(`{{define "footer"}}<footer>{{.CurrentYear}}</footer>{{end}}`),
		},
		"public/home.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}<h1>{{.Data}}</h1>{{template "footer" .}}{{end}}`),
		},
		"admin/dashboard.html": &fstest.MapFile{
			Data: []byte(`{{define "admin-content"}}<h1>Dashboard</h1>{{end}}`),
		},
	}
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()

	r, err := New(Config{TemplatesFS: testTemplatesFS(), IsDev: true})
	require.NoError(t, err)
	return r
}

func TestRenderPublicTemplate(t *testing.T) {
	r := newTestRenderer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	err := r.Render(rec, req, "public/home", TemplateData{Title: "Home", Data: "Welcome"})
	require.NoError(t, err)

	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<title>Home</title>")
	assert.Contains(t, rec.Body.String(), "<h1>Welcome</h1>")
	assert.Contains(t, rec.Body.String(), "<footer>")
}

func TestRenderAdminTemplateUsesAdminLayout(t *testing.T) {
	r := newTestRenderer(t)

	html, err := r.RenderToString("admin/dashboard", TemplateData{Title: "Dashboard"})
	require.NoError(t, err)

	assert.Contains(t, html, "<nav>admin</nav>")
	assert.Contains(t, html, "<h1>Dashboard</h1>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	r := newTestRenderer(t)

	_, err := r.RenderToString("public/missing", TemplateData{})
	assert.ErrorContains(t, err, "not found")
}

func TestMarkdownRendersAndSanitizes(t *testing.T) {
	r := newTestRenderer(t)

	html := string(r.Markdown("# Hello\n\nSome **bold** text.\n\n<script>alert(1)</script>"))

	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.NotContains(t, html, "<script>")
}

func TestMarkdownGFMTables(t *testing.T) {
	r := newTestRenderer(t)

	html := string(r.Markdown("| a | b |\n|---|---|\n| 1 | 2 |"))
	assert.Contains(t, html, "<table>")
}

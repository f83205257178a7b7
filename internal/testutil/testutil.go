// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers.
package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/afrokokoroot/site/internal/model"
	"github.com/afrokokoroot/site/internal/render"
	"github.com/afrokokoroot/site/internal/store"
)

// TestLogger creates a test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestDocument returns a populated content document fixture.
func TestDocument() model.Document {
	return model.Document{
		Events: []model.Event{
			{
				Slug:        "heritage-festival-2026",
				Title:       "Heritage Festival 2026",
				Date:        "June 20, 2026",
				Time:        "11:00 AM - 8:00 PM",
				Location:    "Riverside Park",
				Address:     "100 Riverside Dr",
				Price:       "Free",
				Description: "A full day of music, food, and dance.",
				Highlights:  []string{"Live drumming", "Food stalls"},
			},
		},
		Programs: []model.Program{
			{
				Slug:        "drumming-circle",
				Title:       "Drumming Circle",
				Description: "Weekly drumming sessions for all ages.",
				Content:     "Join us every Saturday morning.",
			},
		},
		Team: []model.TeamMember{
			{Slug: "ama-mensah", Name: "Ama Mensah", Role: "Founder", Bio: "Started the foundation in 2015."},
		},
		ContactInfo: model.ContactInfo{
			Address: "25 Unity Road",
			Email:   "hello@afrokokoroot.org",
			Phone:   "+1 555 0100",
		},
		ImpactMetrics: []model.ImpactMetric{
			{Label: "Participants", Value: "500+", Description: "People reached through our programs"},
		},
		BlogPosts: []model.BlogPost{
			{
				Slug:    "a-year-of-growth",
				Title:   "A Year of Growth",
				Excerpt: "Reflecting on what we built together.",
				Date:    "2026-02-14",
				Author:  "Ama Mensah",
				Content: "It has been a remarkable year for our community.",
			},
		},
	}
}

// TestFileStore writes the fixture document to a temp file and returns
// a file store over it.
func TestFileStore(t *testing.T) *store.FileStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "content.json")
	fs := store.NewFileStore(path)
	if err := fs.Save(t.Context(), TestDocument()); err != nil {
		t.Fatalf("seeding content file: %v", err)
	}
	return fs
}

// TestRenderer builds a renderer over a minimal in-memory template set
// covering every page name the handlers render.
func TestRenderer(t *testing.T) *render.Renderer {
	t.Helper()

	fsys := fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{
			Data: []byte(`{{define "base"}}<html><head><title>{{.Title}}</title></head><body>{{if .Flash}}<div class="flash">{{.Flash}}</div>{{end}}{{template "content" .}}</body></html>{{end}}`),
		},
		"layouts/admin.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}<nav>admin</nav>{{template "admin-content" .}}{{end}}`),
		},
	}

	publicPages := []string{
		"home", "about", "programs", "program", "events", "event",
		"blog", "post", "impact", "contact", "donate", "get-involved",
		"privacy", "terms", "search", "404", "login",
	}
	for _, name := range publicPages {
		fsys["public/"+name+".html"] = &fstest.MapFile{
			Data: []byte(`{{define "content"}}<main data-page="` + name + `">{{.Title}}</main>{{end}}`),
		}
	}

	adminPages := []string{
		"dashboard", "events", "event_form", "programs", "program_form",
		"team", "team_form", "blog", "blog_form", "impact", "contact",
		"submissions",
	}
	for _, name := range adminPages {
		fsys["admin/"+name+".html"] = &fstest.MapFile{
			Data: []byte(`{{define "admin-content"}}<main data-page="` + name + `">{{.Title}}</main>{{end}}`),
		}
	}

	r, err := render.New(render.Config{TemplatesFS: fsys, IsDev: true})
	if err != nil {
		t.Fatalf("building test renderer: %v", err)
	}
	return r
}

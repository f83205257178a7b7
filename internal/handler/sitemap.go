// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/afrokokoroot/site/internal/seo"
	"github.com/afrokokoroot/site/internal/store"
)

// SEOHandler serves sitemap.xml and robots.txt.
type SEOHandler struct {
	queries *store.Queries
	siteURL string
	staging bool
}

// NewSEOHandler creates a new SEOHandler. staging blocks all crawlers.
func NewSEOHandler(queries *store.Queries, siteURL string, staging bool) *SEOHandler {
	return &SEOHandler{
		queries: queries,
		siteURL: siteURL,
		staging: staging,
	}
}

// Sitemap serves the XML sitemap built from the live content document.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	doc := h.queries.Store().Load(r.Context())

	out, err := seo.GenerateSitemap(h.siteURL, doc)
	if err != nil {
		slog.Error("failed to generate sitemap", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(out)
}

// Robots serves robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(seo.GenerateRobots(h.siteURL, h.staging)))
}

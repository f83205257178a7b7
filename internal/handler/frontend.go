// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/afrokokoroot/site/internal/cache"
	"github.com/afrokokoroot/site/internal/model"
	"github.com/afrokokoroot/site/internal/render"
	"github.com/afrokokoroot/site/internal/search"
	"github.com/afrokokoroot/site/internal/store"
)

// FrontendHandler serves the public pages.
type FrontendHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	pages    *cache.PageCache
	search   *search.Service
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(queries *store.Queries, renderer *render.Renderer, pages *cache.PageCache) *FrontendHandler {
	return &FrontendHandler{
		queries:  queries,
		renderer: renderer,
		pages:    pages,
		search:   search.New(),
	}
}

// servePage renders a public page through the page cache. Cached bodies
// are served as-is until a content write invalidates the path.
func (h *FrontendHandler) servePage(w http.ResponseWriter, r *http.Request, template string, data render.TemplateData) {
	ctx := r.Context()
	path := r.URL.Path

	if body, ok := h.pages.Get(ctx, path); ok {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(body)
		return
	}

	html, err := h.renderer.RenderToString(template, data)
	if err != nil {
		slog.Error("failed to render page", "template", template, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.pages.Set(ctx, path, []byte(html))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

// homeData is the payload for the homepage template.
type homeData struct {
	Events   []model.Event
	Programs []model.Program
	Metrics  []model.ImpactMetric
	Posts    []model.BlogPost
}

// Home renders the homepage with a sampling of each collection.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data := homeData{
		Events:   limitEvents(h.queries.Events(ctx), 3),
		Programs: limitPrograms(h.queries.Programs(ctx), 3),
		Metrics:  h.queries.ImpactMetrics(ctx),
		Posts:    limitPosts(h.queries.BlogPosts(ctx), 3),
	}

	h.servePage(w, r, "public/home", render.TemplateData{
		Title:       "Afrokokoroot Foundation",
		Description: "Celebrating African heritage through culture, community, and education.",
		Data:        data,
	})
}

// About renders the about page with the team roster.
func (h *FrontendHandler) About(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, "public/about", render.TemplateData{
		Title: "About Us",
		Data:  h.queries.Team(r.Context()),
	})
}

// Programs renders the program listing.
func (h *FrontendHandler) Programs(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, "public/programs", render.TemplateData{
		Title: "Our Programs",
		Data:  h.queries.Programs(r.Context()),
	})
}

// Program renders a single program page.
func (h *FrontendHandler) Program(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	program, err := h.queries.ProgramBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.NotFound(w, r)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.servePage(w, r, "public/program", render.TemplateData{
		Title: program.Title,
		Data:  program,
	})
}

// Events renders the event listing.
func (h *FrontendHandler) Events(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, "public/events", render.TemplateData{
		Title: "Events",
		Data:  h.queries.Events(r.Context()),
	})
}

// Event renders a single event page.
func (h *FrontendHandler) Event(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	event, err := h.queries.EventBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.NotFound(w, r)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.servePage(w, r, "public/event", render.TemplateData{
		Title: event.Title,
		Data:  event,
	})
}

// Blog renders the blog listing.
func (h *FrontendHandler) Blog(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, "public/blog", render.TemplateData{
		Title: "News & Stories",
		Data:  h.queries.BlogPosts(r.Context()),
	})
}

// BlogPost renders a single blog post.
func (h *FrontendHandler) BlogPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.queries.BlogPostBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.NotFound(w, r)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.servePage(w, r, "public/post", render.TemplateData{
		Title: post.Title,
		Data:  post,
	})
}

// Impact renders the impact metrics page.
func (h *FrontendHandler) Impact(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, "public/impact", render.TemplateData{
		Title: "Our Impact",
		Data:  h.queries.ImpactMetrics(r.Context()),
	})
}

// Contact renders the contact page.
func (h *FrontendHandler) Contact(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, "public/contact", render.TemplateData{
		Title: "Contact Us",
		Data:  h.queries.ContactInfo(r.Context()),
	})
}

// Donate renders the donation page.
func (h *FrontendHandler) Donate(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, "public/donate", render.TemplateData{
		Title: "Donate",
		Data:  h.queries.ContactInfo(r.Context()),
	})
}

// GetInvolved renders the volunteering page.
func (h *FrontendHandler) GetInvolved(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, "public/get-involved", render.TemplateData{
		Title: "Get Involved",
		Data:  h.queries.Programs(r.Context()),
	})
}

// Privacy renders the privacy policy.
func (h *FrontendHandler) Privacy(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, "public/privacy", render.TemplateData{Title: "Privacy Policy"})
}

// Terms renders the terms of use.
func (h *FrontendHandler) Terms(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, "public/terms", render.TemplateData{Title: "Terms of Use"})
}

// searchData is the payload for the search results template.
type searchData struct {
	Query   string
	Results []search.Result
}

// Search renders search results. Results depend on the query string so
// this page bypasses the page cache.
func (h *FrontendHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	doc := h.queries.Store().Load(r.Context())

	data := searchData{
		Query:   query,
		Results: h.search.Search(doc, query),
	}

	if err := h.renderer.Render(w, r, "public/search", render.TemplateData{
		Title: "Search",
		Data:  data,
	}); err != nil {
		slog.Error("failed to render search page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// NotFound renders the 404 page.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	if err := h.renderer.Render(&statusSuppressWriter{ResponseWriter: w}, r, "public/404", render.TemplateData{
		Title: "Page Not Found",
	}); err != nil {
		slog.Error("failed to render 404 page", "error", err)
	}
}

// statusSuppressWriter drops WriteHeader calls so a handler can set the
// status before delegating body rendering.
type statusSuppressWriter struct {
	http.ResponseWriter
}

func (w *statusSuppressWriter) WriteHeader(int) {}

func limitEvents(events []model.Event, n int) []model.Event {
	if len(events) > n {
		return events[:n]
	}
	return events
}

func limitPrograms(programs []model.Program, n int) []model.Program {
	if len(programs) > n {
		return programs[:n]
	}
	return programs
}

func limitPosts(posts []model.BlogPost, n int) []model.BlogPost {
	if len(posts) > n {
		return posts[:n]
	}
	return posts
}

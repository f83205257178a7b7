// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/afrokokoroot/site/internal/analytics"
	"github.com/afrokokoroot/site/internal/content"
	"github.com/afrokokoroot/site/internal/model"
	"github.com/afrokokoroot/site/internal/render"
	"github.com/afrokokoroot/site/internal/store"
)

// AdminHandler handles the admin panel pages and content mutations.
type AdminHandler struct {
	queries  *store.Queries
	content  *content.Service
	renderer *render.Renderer
	tracker  *analytics.Tracker
}

// NewAdminHandler creates a new AdminHandler. tracker may be nil when
// analytics is disabled.
func NewAdminHandler(queries *store.Queries, contentSvc *content.Service, renderer *render.Renderer, tracker *analytics.Tracker) *AdminHandler {
	return &AdminHandler{
		queries:  queries,
		content:  contentSvc,
		renderer: renderer,
		tracker:  tracker,
	}
}

func (h *AdminHandler) render(w http.ResponseWriter, r *http.Request, name string, data render.TemplateData) {
	if flash := r.URL.Query().Get("flash"); flash != "" && data.Flash == "" {
		data.Flash = flashMessage(flash)
		data.FlashType = "success"
	}

	if err := h.renderer.Render(w, r, name, data); err != nil {
		slog.Error("failed to render admin page", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func flashMessage(code string) string {
	switch code {
	case "saved":
		return "Changes saved."
	case "deleted":
		return "Entry deleted."
	default:
		return ""
	}
}

// saveError renders a plain error page for a failed write. Write
// failures are never swallowed: the operator must see them.
func saveError(w http.ResponseWriter, action string, err error) {
	slog.Error("content write failed", "action", action, "error", err)
	http.Error(w, "Failed to save changes: "+err.Error(), http.StatusInternalServerError)
}

// dashboardData is the payload for the admin dashboard.
type dashboardData struct {
	EventCount   int
	ProgramCount int
	TeamCount    int
	PostCount    int
	MetricCount  int
	Traffic      analytics.Totals
	TopPages     []analytics.PathCount
	LiveVisitors int
}

// Dashboard renders the admin dashboard with content counts and a
// 30-day traffic summary.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data := dashboardData{
		EventCount:   len(h.queries.Events(ctx)),
		ProgramCount: len(h.queries.Programs(ctx)),
		TeamCount:    len(h.queries.Team(ctx)),
		PostCount:    len(h.queries.BlogPosts(ctx)),
		MetricCount:  len(h.queries.ImpactMetrics(ctx)),
	}

	if h.tracker != nil {
		since := time.Now().AddDate(0, 0, -30)
		if totals, err := h.tracker.TotalsSince(ctx, since); err == nil {
			data.Traffic = totals
		}
		if top, err := h.tracker.TopPages(ctx, since, 10); err == nil {
			data.TopPages = top
		}
		data.LiveVisitors = h.tracker.RealTimeVisitors(ctx, 30)
	}

	h.render(w, r, "admin/dashboard", render.TemplateData{
		Title: "Dashboard",
		Data:  data,
	})
}

// --- Events ---

// EventList renders the event management page.
func (h *AdminHandler) EventList(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "admin/events", render.TemplateData{
		Title: "Events",
		Data:  h.queries.Events(r.Context()),
	})
}

// EventForm renders the event create/edit form. An empty slug means a
// new event.
func (h *AdminHandler) EventForm(w http.ResponseWriter, r *http.Request) {
	var event model.Event
	if slug := chi.URLParam(r, "slug"); slug != "" {
		var err error
		if event, err = h.queries.EventBySlug(r.Context(), slug); err != nil {
			http.NotFound(w, r)
			return
		}
	}

	h.render(w, r, "admin/event_form", render.TemplateData{
		Title: "Edit Event",
		Data:  event,
	})
}

// EventSave upserts an event from the submitted form.
func (h *AdminHandler) EventSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	event := model.Event{
		Slug:        r.FormValue("slug"),
		Title:       r.FormValue("title"),
		Date:        r.FormValue("date"),
		Time:        r.FormValue("time"),
		Location:    r.FormValue("location"),
		Address:     r.FormValue("address"),
		Price:       r.FormValue("price"),
		Description: r.FormValue("description"),
		Highlights:  splitLines(r.FormValue("highlights")),
		Image:       r.FormValue("image"),
	}

	if err := h.content.SaveEvent(r.Context(), event); err != nil {
		saveError(w, "save event", err)
		return
	}

	http.Redirect(w, r, "/admin/events?flash=saved", http.StatusSeeOther)
}

// EventDelete removes an event by slug.
func (h *AdminHandler) EventDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeleteEvent(r.Context(), chi.URLParam(r, "slug")); err != nil {
		saveError(w, "delete event", err)
		return
	}

	http.Redirect(w, r, "/admin/events?flash=deleted", http.StatusSeeOther)
}

// --- Programs ---

// ProgramList renders the program management page.
func (h *AdminHandler) ProgramList(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "admin/programs", render.TemplateData{
		Title: "Programs",
		Data:  h.queries.Programs(r.Context()),
	})
}

// ProgramForm renders the program create/edit form.
func (h *AdminHandler) ProgramForm(w http.ResponseWriter, r *http.Request) {
	var program model.Program
	if slug := chi.URLParam(r, "slug"); slug != "" {
		var err error
		if program, err = h.queries.ProgramBySlug(r.Context(), slug); err != nil {
			http.NotFound(w, r)
			return
		}
	}

	h.render(w, r, "admin/program_form", render.TemplateData{
		Title: "Edit Program",
		Data:  program,
	})
}

// ProgramSave upserts a program. A blank slug is derived from the title.
func (h *AdminHandler) ProgramSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	program := model.Program{
		Slug:        r.FormValue("slug"),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Content:     r.FormValue("content"),
		Image:       r.FormValue("image"),
	}

	if err := h.content.SaveProgram(r.Context(), program); err != nil {
		saveError(w, "save program", err)
		return
	}

	http.Redirect(w, r, "/admin/programs?flash=saved", http.StatusSeeOther)
}

// ProgramDelete removes a program by slug.
func (h *AdminHandler) ProgramDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeleteProgram(r.Context(), chi.URLParam(r, "slug")); err != nil {
		saveError(w, "delete program", err)
		return
	}

	http.Redirect(w, r, "/admin/programs?flash=deleted", http.StatusSeeOther)
}

// --- Team ---

// TeamList renders the team management page.
func (h *AdminHandler) TeamList(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "admin/team", render.TemplateData{
		Title: "Team",
		Data:  h.queries.Team(r.Context()),
	})
}

// TeamForm renders the team member create/edit form.
func (h *AdminHandler) TeamForm(w http.ResponseWriter, r *http.Request) {
	var member model.TeamMember
	if slug := chi.URLParam(r, "slug"); slug != "" {
		var err error
		if member, err = h.queries.TeamMemberBySlug(r.Context(), slug); err != nil {
			http.NotFound(w, r)
			return
		}
	}

	h.render(w, r, "admin/team_form", render.TemplateData{
		Title: "Edit Team Member",
		Data:  member,
	})
}

// TeamSave upserts a team member. A blank slug is derived from the name.
func (h *AdminHandler) TeamSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	member := model.TeamMember{
		Slug:  r.FormValue("slug"),
		Name:  r.FormValue("name"),
		Role:  r.FormValue("role"),
		Bio:   r.FormValue("bio"),
		Image: r.FormValue("image"),
	}

	if err := h.content.SaveTeamMember(r.Context(), member); err != nil {
		saveError(w, "save team member", err)
		return
	}

	http.Redirect(w, r, "/admin/team?flash=saved", http.StatusSeeOther)
}

// TeamDelete removes a team member by slug.
func (h *AdminHandler) TeamDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeleteTeamMember(r.Context(), chi.URLParam(r, "slug")); err != nil {
		saveError(w, "delete team member", err)
		return
	}

	http.Redirect(w, r, "/admin/team?flash=deleted", http.StatusSeeOther)
}

// --- Blog ---

// BlogList renders the blog management page.
func (h *AdminHandler) BlogList(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "admin/blog", render.TemplateData{
		Title: "Blog",
		Data:  h.queries.BlogPosts(r.Context()),
	})
}

// BlogForm renders the blog post create/edit form.
func (h *AdminHandler) BlogForm(w http.ResponseWriter, r *http.Request) {
	var post model.BlogPost
	if slug := chi.URLParam(r, "slug"); slug != "" {
		var err error
		if post, err = h.queries.BlogPostBySlug(r.Context(), slug); err != nil {
			http.NotFound(w, r)
			return
		}
	}

	h.render(w, r, "admin/blog_form", render.TemplateData{
		Title: "Edit Post",
		Data:  post,
	})
}

// BlogSave upserts a blog post from the submitted form.
func (h *AdminHandler) BlogSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	post := model.BlogPost{
		Slug:     r.FormValue("slug"),
		Title:    r.FormValue("title"),
		Excerpt:  r.FormValue("excerpt"),
		Date:     r.FormValue("date"),
		Author:   r.FormValue("author"),
		Category: r.FormValue("category"),
		Image:    r.FormValue("image"),
		Content:  r.FormValue("content"),
	}

	if err := h.content.SaveBlogPost(r.Context(), post); err != nil {
		saveError(w, "save blog post", err)
		return
	}

	http.Redirect(w, r, "/admin/blog?flash=saved", http.StatusSeeOther)
}

// BlogDelete removes a blog post by slug.
func (h *AdminHandler) BlogDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeleteBlogPost(r.Context(), chi.URLParam(r, "slug")); err != nil {
		saveError(w, "delete blog post", err)
		return
	}

	http.Redirect(w, r, "/admin/blog?flash=deleted", http.StatusSeeOther)
}

// --- Contact info ---

// ContactForm renders the contact info form.
func (h *AdminHandler) ContactForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "admin/contact", render.TemplateData{
		Title: "Contact Info",
		Data:  h.queries.ContactInfo(r.Context()),
	})
}

// ContactSave merges the submitted contact fields into the stored
// record. Blank fields keep their stored values.
func (h *AdminHandler) ContactSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	info := model.ContactInfo{
		Address: r.FormValue("address"),
		Email:   r.FormValue("email"),
		Phone:   r.FormValue("phone"),
		Socials: model.Socials{
			Facebook:  r.FormValue("facebook"),
			Instagram: r.FormValue("instagram"),
			Twitter:   r.FormValue("twitter"),
			LinkedIn:  r.FormValue("linkedin"),
		},
	}

	if err := h.content.SaveContactInfo(r.Context(), info); err != nil {
		saveError(w, "save contact info", err)
		return
	}

	http.Redirect(w, r, "/admin/contact?flash=saved", http.StatusSeeOther)
}

// --- Impact metrics ---

// ImpactForm renders the impact metrics form.
func (h *AdminHandler) ImpactForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "admin/impact", render.TemplateData{
		Title: "Impact Metrics",
		Data:  h.queries.ImpactMetrics(r.Context()),
	})
}

// ImpactSave replaces the metric list wholesale from parallel form
// arrays. Rows with an empty label are dropped.
func (h *AdminHandler) ImpactSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	labels := r.Form["label"]
	values := r.Form["value"]
	descriptions := r.Form["description"]

	metrics := make([]model.ImpactMetric, 0, len(labels))
	for i, label := range labels {
		if strings.TrimSpace(label) == "" {
			continue
		}
		m := model.ImpactMetric{Label: label}
		if i < len(values) {
			m.Value = values[i]
		}
		if i < len(descriptions) {
			m.Description = descriptions[i]
		}
		metrics = append(metrics, m)
	}

	if err := h.content.SaveImpactMetrics(r.Context(), metrics); err != nil {
		saveError(w, "save impact metrics", err)
		return
	}

	http.Redirect(w, r, "/admin/impact?flash=saved", http.StatusSeeOther)
}

// splitLines turns textarea input into a list, dropping blank lines.
func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

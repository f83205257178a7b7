// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package search provides site-wide search over the content document.
package search

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mozillazg/go-unidecode"

	"github.com/afrokokoroot/site/internal/model"
)

// Result kinds.
const (
	KindEvent   = "event"
	KindProgram = "program"
	KindPost    = "post"
	KindTeam    = "team"
)

// Result is a single search hit.
type Result struct {
	Kind    string
	Title   string
	Slug    string
	URL     string
	Excerpt string
}

// Service searches the content document. Matching is case and accent
// insensitive: queries are folded to ASCII before comparison, so
// "Adébáyọ̀" matches a search for "adebayo".
type Service struct{}

// New creates a search service.
func New() *Service {
	return &Service{}
}

// fold lowercases and strips accents for matching.
func fold(s string) string {
	return strings.ToLower(unidecode.Unidecode(s))
}

// matches reports whether every query word occurs in at least one of
// the candidate fields.
func matches(words []string, fields ...string) bool {
	var folded []string
	for _, f := range fields {
		folded = append(folded, fold(f))
	}

	for _, word := range words {
		found := false
		for _, f := range folded {
			if strings.Contains(f, word) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Search returns all content entries matching the query, events first,
// then programs, posts, and team members. An empty query returns no
// results.
func (s *Service) Search(doc model.Document, query string) []Result {
	words := strings.Fields(fold(query))
	if len(words) == 0 {
		return []Result{}
	}

	results := make([]Result, 0)

	for _, e := range doc.Events {
		if matches(words, e.Title, e.Description, e.Location) {
			results = append(results, Result{
				Kind:    KindEvent,
				Title:   e.Title,
				Slug:    e.Slug,
				URL:     "/events/" + e.Slug,
				Excerpt: generateExcerpt(e.Description, query, 200),
			})
		}
	}

	for _, p := range doc.Programs {
		if matches(words, p.Title, p.Description) {
			results = append(results, Result{
				Kind:    KindProgram,
				Title:   p.Title,
				Slug:    p.Slug,
				URL:     "/programs/" + p.Slug,
				Excerpt: generateExcerpt(p.Description, query, 200),
			})
		}
	}

	for _, p := range doc.BlogPosts {
		if matches(words, p.Title, p.Excerpt, p.Content) {
			results = append(results, Result{
				Kind:    KindPost,
				Title:   p.Title,
				Slug:    p.Slug,
				URL:     "/blog/" + p.Slug,
				Excerpt: generateExcerpt(p.Content, query, 200),
			})
		}
	}

	for _, m := range doc.Team {
		if matches(words, m.Name, m.Role, m.Bio) {
			results = append(results, Result{
				Kind:    KindTeam,
				Title:   m.Name,
				Slug:    m.Slug,
				URL:     "/about#" + m.Slug,
				Excerpt: generateExcerpt(m.Bio, query, 200),
			})
		}
	}

	return results
}

// generateExcerpt creates a text excerpt from the body, centered on the
// first occurrence of a search term.
func generateExcerpt(body, query string, maxLen int) string {
	body = stripHTMLTags(body)
	if body == "" {
		return ""
	}

	lowerBody := fold(body)
	words := strings.Fields(fold(query))

	firstMatch := -1
	for _, word := range words {
		if idx := strings.Index(lowerBody, word); idx != -1 {
			if firstMatch == -1 || idx < firstMatch {
				firstMatch = idx
			}
		}
	}
	// Accent folding can shift byte offsets against the original text.
	if firstMatch >= len(body) {
		firstMatch = len(body) - 1
	}

	var excerpt string
	if firstMatch == -1 {
		if len(body) > maxLen {
			excerpt = body[:runeBoundary(body, maxLen)] + "..."
		} else {
			excerpt = body
		}
	} else {
		// Center the excerpt around the match
		start := firstMatch - maxLen/3
		if start < 0 {
			start = 0
		}
		end := start + maxLen
		if end > len(body) {
			end = len(body)
		}
		start = runeBoundary(body, start)
		end = runeBoundary(body, end)

		excerpt = body[start:end]
		if start > 0 {
			excerpt = "..." + excerpt
		}
		if end < len(body) {
			excerpt += "..."
		}
	}

	return excerpt
}

// runeBoundary backs i off to the start of the rune it falls inside, so
// folded-text offsets never split a multi-byte character in the original.
func runeBoundary(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// stripHTMLTags removes HTML tags from a string.
func stripHTMLTags(s string) string {
	re := regexp.MustCompile(`<[^>]*>`)
	s = re.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

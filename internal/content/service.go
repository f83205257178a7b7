// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content implements collection-level mutations on top of the
// store's whole-document read-modify-write, plus the post-write cache
// invalidation signal.
package content

import (
	"context"
	"log/slog"

	"github.com/afrokokoroot/site/internal/model"
	"github.com/afrokokoroot/site/internal/store"
	"github.com/afrokokoroot/site/internal/util"
)

// Invalidator receives the post-write staleness signal, keyed by logical
// path. *cache.PageCache satisfies it.
type Invalidator interface {
	Invalidate(ctx context.Context, paths ...string)
}

// Service is the mutation layer over a content store. All mutations load
// the full document, modify it in memory, write it back wholesale, then
// invalidate the affected public paths. Write failures propagate to the
// caller untouched; no retry is attempted.
type Service struct {
	store store.Store
	pages Invalidator
}

// NewService creates a mutation service. pages may be nil when no page
// cache is in use.
func NewService(s store.Store, pages Invalidator) *Service {
	return &Service{store: s, pages: pages}
}

func (s *Service) invalidate(ctx context.Context, paths ...string) {
	if s.pages != nil {
		s.pages.Invalidate(ctx, paths...)
	}
}

// SaveEvent upserts an event by slug: an existing event with the same
// slug is replaced in place, otherwise the event is appended.
func (s *Service) SaveEvent(ctx context.Context, event model.Event) error {
	doc := s.store.Load(ctx)

	replaced := false
	for i, e := range doc.Events {
		if e.Slug == event.Slug {
			doc.Events[i] = event
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Events = append(doc.Events, event)
	}

	if err := s.store.Save(ctx, doc); err != nil {
		return err
	}
	slog.Info("event saved", "slug", event.Slug, "replaced", replaced)
	s.invalidate(ctx, "/events", "/events/"+event.Slug, "/")
	return nil
}

// DeleteEvent removes the event with the given slug. Removing an absent
// slug is a no-op success.
func (s *Service) DeleteEvent(ctx context.Context, slug string) error {
	doc := s.store.Load(ctx)
	doc.Events = deleteBySlug(doc.Events, slug, func(e model.Event) string { return e.Slug })

	if err := s.store.Save(ctx, doc); err != nil {
		return err
	}
	slog.Info("event deleted", "slug", slug)
	s.invalidate(ctx, "/events", "/events/"+slug, "/")
	return nil
}

// SaveBlogPost upserts a blog post by slug.
func (s *Service) SaveBlogPost(ctx context.Context, post model.BlogPost) error {
	doc := s.store.Load(ctx)

	replaced := false
	for i, p := range doc.BlogPosts {
		if p.Slug == post.Slug {
			doc.BlogPosts[i] = post
			replaced = true
			break
		}
	}
	if !replaced {
		doc.BlogPosts = append(doc.BlogPosts, post)
	}

	if err := s.store.Save(ctx, doc); err != nil {
		return err
	}
	slog.Info("blog post saved", "slug", post.Slug, "replaced", replaced)
	s.invalidate(ctx, "/blog", "/blog/"+post.Slug, "/")
	return nil
}

// DeleteBlogPost removes the blog post with the given slug.
func (s *Service) DeleteBlogPost(ctx context.Context, slug string) error {
	doc := s.store.Load(ctx)
	doc.BlogPosts = deleteBySlug(doc.BlogPosts, slug, func(p model.BlogPost) string { return p.Slug })

	if err := s.store.Save(ctx, doc); err != nil {
		return err
	}
	slog.Info("blog post deleted", "slug", slug)
	s.invalidate(ctx, "/blog", "/blog/"+slug, "/")
	return nil
}

// SaveProgram upserts a program by slug. An empty slug is derived from
// the title. The derivation is deterministic but not collision-free: two
// titles that normalize identically address the same record.
func (s *Service) SaveProgram(ctx context.Context, program model.Program) error {
	if program.Slug == "" {
		program.Slug = util.Slugify(program.Title)
	}

	doc := s.store.Load(ctx)

	replaced := false
	for i, p := range doc.Programs {
		if p.Slug == program.Slug {
			doc.Programs[i] = program
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Programs = append(doc.Programs, program)
	}

	if err := s.store.Save(ctx, doc); err != nil {
		return err
	}
	slog.Info("program saved", "slug", program.Slug, "replaced", replaced)
	s.invalidate(ctx, "/programs", "/programs/"+program.Slug, "/get-involved", "/")
	return nil
}

// DeleteProgram removes the program with the given slug.
func (s *Service) DeleteProgram(ctx context.Context, slug string) error {
	doc := s.store.Load(ctx)
	doc.Programs = deleteBySlug(doc.Programs, slug, func(p model.Program) string { return p.Slug })

	if err := s.store.Save(ctx, doc); err != nil {
		return err
	}
	slog.Info("program deleted", "slug", slug)
	s.invalidate(ctx, "/programs", "/programs/"+slug, "/get-involved", "/")
	return nil
}

// SaveTeamMember upserts a team member by slug. An empty slug is derived
// from the member's name, with the same collision caveat as programs.
func (s *Service) SaveTeamMember(ctx context.Context, member model.TeamMember) error {
	if member.Slug == "" {
		member.Slug = util.Slugify(member.Name)
	}

	doc := s.store.Load(ctx)

	replaced := false
	for i, m := range doc.Team {
		if m.Slug == member.Slug {
			doc.Team[i] = member
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Team = append(doc.Team, member)
	}

	if err := s.store.Save(ctx, doc); err != nil {
		return err
	}
	slog.Info("team member saved", "slug", member.Slug, "replaced", replaced)
	s.invalidate(ctx, "/about", "/")
	return nil
}

// DeleteTeamMember removes the team member with the given slug.
func (s *Service) DeleteTeamMember(ctx context.Context, slug string) error {
	doc := s.store.Load(ctx)
	doc.Team = deleteBySlug(doc.Team, slug, func(m model.TeamMember) string { return m.Slug })

	if err := s.store.Save(ctx, doc); err != nil {
		return err
	}
	slog.Info("team member deleted", "slug", slug)
	s.invalidate(ctx, "/about", "/")
	return nil
}

// SaveContactInfo shallow-merges the given fields onto the existing
// singleton: empty incoming fields preserve the stored values. This is
// the only merge-semantics mutation.
func (s *Service) SaveContactInfo(ctx context.Context, info model.ContactInfo) error {
	doc := s.store.Load(ctx)
	doc.ContactInfo = mergeContactInfo(doc.ContactInfo, info)

	if err := s.store.Save(ctx, doc); err != nil {
		return err
	}
	slog.Info("contact info saved")
	s.invalidate(ctx, "/contact", "/donate", "/")
	return nil
}

// SaveImpactMetrics replaces the whole metrics sequence. Metrics are
// unkeyed, so there is no per-item upsert.
func (s *Service) SaveImpactMetrics(ctx context.Context, metrics []model.ImpactMetric) error {
	doc := s.store.Load(ctx)
	if metrics == nil {
		metrics = []model.ImpactMetric{}
	}
	doc.ImpactMetrics = metrics

	if err := s.store.Save(ctx, doc); err != nil {
		return err
	}
	slog.Info("impact metrics saved", "count", len(metrics))
	s.invalidate(ctx, "/impact", "/")
	return nil
}

// deleteBySlug filters out every record whose slug matches.
func deleteBySlug[T any](records []T, slug string, slugOf func(T) string) []T {
	filtered := records[:0:0]
	for _, record := range records {
		if slugOf(record) != slug {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

func mergeContactInfo(existing, incoming model.ContactInfo) model.ContactInfo {
	merged := existing
	if incoming.Address != "" {
		merged.Address = incoming.Address
	}
	if incoming.Email != "" {
		merged.Email = incoming.Email
	}
	if incoming.Phone != "" {
		merged.Phone = incoming.Phone
	}
	if incoming.Socials.Facebook != "" {
		merged.Socials.Facebook = incoming.Socials.Facebook
	}
	if incoming.Socials.Instagram != "" {
		merged.Socials.Instagram = incoming.Socials.Instagram
	}
	if incoming.Socials.Twitter != "" {
		merged.Socials.Twitter = incoming.Socials.Twitter
	}
	if incoming.Socials.LinkedIn != "" {
		merged.Socials.LinkedIn = incoming.Socials.LinkedIn
	}
	return merged
}

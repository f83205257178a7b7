// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store is the single source of truth for the site's content
// document. It abstracts over where the document physically lives: a
// mutable JSON file in development, or an immutable in-memory snapshot in
// production deployments where the live file is not reachable at runtime.
package store

import (
	"context"
	"errors"

	"github.com/afrokokoroot/site/internal/model"
)

// Sentinel errors returned by store operations.
var (
	// ErrReadOnly is returned by Save on an immutable snapshot store.
	ErrReadOnly = errors.New("store: read-only snapshot, writes not supported")

	// ErrNotFound is returned when a slug lookup has no matching record.
	ErrNotFound = errors.New("store: record not found")
)

// Store provides whole-document access to the content document.
//
// Load never fails: a missing or unparsable backing document degrades to
// an empty document so every public page still renders. Save replaces the
// backing document entirely; its errors are always surfaced to the caller.
type Store interface {
	Load(ctx context.Context) model.Document
	Save(ctx context.Context, doc model.Document) error
}

// Queries projects individual collections out of a Store. It is the only
// read contract the presentation layer depends on.
type Queries struct {
	store Store
}

// New creates a Queries wrapper around the given store.
func New(s Store) *Queries {
	return &Queries{store: s}
}

// Store returns the underlying store, for callers that need write access.
func (q *Queries) Store() Store {
	return q.store
}

// Events returns the events collection, empty when absent.
func (q *Queries) Events(ctx context.Context) []model.Event {
	events := q.store.Load(ctx).Events
	if events == nil {
		return []model.Event{}
	}
	return events
}

// Programs returns the programs collection, empty when absent.
func (q *Queries) Programs(ctx context.Context) []model.Program {
	programs := q.store.Load(ctx).Programs
	if programs == nil {
		return []model.Program{}
	}
	return programs
}

// Team returns the team collection, empty when absent.
func (q *Queries) Team(ctx context.Context) []model.TeamMember {
	team := q.store.Load(ctx).Team
	if team == nil {
		return []model.TeamMember{}
	}
	return team
}

// BlogPosts returns the blog posts collection, empty when absent.
func (q *Queries) BlogPosts(ctx context.Context) []model.BlogPost {
	posts := q.store.Load(ctx).BlogPosts
	if posts == nil {
		return []model.BlogPost{}
	}
	return posts
}

// ContactInfo returns the contact singleton; zero-valued when absent.
func (q *Queries) ContactInfo(ctx context.Context) model.ContactInfo {
	return q.store.Load(ctx).ContactInfo
}

// ImpactMetrics returns the impact metrics sequence, empty when absent.
func (q *Queries) ImpactMetrics(ctx context.Context) []model.ImpactMetric {
	metrics := q.store.Load(ctx).ImpactMetrics
	if metrics == nil {
		return []model.ImpactMetric{}
	}
	return metrics
}

// EventBySlug returns the event with the given slug or ErrNotFound.
func (q *Queries) EventBySlug(ctx context.Context, slug string) (model.Event, error) {
	for _, e := range q.store.Load(ctx).Events {
		if e.Slug == slug {
			return e, nil
		}
	}
	return model.Event{}, ErrNotFound
}

// ProgramBySlug returns the program with the given slug or ErrNotFound.
func (q *Queries) ProgramBySlug(ctx context.Context, slug string) (model.Program, error) {
	for _, p := range q.store.Load(ctx).Programs {
		if p.Slug == slug {
			return p, nil
		}
	}
	return model.Program{}, ErrNotFound
}

// TeamMemberBySlug returns the team member with the given slug or ErrNotFound.
func (q *Queries) TeamMemberBySlug(ctx context.Context, slug string) (model.TeamMember, error) {
	for _, m := range q.store.Load(ctx).Team {
		if m.Slug == slug {
			return m, nil
		}
	}
	return model.TeamMember{}, ErrNotFound
}

// BlogPostBySlug returns the blog post with the given slug or ErrNotFound.
func (q *Queries) BlogPostBySlug(ctx context.Context, slug string) (model.BlogPost, error) {
	for _, p := range q.store.Load(ctx).BlogPosts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return model.BlogPost{}, ErrNotFound
}

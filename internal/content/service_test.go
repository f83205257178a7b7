// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrokokoroot/site/internal/model"
	"github.com/afrokokoroot/site/internal/store"
)

// recordingInvalidator captures invalidated paths for assertions.
type recordingInvalidator struct {
	paths []string
}

func (r *recordingInvalidator) Invalidate(_ context.Context, paths ...string) {
	r.paths = append(r.paths, paths...)
}

func newTestService(t *testing.T) (*Service, *store.Queries, *recordingInvalidator) {
	t.Helper()
	fileStore := store.NewFileStore(filepath.Join(t.TempDir(), "content.json"))
	require.NoError(t, fileStore.Save(context.Background(), model.EmptyDocument()))
	inv := &recordingInvalidator{}
	return NewService(fileStore, inv), store.New(fileStore), inv
}

func TestSaveEventInsertThenReplace(t *testing.T) {
	ctx := context.Background()
	svc, q, inv := newTestService(t)

	event := model.Event{Slug: "gala", Title: "Annual Gala", Date: "May 1, 2026", Price: "$25"}
	require.NoError(t, svc.SaveEvent(ctx, event))

	events := q.Events(ctx)
	require.Len(t, events, 1)
	assert.Equal(t, "Annual Gala", events[0].Title)

	// Upserting the same slug replaces in place, length unchanged.
	event.Title = "Annual Gala (Rescheduled)"
	event.Price = "Free"
	require.NoError(t, svc.SaveEvent(ctx, event))

	events = q.Events(ctx)
	require.Len(t, events, 1)
	assert.Equal(t, "Annual Gala (Rescheduled)", events[0].Title)
	assert.Equal(t, "Free", events[0].Price)

	assert.Equal(t, []string{
		"/events", "/events/gala", "/",
		"/events", "/events/gala", "/",
	}, inv.paths)
}

func TestSaveEventPreservesOrder(t *testing.T) {
	ctx := context.Background()
	svc, q, _ := newTestService(t)

	require.NoError(t, svc.SaveEvent(ctx, model.Event{Slug: "a", Title: "A"}))
	require.NoError(t, svc.SaveEvent(ctx, model.Event{Slug: "b", Title: "B"}))
	require.NoError(t, svc.SaveEvent(ctx, model.Event{Slug: "a", Title: "A2"}))

	events := q.Events(ctx)
	require.Len(t, events, 2)
	assert.Equal(t, "a", events[0].Slug)
	assert.Equal(t, "A2", events[0].Title)
	assert.Equal(t, "b", events[1].Slug)
}

func TestDeleteEventIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, q, _ := newTestService(t)

	require.NoError(t, svc.SaveEvent(ctx, model.Event{Slug: "keep", Title: "Keep"}))
	require.NoError(t, svc.SaveEvent(ctx, model.Event{Slug: "drop", Title: "Drop"}))

	require.NoError(t, svc.DeleteEvent(ctx, "drop"))
	require.Len(t, q.Events(ctx), 1)

	// Second delete is a no-op success and never affects other slugs.
	require.NoError(t, svc.DeleteEvent(ctx, "drop"))
	events := q.Events(ctx)
	require.Len(t, events, 1)
	assert.Equal(t, "keep", events[0].Slug)
}

func TestSaveBlogPost(t *testing.T) {
	ctx := context.Background()
	svc, q, inv := newTestService(t)

	post := model.BlogPost{Slug: "spring-update", Title: "Spring Update", Author: "Ama", Category: "News"}
	require.NoError(t, svc.SaveBlogPost(ctx, post))
	require.Len(t, q.BlogPosts(ctx), 1)

	post.Excerpt = "What we did this spring."
	require.NoError(t, svc.SaveBlogPost(ctx, post))
	posts := q.BlogPosts(ctx)
	require.Len(t, posts, 1)
	assert.Equal(t, "What we did this spring.", posts[0].Excerpt)

	require.NoError(t, svc.DeleteBlogPost(ctx, "spring-update"))
	assert.Empty(t, q.BlogPosts(ctx))

	assert.Contains(t, inv.paths, "/blog")
	assert.Contains(t, inv.paths, "/blog/spring-update")
}

// Every mutation must invalidate each public path that renders the
// touched record, including its own detail page.
func TestMutationsInvalidateAffectedViews(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(svc *Service) error
		want   []string
	}{
		{
			name:   "save event",
			mutate: func(svc *Service) error { return svc.SaveEvent(ctx, model.Event{Slug: "gala"}) },
			want:   []string{"/events", "/events/gala", "/"},
		},
		{
			name:   "delete event",
			mutate: func(svc *Service) error { return svc.DeleteEvent(ctx, "gala") },
			want:   []string{"/events", "/events/gala", "/"},
		},
		{
			name:   "save program",
			mutate: func(svc *Service) error { return svc.SaveProgram(ctx, model.Program{Slug: "choir"}) },
			want:   []string{"/programs", "/programs/choir", "/get-involved", "/"},
		},
		{
			name:   "delete program",
			mutate: func(svc *Service) error { return svc.DeleteProgram(ctx, "choir") },
			want:   []string{"/programs", "/programs/choir", "/get-involved", "/"},
		},
		{
			name:   "save blog post",
			mutate: func(svc *Service) error { return svc.SaveBlogPost(ctx, model.BlogPost{Slug: "news"}) },
			want:   []string{"/blog", "/blog/news", "/"},
		},
		{
			name:   "delete blog post",
			mutate: func(svc *Service) error { return svc.DeleteBlogPost(ctx, "news") },
			want:   []string{"/blog", "/blog/news", "/"},
		},
		{
			name:   "save team member",
			mutate: func(svc *Service) error { return svc.SaveTeamMember(ctx, model.TeamMember{Slug: "ama"}) },
			want:   []string{"/about", "/"},
		},
		{
			name:   "save contact info",
			mutate: func(svc *Service) error { return svc.SaveContactInfo(ctx, model.ContactInfo{Email: "x@y.org"}) },
			want:   []string{"/contact", "/donate", "/"},
		},
		{
			name:   "save impact metrics",
			mutate: func(svc *Service) error { return svc.SaveImpactMetrics(ctx, nil) },
			want:   []string{"/impact", "/"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, inv := newTestService(t)
			require.NoError(t, tt.mutate(svc))
			assert.Equal(t, tt.want, inv.paths)
		})
	}
}

func TestSaveProgramDerivesSlug(t *testing.T) {
	ctx := context.Background()
	svc, q, _ := newTestService(t)

	require.NoError(t, svc.SaveProgram(ctx, model.Program{Title: "Drumming & Dance!", Description: "d"}))

	programs := q.Programs(ctx)
	require.Len(t, programs, 1)
	assert.Equal(t, "drumming-dance", programs[0].Slug)

	// A distinct title normalizing to the same slug overwrites: accepted
	// last-write-wins behavior for derived slugs.
	require.NoError(t, svc.SaveProgram(ctx, model.Program{Title: "Drumming -- Dance", Description: "other"}))
	programs = q.Programs(ctx)
	require.Len(t, programs, 1)
	assert.Equal(t, "other", programs[0].Description)
}

func TestSaveTeamMemberDerivesSlug(t *testing.T) {
	ctx := context.Background()
	svc, q, _ := newTestService(t)

	require.NoError(t, svc.SaveTeamMember(ctx, model.TeamMember{Name: "Dr. Jane O'Brien!", Role: "Chair"}))

	team := q.Team(ctx)
	require.Len(t, team, 1)
	assert.Equal(t, "dr-jane-o-brien", team[0].Slug)

	// Explicit slugs are used as-is.
	require.NoError(t, svc.SaveTeamMember(ctx, model.TeamMember{Slug: "jane", Name: "Jane", Role: "Member"}))
	require.NoError(t, svc.DeleteTeamMember(ctx, "dr-jane-o-brien"))
	team = q.Team(ctx)
	require.Len(t, team, 1)
	assert.Equal(t, "jane", team[0].Slug)
}

func TestSaveContactInfoShallowMerge(t *testing.T) {
	ctx := context.Background()
	svc, q, _ := newTestService(t)

	require.NoError(t, svc.SaveContactInfo(ctx, model.ContactInfo{
		Address: "1 Culture Way",
		Email:   "old@afrokokoroot.org",
		Phone:   "+1 555 0100",
		Socials: model.Socials{Instagram: "https://instagram.com/afrokokoroot"},
	}))

	// Partial update: only email set; everything else preserved.
	require.NoError(t, svc.SaveContactInfo(ctx, model.ContactInfo{Email: "new@afrokokoroot.org"}))

	info := q.ContactInfo(ctx)
	assert.Equal(t, "1 Culture Way", info.Address)
	assert.Equal(t, "+1 555 0100", info.Phone)
	assert.Equal(t, "new@afrokokoroot.org", info.Email)
	assert.Equal(t, "https://instagram.com/afrokokoroot", info.Socials.Instagram)
}

func TestSaveImpactMetricsReplacesSequence(t *testing.T) {
	ctx := context.Background()
	svc, q, inv := newTestService(t)

	require.NoError(t, svc.SaveImpactMetrics(ctx, []model.ImpactMetric{
		{Label: "Students", Value: "500+", Description: "Taught"},
		{Label: "Events", Value: "40", Description: "Hosted"},
	}))
	require.Len(t, q.ImpactMetrics(ctx), 2)

	require.NoError(t, svc.SaveImpactMetrics(ctx, []model.ImpactMetric{
		{Label: "Countries", Value: "12", Description: "Reached"},
	}))
	metrics := q.ImpactMetrics(ctx)
	require.Len(t, metrics, 1)
	assert.Equal(t, "Countries", metrics[0].Label)

	assert.Contains(t, inv.paths, "/impact")
	assert.Contains(t, inv.paths, "/")
}

func TestMutationsPropagateWriteErrors(t *testing.T) {
	ctx := context.Background()
	snapshot := store.NewSnapshotStore(model.EmptyDocument())
	svc := NewService(snapshot, &recordingInvalidator{})

	assert.ErrorIs(t, svc.SaveEvent(ctx, model.Event{Slug: "x"}), store.ErrReadOnly)
	assert.ErrorIs(t, svc.DeleteEvent(ctx, "x"), store.ErrReadOnly)
	assert.ErrorIs(t, svc.SaveContactInfo(ctx, model.ContactInfo{}), store.ErrReadOnly)
	assert.ErrorIs(t, svc.SaveImpactMetrics(ctx, nil), store.ErrReadOnly)
}

func TestMutationFailureSkipsInvalidation(t *testing.T) {
	ctx := context.Background()
	inv := &recordingInvalidator{}
	svc := NewService(store.NewSnapshotStore(model.EmptyDocument()), inv)

	_ = svc.SaveEvent(ctx, model.Event{Slug: "x"})
	assert.Empty(t, inv.paths)
}

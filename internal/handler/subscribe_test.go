// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrokokoroot/site/internal/testutil"
)

func newSubscribeHandler(t *testing.T) *SubscribeHandler {
	t.Helper()
	path := filepath.Join(t.TempDir(), "submissions.jsonl")
	return NewSubscribeHandler(path, testutil.TestRenderer(t))
}

func postJSON(t *testing.T, fn http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	fn(rec, r)
	return rec
}

func TestSubscribeRecords(t *testing.T) {
	h := newSubscribeHandler(t)

	rec := postJSON(t, h.Subscribe, "/api/subscribe", `{"email":"friend@example.com","name":"Friend"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.NotEmpty(t, resp["id"])

	subs, err := h.List()
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "newsletter", subs[0].Kind)
	assert.Equal(t, "friend@example.com", subs[0].Email)
	assert.NotEmpty(t, subs[0].ID)
}

func TestContactRecordsMessage(t *testing.T) {
	h := newSubscribeHandler(t)

	rec := postJSON(t, h.Contact, "/api/contact", `{"email":"a@b.org","name":"A","message":"Hello there"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	subs, err := h.List()
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "contact", subs[0].Kind)
	assert.Equal(t, "Hello there", subs[0].Message)
}

func TestSubscribeRejectsBadEmail(t *testing.T) {
	h := newSubscribeHandler(t)

	for _, body := range []string{
		`{"email":"not-an-email"}`,
		`{"email":""}`,
		`{}`,
	} {
		rec := postJSON(t, h.Subscribe, "/api/subscribe", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}

	subs, err := h.List()
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestSubscribeRejectsMalformedBody(t *testing.T) {
	h := newSubscribeHandler(t)

	rec := postJSON(t, h.Subscribe, "/api/subscribe", `{"email": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListEmptyWhenNoFile(t *testing.T) {
	h := newSubscribeHandler(t)

	subs, err := h.List()
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestAdminListRenders(t *testing.T) {
	h := newSubscribeHandler(t)

	rec := postJSON(t, h.Subscribe, "/api/subscribe", `{"email":"friend@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	r := httptest.NewRequest(http.MethodGet, "/admin/submissions", nil)
	page := httptest.NewRecorder()
	h.AdminList(page, r)

	assert.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), `data-page="submissions"`)
}

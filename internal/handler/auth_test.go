// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrokokoroot/site/internal/session"
	"github.com/afrokokoroot/site/internal/testutil"
)

func newAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()
	sessions := session.New("test-secret", false)
	return NewAuthHandler(testutil.TestRenderer(t), sessions, "admin", "password123")
}

func postLogin(t *testing.T, h *AuthHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, RouteLogin, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Login(rec, r)
	return rec
}

func TestLoginSuccess(t *testing.T) {
	h := newAuthHandler(t)
	rec := postLogin(t, h, `{"username":"admin","password":"password123"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, session.CookieName, c.Name)
	assert.NotEmpty(t, c.Value)
	assert.Equal(t, 86400, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.Equal(t, "/", c.Path)
}

func TestLoginInvalidCredentials(t *testing.T) {
	h := newAuthHandler(t)

	for _, body := range []string{
		`{"username":"admin","password":"wrong"}`,
		`{"username":"intruder","password":"password123"}`,
		`{"username":"","password":""}`,
	} {
		rec := postLogin(t, h, body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, body)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["success"])
		assert.NotEmpty(t, resp["message"])
		assert.Empty(t, rec.Result().Cookies(), "no cookie on failure")
	}
}

func TestLoginMalformedBody(t *testing.T) {
	h := newAuthHandler(t)
	rec := postLogin(t, h, `{"username": `)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.NotEmpty(t, resp["message"])
}

func TestLogoutClearsCookie(t *testing.T) {
	h := newAuthHandler(t)

	r := httptest.NewRequest(http.MethodPost, RouteLogout, nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestLogoutRedirect(t *testing.T) {
	h := newAuthHandler(t)

	r := httptest.NewRequest(http.MethodGet, "/admin/logout", nil)
	rec := httptest.NewRecorder()
	h.LogoutRedirect(rec, r)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, RouteAdminLogin, rec.Header().Get("Location"))
}

func TestLoginFormRenders(t *testing.T) {
	h := newAuthHandler(t)

	r := httptest.NewRequest(http.MethodGet, RouteAdminLogin, nil)
	rec := httptest.NewRecorder()
	h.LoginForm(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Admin Login")
}

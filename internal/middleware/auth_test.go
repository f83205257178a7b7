// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrokokoroot/site/internal/session"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		hasSession bool
		allow      bool
		redirectTo string
	}{
		{"admin page without session", "/admin", false, false, "/admin/login"},
		{"admin subpage without session", "/admin/events", false, false, "/admin/login"},
		{"admin page with session", "/admin", true, true, ""},
		{"admin subpage with session", "/admin/blog", true, true, ""},
		{"login page without session", "/admin/login", false, true, ""},
		{"login page with session", "/admin/login", true, false, "/admin"},
		{"public page without session", "/blog", false, true, ""},
		{"public page with session", "/events", true, true, ""},
		{"home without session", "/", false, true, ""},
		{"lookalike prefix without session", "/administrator", false, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.path, tt.hasSession)
			assert.Equal(t, tt.allow, d.Allow)
			assert.Equal(t, tt.redirectTo, d.RedirectTo)
		})
	}
}

func TestAuthRedirectsWithoutCookie(t *testing.T) {
	handler := Auth(AuthConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "/admin/events", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))
}

func TestAuthAllowsWithCookie(t *testing.T) {
	called := false
	handler := Auth(AuthConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	r.AddCookie(&http.Cookie{Name: session.CookieName, Value: "opaque-value"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthBouncesLoginWithCookie(t *testing.T) {
	handler := Auth(AuthConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	r.AddCookie(&http.Cookie{Name: session.CookieName, Value: "opaque-value"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))
}

func TestAuthStrictRejectsUnsignedCookie(t *testing.T) {
	sessions := session.New("test-secret", false)
	handler := Auth(AuthConfig{Sessions: sessions, Strict: true})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	r.AddCookie(&http.Cookie{Name: session.CookieName, Value: "forged"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))
}

func TestAuthStrictAcceptsIssuedCookie(t *testing.T) {
	sessions := session.New("test-secret", false)
	handler := Auth(AuthConfig{Sessions: sessions, Strict: true})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	r.AddCookie(&http.Cookie{Name: session.CookieName, Value: sessions.Token()})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginProtectionAllowsBurst(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{IPRateLimit: 0.5, IPBurst: 3})

	for i := 0; i < 3; i++ {
		assert.True(t, lp.Allow("10.0.0.1"), "attempt %d within burst", i+1)
	}
	assert.False(t, lp.Allow("10.0.0.1"), "attempt past burst")

	// A different IP gets its own limiter.
	assert.True(t, lp.Allow("10.0.0.2"))
}

func TestLoginProtectionMiddleware(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{IPRateLimit: 0.5, IPBurst: 1})
	handler := lp.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	post := func() int {
		r := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		r.RemoteAddr = "203.0.113.9:40000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, post())
	assert.Equal(t, http.StatusTooManyRequests, post())

	// GET requests are never rate limited.
	r := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	r.RemoteAddr = "203.0.113.9:40000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.RemoteAddr = "192.0.2.1:5555"
	assert.Equal(t, "192.0.2.1", getClientIP(r))

	r.RemoteAddr = "192.0.2.1"
	assert.Equal(t, "192.0.2.1", getClientIP(r))
}

func TestLoginProtectionIgnoresForwardingHeaders(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{IPRateLimit: 0.5, IPBurst: 1})
	handler := lp.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Rotating spoofed headers must not reset the limiter for the
	// same peer address.
	post := func(xff string) int {
		r := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		r.RemoteAddr = "192.0.2.50:12345"
		r.Header.Set("X-Forwarded-For", xff)
		r.Header.Set("X-Real-IP", xff)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, post("198.51.100.1"))
	assert.Equal(t, http.StatusTooManyRequests, post("198.51.100.2"))
	assert.Equal(t, http.StatusTooManyRequests, post("198.51.100.3"))
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session issues and clears the admin session cookie. The session
// is bearer-only: there is no server-side session table, possession of
// the cookie is the authorization proof. Issued values are HMAC-signed
// over their expiry so a stricter deployment can require integrity, not
// just presence, at the route guard.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// CookieName is the admin session cookie name.
const CookieName = "admin_session"

// Lifetime is the fixed session window.
const Lifetime = 24 * time.Hour

// Manager issues, validates, and clears session cookies.
type Manager struct {
	secret []byte
	secure bool
	now    func() time.Time
}

// New creates a session manager. secure controls the cookie's Secure
// attribute and should be true in production.
func New(secret string, secure bool) *Manager {
	return &Manager{secret: []byte(secret), secure: secure, now: time.Now}
}

// Token returns a signed session value: base64(expiryUnix.mac).
func (m *Manager) Token() string {
	expiry := strconv.FormatInt(m.now().Add(Lifetime).Unix(), 10)
	return base64.RawURLEncoding.EncodeToString([]byte(expiry + "." + m.sign(expiry)))
}

// Validate reports whether value is an unexpired token signed by this
// manager's secret.
func (m *Manager) Validate(value string) bool {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return false
	}

	expiry, mac, found := strings.Cut(string(raw), ".")
	if !found {
		return false
	}

	if !hmac.Equal([]byte(mac), []byte(m.sign(expiry))) {
		return false
	}

	unix, err := strconv.ParseInt(expiry, 10, 64)
	if err != nil {
		return false
	}
	return m.now().Unix() < unix
}

// Issue sets the session cookie on the response: httpOnly, SameSite
// Strict, path-scoped to the whole site, max-age of the fixed lifetime,
// Secure outside development.
func (m *Manager) Issue(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    m.Token(),
		Path:     "/",
		MaxAge:   int(Lifetime.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Clear expires the session cookie. There is no server-side invalidation
// list: a previously issued value stays valid until natural expiry if
// replayed, which the bearer-only design accepts.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Present reports whether the request carries a non-empty session cookie.
// This is the default route-guard check: presence only, not validity.
func Present(r *http.Request) bool {
	cookie, err := r.Cookie(CookieName)
	return err == nil && cookie.Value != ""
}

func (m *Manager) sign(payload string) string {
	mac := hmac.New(sha256.New, m.secret)
	fmt.Fprint(mac, payload)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

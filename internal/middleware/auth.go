// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for the site: the admin
// route guard, security headers, login rate limiting, and CSRF
// protection.
package middleware

import (
	"net/http"
	"strings"

	"github.com/afrokokoroot/site/internal/session"
)

// Decision is the outcome of the admin route guard for one request.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Decide applies the admin access rules to a request path given whether
// a session cookie is present. The rules cover exactly three cases:
// unauthenticated visits to admin pages bounce to the login page,
// authenticated visits to the login page bounce to the dashboard, and
// everything else passes through.
func Decide(path string, hasSession bool) Decision {
	isLogin := path == "/admin/login"
	isAdmin := path == "/admin" || strings.HasPrefix(path, "/admin/")

	switch {
	case isAdmin && !isLogin && !hasSession:
		return Decision{RedirectTo: "/admin/login"}
	case isLogin && hasSession:
		return Decision{RedirectTo: "/admin"}
	default:
		return Decision{Allow: true}
	}
}

// AuthConfig holds configuration for the admin route guard.
type AuthConfig struct {
	// Sessions validates cookie values when Strict is set.
	Sessions *session.Manager

	// Strict requires the cookie value to carry a valid signature.
	// The default check is presence only.
	Strict bool
}

// Auth returns the admin route guard middleware. It inspects the session
// cookie and either redirects or passes the request through per Decide.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hasSession := session.Present(r)
			if hasSession && cfg.Strict && cfg.Sessions != nil {
				cookie, _ := r.Cookie(session.CookieName)
				hasSession = cfg.Sessions.Validate(cookie.Value)
			}

			d := Decide(r.URL.Path, hasSession)
			if !d.Allow {
				http.Redirect(w, r, d.RedirectTo, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

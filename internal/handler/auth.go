// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/afrokokoroot/site/internal/auth"
	"github.com/afrokokoroot/site/internal/render"
	"github.com/afrokokoroot/site/internal/session"
)

// AuthHandler handles login and logout.
type AuthHandler struct {
	renderer      *render.Renderer
	sessions      *session.Manager
	adminUsername string
	adminPassword string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(renderer *render.Renderer, sessions *session.Manager, adminUsername, adminPassword string) *AuthHandler {
	return &AuthHandler{
		renderer:      renderer,
		sessions:      sessions,
		adminUsername: adminUsername,
		adminPassword: adminPassword,
	}
}

// loginRequest is the JSON body of the login endpoint.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginForm renders the admin login page. The route guard redirects
// already-authenticated visitors before this handler runs.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "public/login", render.TemplateData{
		Title: "Admin Login",
	}); err != nil {
		slog.Error("failed to render login page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Login handles the JSON login endpoint. A malformed body is a server
// error, bad credentials are a 401 with a deliberately generic message
// that does not say which field was wrong.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("malformed login request", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "An error occurred")
		return
	}

	if !auth.VerifyCredentials(h.adminUsername, h.adminPassword, req.Username, req.Password) {
		slog.Warn("failed login attempt", "username", req.Username)
		writeJSONError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	h.sessions.Issue(w)
	slog.Info("admin logged in", "username", req.Username)
	writeJSONSuccess(w, nil)
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	writeJSONSuccess(w, nil)
}

// LogoutRedirect clears the session cookie and sends the browser back
// to the login page. Used by the admin panel's logout link.
func (h *AuthHandler) LogoutRedirect(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	http.Redirect(w, r, RouteAdminLogin, http.StatusSeeOther)
}

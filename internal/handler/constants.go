// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the HTTP handlers for the public site, the
// admin panel, and the JSON API.
package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteParamSlug is the slug parameter pattern.
	RouteParamSlug = "/{slug}"

	// RouteAdmin is the admin dashboard route.
	RouteAdmin = "/admin"
	// RouteAdminLogin is the admin login page route.
	RouteAdminLogin = "/admin/login"
	// RouteLogin is the JSON login endpoint.
	RouteLogin = "/api/auth/login"
	// RouteLogout is the JSON logout endpoint.
	RouteLogout = "/api/auth/logout"
)

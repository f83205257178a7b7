// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/afrokokoroot/site/internal/version"
)

// Healthz reports process liveness for deployment probes.
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSONSuccess(w, map[string]any{
		"status":  "ok",
		"version": version.Version,
	})
}

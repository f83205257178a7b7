// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

// Build-time version information injected via ldflags.
var (
	Version   = "dev"     // Semantic version from git tags (e.g., "v1.2.3")
	GitCommit = "unknown" // Short git commit hash (e.g., "abc1234")
	BuildTime = "unknown" // Build timestamp in RFC3339 format
)

// Info bundles the build-time version fields.
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
}

// Get returns the current build information.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
	}
}

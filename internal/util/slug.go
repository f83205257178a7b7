// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides URL slug derivation and validation with Unicode
// normalization support.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonSlugChars matches runs of characters that cannot appear in a slug.
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify derives a URL-safe slug from a human-readable name or title.
// Accents are decomposed and stripped, the result is lower-cased, runs of
// non-alphanumeric characters collapse to a single hyphen, and leading and
// trailing hyphens are trimmed. The derivation is deterministic: the same
// input always yields the same slug. It is not collision-free; distinct
// names can normalize to the same slug.
func Slugify(s string) string {
	// Decompose accented characters and drop the combining marks.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)
	result = nonSlugChars.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	return result
}

// IsValidSlug reports whether s is a well-formed slug: non-empty, only
// lowercase letters, digits and hyphens, no leading/trailing or doubled
// hyphens.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}

	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}

	return !strings.Contains(s, "--")
}

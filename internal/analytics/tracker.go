// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package analytics

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mileusna/useragent"

	"github.com/afrokokoroot/site/internal/geoip"
)

// timeNow is a variable so it can be mocked in tests.
var timeNow = time.Now

// PageView is one anonymized page view record.
type PageView struct {
	VisitorHash    string
	Path           string
	ReferrerDomain string
	CountryCode    string
	Browser        string
	OS             string
	DeviceType     string
	Language       string
	CreatedAt      time.Time
}

// Tracker records page views for public pages.
type Tracker struct {
	db   *sql.DB
	geo  *geoip.Lookup
	salt string
}

// NewTracker creates a tracker. geo may be a disabled lookup.
func NewTracker(db *sql.DB, geo *geoip.Lookup) *Tracker {
	return &Tracker{
		db:   db,
		geo:  geo,
		salt: generateRandomSalt(),
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.status = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.status = http.StatusOK
		rw.wroteHeader = true
	}
	return rw.ResponseWriter.Write(b)
}

// Middleware returns middleware that tracks page views on successful
// GET responses. Recording happens asynchronously so the response is
// never blocked on the database.
func (t *Tracker) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !shouldTrack(r) {
				next.ServeHTTP(w, r)
				return
			}

			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rw, r)

			if rw.status == http.StatusOK {
				go t.trackPageView(r)
			}
		})
	}
}

// shouldTrack determines if a request should be tracked.
func shouldTrack(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}

	path := r.URL.Path

	staticPrefixes := []string{
		"/static/",
		"/favicon.",
		"/robots.txt",
		"/sitemap",
		"/.well-known/",
	}
	for _, prefix := range staticPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}

	staticExtensions := []string{
		".css", ".js", ".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico",
		".woff", ".woff2", ".ttf", ".xml", ".json", ".txt", ".pdf",
	}
	pathLower := strings.ToLower(path)
	for _, ext := range staticExtensions {
		if strings.HasSuffix(pathLower, ext) {
			return false
		}
	}

	adminAPIPrefixes := []string{
		"/admin",
		"/api/",
		"/healthz",
	}
	for _, prefix := range adminAPIPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}

	return true
}

// trackPageView records one page view.
func (t *Tracker) trackPageView(r *http.Request) {
	ip := getRealIP(r)
	uaString := r.UserAgent()

	ua := useragent.Parse(uaString)
	if ua.Bot {
		return
	}

	view := &PageView{
		VisitorHash:    t.visitorHash(ip, uaString),
		Path:           r.URL.Path,
		ReferrerDomain: extractReferrerDomain(r.Referer()),
		CountryCode:    t.geo.LookupCountry(ip),
		Browser:        ua.Name,
		OS:             ua.OS,
		DeviceType:     deviceType(ua),
		Language:       parseAcceptLanguage(r.Header.Get("Accept-Language")),
		CreatedAt:      timeNow(),
	}

	if err := t.insertPageView(view); err != nil {
		slog.Error("failed to insert page view", "error", err, "path", view.Path)
	}
}

func deviceType(ua useragent.UserAgent) string {
	switch {
	case ua.Mobile:
		return "mobile"
	case ua.Tablet:
		return "tablet"
	default:
		return "desktop"
	}
}

// visitorHash derives a daily anonymized visitor identifier. The date
// component makes hashes non-linkable across days.
func (t *Tracker) visitorHash(ip, userAgent string) string {
	day := timeNow().UTC().Format("2006-01-02")
	sum := sha256.Sum256([]byte(t.salt + "|" + ip + "|" + userAgent + "|" + day))
	return hex.EncodeToString(sum[:16])
}

func (t *Tracker) insertPageView(view *PageView) error {
	// SQLite-compatible ISO8601 without timezone
	createdAt := view.CreatedAt.UTC().Format("2006-01-02 15:04:05")
	_, err := t.db.Exec(`
		INSERT INTO page_views (
			visitor_hash, path, referrer_domain, country_code,
			browser, os, device_type, language, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, view.VisitorHash, view.Path, view.ReferrerDomain, view.CountryCode,
		view.Browser, view.OS, view.DeviceType, view.Language, createdAt)
	return err
}

// generateRandomSalt generates a random salt for visitor hashing.
func generateRandomSalt() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return hex.EncodeToString([]byte(time.Now().String()))
	}
	return hex.EncodeToString(b)
}

// getRealIP extracts the real client IP from the request. It respects
// X-Real-IP and X-Forwarded-For headers set by reverse proxies.
func getRealIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx > 0 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx > 0 {
		ip = ip[:idx]
	}
	ip = strings.TrimPrefix(ip, "[")
	ip = strings.TrimSuffix(ip, "]")

	return ip
}

// extractReferrerDomain extracts the domain from a referrer URL.
func extractReferrerDomain(referer string) string {
	if referer == "" {
		return ""
	}

	parsed, err := url.Parse(referer)
	if err != nil {
		return ""
	}

	host := parsed.Host
	if idx := strings.LastIndex(host, ":"); idx > 0 {
		host = host[:idx]
	}

	return host
}

// parseAcceptLanguage extracts the primary language code from an
// Accept-Language header.
func parseAcceptLanguage(header string) string {
	if header == "" {
		return ""
	}

	parts := strings.Split(header, ",")
	first := strings.TrimSpace(parts[0])

	if idx := strings.Index(first, ";"); idx > 0 {
		first = first[:idx]
	}
	if idx := strings.Index(first, "-"); idx > 0 {
		first = first[:idx]
	}

	return strings.ToLower(first)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package geoip provides IP-to-country lookup using a MaxMind
// GeoLite2-Country database.
package geoip

import (
	"fmt"
	"net"
	"sync"

	"github.com/oschwald/maxminddb-golang"
)

var privateCIDRs []*net.IPNet

func init() {
	for _, block := range []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"fc00::/7",  // IPv6 unique local
		"fe80::/10", // IPv6 link-local
	} {
		if _, cidr, err := net.ParseCIDR(block); err == nil {
			privateCIDRs = append(privateCIDRs, cidr)
		}
	}
}

// Lookup resolves IP addresses to 2-letter country codes. A Lookup with
// no database loaded still works, it just returns empty codes. That
// keeps visitor tracking functional when no GeoLite2 file is deployed.
type Lookup struct {
	db *maxminddb.Reader
	mu sync.RWMutex
}

type geoRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

// NewLookup creates a GeoIP lookup. dbPath may be empty to disable
// database lookups.
func NewLookup(dbPath string) (*Lookup, error) {
	g := &Lookup{}

	if dbPath == "" {
		return g, nil
	}

	db, err := maxminddb.Open(dbPath)
	if err != nil {
		return g, fmt.Errorf("opening GeoIP database: %w", err)
	}
	g.db = db
	return g, nil
}

// LookupCountry returns the 2-letter ISO country code for an IP
// address, "LOCAL" for private and loopback addresses, and "" when the
// country cannot be determined.
func (g *Lookup) LookupCountry(ip string) string {
	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return ""
	}

	if parsedIP.IsLoopback() || isPrivateIP(parsedIP) {
		return "LOCAL"
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.db == nil {
		return ""
	}

	var record geoRecord
	if err := g.db.Lookup(parsedIP, &record); err != nil {
		return ""
	}
	return record.Country.ISOCode
}

// IsEnabled reports whether a database is loaded.
func (g *Lookup) IsEnabled() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.db != nil
}

// Close closes the GeoIP database.
func (g *Lookup) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db != nil {
		err := g.db.Close()
		g.db = nil
		return err
	}
	return nil
}

func isPrivateIP(ip net.IP) bool {
	for _, cidr := range privateCIDRs {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}

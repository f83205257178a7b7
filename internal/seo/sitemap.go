// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo provides sitemap and robots.txt generation.
package seo

import (
	"encoding/xml"
	"time"

	"github.com/afrokokoroot/site/internal/model"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Valid change frequency values.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
	ChangeFreqYearly  ChangeFreq = "yearly"
)

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapBuilder builds sitemap XML from site content.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a new sitemap builder.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: siteURL,
		urls:    make([]SitemapURL, 0),
	}
}

// AddHomepage adds the homepage to the sitemap.
func (b *SitemapBuilder) AddHomepage() {
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL,
		ChangeFreq: ChangeFreqDaily,
		Priority:   "1.0",
	})
}

// AddStatic adds a static page path to the sitemap.
func (b *SitemapBuilder) AddStatic(path string) {
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL + path,
		ChangeFreq: ChangeFreqMonthly,
		Priority:   "0.6",
	})
}

// AddEvents adds event detail pages to the sitemap.
func (b *SitemapBuilder) AddEvents(events []model.Event) {
	for _, e := range events {
		b.urls = append(b.urls, SitemapURL{
			Loc:        b.siteURL + "/events/" + e.Slug,
			ChangeFreq: ChangeFreqWeekly,
			Priority:   "0.8",
		})
	}
}

// AddPrograms adds program detail pages to the sitemap.
func (b *SitemapBuilder) AddPrograms(programs []model.Program) {
	for _, p := range programs {
		b.urls = append(b.urls, SitemapURL{
			Loc:        b.siteURL + "/programs/" + p.Slug,
			ChangeFreq: ChangeFreqMonthly,
			Priority:   "0.7",
		})
	}
}

// AddBlogPosts adds blog post pages to the sitemap.
func (b *SitemapBuilder) AddBlogPosts(posts []model.BlogPost) {
	for _, p := range posts {
		url := SitemapURL{
			Loc:        b.siteURL + "/blog/" + p.Slug,
			ChangeFreq: ChangeFreqMonthly,
			Priority:   "0.7",
		}
		if t, err := time.Parse("2006-01-02", p.Date); err == nil {
			url.LastMod = t.Format(time.RFC3339)
		}
		b.urls = append(b.urls, url)
	}
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}

// GenerateSitemap builds the full site sitemap from a content document.
func GenerateSitemap(siteURL string, doc model.Document) ([]byte, error) {
	b := NewSitemapBuilder(siteURL)
	b.AddHomepage()
	for _, path := range []string{
		"/about", "/programs", "/events", "/blog",
		"/impact", "/donate", "/get-involved", "/contact",
	} {
		b.AddStatic(path)
	}
	b.AddEvents(doc.Events)
	b.AddPrograms(doc.Programs)
	b.AddBlogPosts(doc.BlogPosts)
	return b.Build()
}

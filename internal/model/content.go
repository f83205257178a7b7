// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the content document schema: the six collections
// persisted in the site's JSON document and the document envelope itself.
package model

// Event is a single foundation event, keyed by slug within the events
// collection. Date and time are display strings, not normalized timestamps.
type Event struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Location    string   `json:"location"`
	Address     string   `json:"address"`
	Price       string   `json:"price"`
	Description string   `json:"description"`
	Highlights  []string `json:"highlights"`
	Image       string   `json:"image,omitempty"`
}

// Program is a long-running foundation program, keyed by slug.
type Program struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Image       string `json:"image,omitempty"`
}

// TeamMember is a staff or board profile, keyed by slug.
type TeamMember struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Bio   string `json:"bio"`
	Image string `json:"image,omitempty"`
}

// BlogPost is a news/blog article, keyed by slug. Content may embed raw
// markup intended for rendering and must be sanitized before output.
type BlogPost struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Date     string `json:"date"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Image    string `json:"image,omitempty"`
	Content  string `json:"content,omitempty"`
}

// Socials holds optional social profile URLs.
type Socials struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
}

// ContactInfo is the singleton contact record. Unlike the keyed
// collections it is updated by shallow merge, never replaced wholesale.
type ContactInfo struct {
	Address string  `json:"address"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Socials Socials `json:"socials"`
}

// ImpactMetric is an unkeyed headline statistic. Value is a display
// string and may carry a suffix (e.g. "500+").
type ImpactMetric struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// Document is the root aggregate persisted as a single JSON file. It is
// always read and written wholesale; callers must read-modify-write.
type Document struct {
	Events        []Event        `json:"events"`
	Programs      []Program      `json:"programs"`
	Team          []TeamMember   `json:"team"`
	ContactInfo   ContactInfo    `json:"contactInfo"`
	ImpactMetrics []ImpactMetric `json:"impactMetrics"`
	BlogPosts     []BlogPost     `json:"blogPosts"`
}

// EmptyDocument returns a document with every collection present but
// empty. It is the read-failure fallback: public pages render from it
// instead of failing.
func EmptyDocument() Document {
	return Document{
		Events:        []Event{},
		Programs:      []Program{},
		Team:          []TeamMember{},
		ImpactMetrics: []ImpactMetric{},
		BlogPosts:     []BlogPost{},
	}
}

// Normalize replaces nil collections with empty ones so a saved document
// always serializes arrays, never null.
func (d *Document) Normalize() {
	if d.Events == nil {
		d.Events = []Event{}
	}
	if d.Programs == nil {
		d.Programs = []Program{}
	}
	if d.Team == nil {
		d.Team = []TeamMember{}
	}
	if d.ImpactMetrics == nil {
		d.ImpactMetrics = []ImpactMetric{}
	}
	if d.BlogPosts == nil {
		d.BlogPosts = []BlogPost{}
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/afrokokoroot/site/internal/render"
)

// Submission is one newsletter signup or contact message, stored as a
// line of JSON in the submissions file.
type Submission struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"` // "newsletter" or "contact"
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// SubscribeHandler records newsletter signups and contact form messages
// in an append-only JSONL file.
type SubscribeHandler struct {
	path     string
	renderer *render.Renderer
	mu       sync.Mutex
}

// NewSubscribeHandler creates a new SubscribeHandler.
func NewSubscribeHandler(path string, renderer *render.Renderer) *SubscribeHandler {
	return &SubscribeHandler{path: path, renderer: renderer}
}

// subscribeRequest is the JSON body of the subscribe endpoint.
type subscribeRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Subscribe handles newsletter signups.
func (h *SubscribeHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, "newsletter")
}

// Contact handles contact form messages.
func (h *SubscribeHandler) Contact(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, "contact")
}

func (h *SubscribeHandler) record(w http.ResponseWriter, r *http.Request, kind string) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	email := strings.TrimSpace(req.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		writeJSONError(w, http.StatusBadRequest, "A valid email address is required")
		return
	}

	sub := Submission{
		ID:        uuid.NewString(),
		Kind:      kind,
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: time.Now().UTC(),
	}

	if err := h.append(sub); err != nil {
		slog.Error("failed to record submission", "kind", kind, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "An error occurred")
		return
	}

	slog.Info("submission recorded", "kind", kind, "id", sub.ID)
	writeJSONSuccess(w, map[string]any{"id": sub.ID})
}

// append writes one submission as a JSON line. The file lock keeps
// concurrent requests from interleaving lines.
func (h *SubscribeHandler) append(sub Submission) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	line, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	_, err = f.Write(append(line, '\n'))
	return err
}

// AdminList renders the admin submissions page.
func (h *SubscribeHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	subs, err := h.List()
	if err != nil {
		slog.Error("failed to read submissions", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := h.renderer.Render(w, r, "admin/submissions", render.TemplateData{
		Title: "Submissions",
		Data:  subs,
	}); err != nil {
		slog.Error("failed to render submissions page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// List reads all submissions, newest last. Used by the admin panel.
func (h *SubscribeHandler) List() ([]Submission, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := os.ReadFile(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Submission{}, nil
		}
		return nil, err
	}

	var subs []Submission
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var sub Submission
		if err := json.Unmarshal([]byte(line), &sub); err != nil {
			slog.Warn("skipping corrupt submission line", "error", err)
			continue
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/classrep/auth"
	"github.com/danielhkuo/classrep/cliparse"
	"github.com/danielhkuo/classrep/election"
	"github.com/danielhkuo/classrep/middleware"
)

type ResultsHandler struct {
	ballots *election.Ballots
	cfg     cliparse.Config
}

func NewResultsHandler(ballots *election.Ballots, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{ballots: ballots, cfg: cfg}
}

// GetResults handles GET /results
// Scores are recomputed from the stored votes on every call.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.ballots.Tally(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

// CreateSnapshot handles POST /admin/snapshots
func (h *ResultsHandler) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	snap, err := h.ballots.Snapshot(r.Context())
	if err != nil {
		writeError(w, err, "Failed to create snapshot")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, snap)
}

// GetSnapshot handles GET /admin/snapshots/{id}
func (h *ResultsHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	snap, err := h.ballots.GetSnapshot(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to get snapshot")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, snap)
}

func (h *ResultsHandler) authorized(w http.ResponseWriter, r *http.Request) bool {
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(auth.AdminScopeResults, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}
	return true
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/classrep/cliparse"
	"github.com/danielhkuo/classrep/election"
	"github.com/danielhkuo/classrep/middleware"
	"github.com/danielhkuo/classrep/models"
)

type RegistrationHandler struct {
	registrar *election.Registrar
	cfg       cliparse.Config
}

func NewRegistrationHandler(registrar *election.Registrar, cfg cliparse.Config) *RegistrationHandler {
	return &RegistrationHandler{registrar: registrar, cfg: cfg}
}

// Register handles POST /register
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	id, err := h.registrar.Register(r.Context(), req.Email, req.FullName, req.ClassLabel)
	if err != nil {
		writeError(w, err, "Registration failed")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		CandidateID: id,
		Message:     "Registration successful",
	})
}

// RequestLink handles POST /registration-links
func (h *RegistrationHandler) RequestLink(w http.ResponseWriter, r *http.Request) {
	var req models.LinkRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	link, err := h.registrar.RequestRegistrationLink(r.Context(), req.Email, middleware.LinkOrigin(r))
	if err != nil {
		writeError(w, err, "Failed to send registration link")
		return
	}

	message := "Registration link sent to your email"
	if !link.EmailSent {
		message = "Registration link generated (email delivery failed, use the link below)"
	}

	middleware.JSONResponse(w, http.StatusOK, linkResponse(link, message))
}

// VerifyToken handles GET /registration-links/{token}
func (h *RegistrationHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "token is required")
		return
	}

	ticket, err := h.registrar.VerifyRegistrationToken(r.Context(), token)
	if err != nil {
		writeError(w, err, "Token verification failed")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RegistrationTokenResponse{
		Email:     ticket.Email,
		ExpiresAt: ticket.ExpiresAt,
	})
}

// Complete handles POST /registration-links/{token}/complete
func (h *RegistrationHandler) Complete(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "token is required")
		return
	}

	var req models.CompleteRegistrationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	id, err := h.registrar.CompleteRegistration(r.Context(), token, req.FullName, req.ClassLabel)
	if err != nil {
		writeError(w, err, "Registration completion failed")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		CandidateID: id,
		Message:     "Registration completed successfully",
	})
}

func linkResponse(link election.Link, message string) models.LinkResponse {
	return models.LinkResponse{
		Link:      link.URL,
		Token:     link.Token,
		ExpiresAt: link.ExpiresAt,
		EmailSent: link.EmailSent,
		Message:   message,
	}
}

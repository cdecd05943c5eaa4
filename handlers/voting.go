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

type VotingHandler struct {
	issuer  *election.Issuer
	ballots *election.Ballots
	cfg     cliparse.Config
}

func NewVotingHandler(issuer *election.Issuer, ballots *election.Ballots, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{issuer: issuer, ballots: ballots, cfg: cfg}
}

// RequestLink handles POST /voting-links
func (h *VotingHandler) RequestLink(w http.ResponseWriter, r *http.Request) {
	var req models.LinkRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	link, err := h.issuer.RequestVotingLink(r.Context(), req.Email, middleware.LinkOrigin(r))
	if err != nil {
		writeError(w, err, "Failed to send voting link")
		return
	}

	message := "Voting link sent to your email"
	if !link.EmailSent {
		message = "Voting link generated (email delivery failed, use the link below)"
	}

	middleware.JSONResponse(w, http.StatusOK, linkResponse(link, message))
}

// VerifyToken handles GET /voting-links/{token}
func (h *VotingHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "token is required")
		return
	}

	ballot, err := h.issuer.VerifyVotingToken(r.Context(), token)
	if err != nil {
		writeError(w, err, "Token verification failed")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VotingTokenResponse{
		ClassLabel:  ballot.ClassLabel,
		VoterName:   ballot.VoterName,
		CandidateID: ballot.CandidateID,
		ExpiresAt:   ballot.ExpiresAt,
	})
}

// ListCandidates handles GET /classes/{class}/candidates
func (h *VotingHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	class := r.PathValue("class")
	if class == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "class is required")
		return
	}

	candidates, err := h.ballots.ListCandidates(r.Context(), class)
	if err != nil {
		writeError(w, err, "Failed to get candidates")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CandidatesResponse{
		ClassLabel: class,
		Candidates: candidates,
	})
}

// SubmitVote handles POST /votes
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	voteID, err := h.ballots.Submit(r.Context(), req)
	if err != nil {
		writeError(w, err, "Failed to submit vote")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVoteResponse{
		VoteID:  voteID,
		Message: "Vote submitted successfully",
	})
}

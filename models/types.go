// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Reason codes offered by the ballot UI. The core stores whatever code it
// is given.
const (
	ReasonLeadership    = "leadership"
	ReasonCommunication = "communication"
	ReasonReliability   = "reliability"
	ReasonExperience    = "experience"
)

// Request types

type RegisterRequest struct {
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	ClassLabel string `json:"class_label"`
}

type LinkRequest struct {
	Email string `json:"email"`
}

type CompleteRegistrationRequest struct {
	FullName   string `json:"full_name"`
	ClassLabel string `json:"class_label"`
}

// Choices are candidate ids as returned by the candidates endpoint
type SubmitVoteRequest struct {
	Token        string `json:"token"`
	FirstChoice  string `json:"first_choice"`
	FirstReason  string `json:"first_reason"`
	SecondChoice string `json:"second_choice"`
	SecondReason string `json:"second_reason"`
}

// Response types

type RegisterResponse struct {
	CandidateID string `json:"candidate_id"`
	Message     string `json:"message"`
}

type LinkResponse struct {
	Link      string    `json:"link"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	EmailSent bool      `json:"email_sent"`
	Message   string    `json:"message"`
}

type RegistrationTokenResponse struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type VotingTokenResponse struct {
	ClassLabel  string    `json:"class_label"`
	VoterName   string    `json:"voter_name"`
	CandidateID string    `json:"candidate_id"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type CandidatesResponse struct {
	ClassLabel string             `json:"class_label"`
	Candidates []CandidateSummary `json:"candidates"`
}

type SubmitVoteResponse struct {
	VoteID  string `json:"vote_id"`
	Message string `json:"message"`
}

// Domain types

// Voter is stored under voter:<key>. It never carries the raw email.
type Voter struct {
	FullName     string     `json:"full_name"`
	ClassLabel   string     `json:"class_label"`
	RegisteredAt time.Time  `json:"registered_at"`
	HasVoted     bool       `json:"has_voted"`
	VotedAt      *time.Time `json:"voted_at,omitempty"`
}

// Candidate is stored under candidate:<key>, same key as the Voter
type Candidate struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	ClassLabel   string    `json:"class_label"`
	RegisteredAt time.Time `json:"registered_at"`
}

type CandidateSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Vote has no reference back to the voter who cast it
type Vote struct {
	ID           string    `json:"id"`
	ClassLabel   string    `json:"class_label"`
	FirstChoice  string    `json:"first_choice"`
	FirstReason  string    `json:"first_reason"`
	SecondChoice string    `json:"second_choice"`
	SecondReason string    `json:"second_reason"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// Result types

type Standing struct {
	CandidateID string `json:"candidate_id"`
	Name        string `json:"name"`
	Score       int    `json:"score"`
	Rank        int    `json:"rank"` // 1-indexed, ties share a rank
}

type ClassResult struct {
	Standings   []Standing `json:"standings"`
	BallotCount int        `json:"ballot_count"`
}

// Results maps class label -> candidate name -> score, plus per-class detail
type Results struct {
	Scores      map[string]map[string]int `json:"results"`
	Classes     map[string]ClassResult    `json:"classes"`
	BallotCount int                       `json:"ballot_count"`
}

type ResultSnapshot struct {
	ID         string    `json:"id"`
	ComputedAt time.Time `json:"computed_at"`
	Results    Results   `json:"results"`
	InputsHash string    `json:"inputs_hash"` // Hash of all vote IDs for verification
	Archived   bool      `json:"archived"`
	ArchiveURI string    `json:"archive_uri,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

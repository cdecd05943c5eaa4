// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest: email, full_name, class_label
  - LinkRequest: email
  - CompleteRegistrationRequest: full_name, class_label
  - SubmitVoteRequest: token, first_choice, first_reason, second_choice, second_reason

# Response Types

Types for JSON responses:

  - RegisterResponse: candidate_id, message
  - LinkResponse: link, token, expires_at, email_sent, message
  - RegistrationTokenResponse: email, expires_at
  - VotingTokenResponse: class_label, voter_name, candidate_id, expires_at
  - CandidatesResponse: class_label, candidates
  - SubmitVoteResponse: vote_id, message
  - Results: results, classes, ballot_count
  - ResultSnapshot: id, computed_at, results, inputs_hash, archived
  - ErrorResponse: error, message

# Domain Types

Records persisted in the key-value store:

  - Voter: name, class, has-voted flag
  - Candidate: created alongside every Voter, same key
  - Vote: class and the two weighted choices, not linked to a voter

Candidates are always referenced by id (the anonymized voter key). Names
are for display only.

# Constants

Reason codes:

	ReasonLeadership    = "leadership"
	ReasonCommunication = "communication"
	ReasonReliability   = "reliability"
	ReasonExperience    = "experience"
*/
package models

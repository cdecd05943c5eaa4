// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the class representative
election API.

# Handler Types

Each handler is a struct holding the election component it drives and the
configuration:

  - RegistrationHandler: direct registration and the email link flow
  - VotingHandler: voting links, candidate lists and ballot submission
  - ResultsHandler: live results and admin snapshots

Handlers are created via constructor functions:

	regHandler := handlers.NewRegistrationHandler(svc.Registrar, cfg)

# Registration Flow

	POST /register                             → Register (direct)
	POST /registration-links                   → RequestLink (emails ?regToken=)
	GET  /registration-links/{token}           → VerifyToken
	POST /registration-links/{token}/complete  → Complete

# Voting Flow

	POST /voting-links              → RequestLink (emails ?token=)
	GET  /voting-links/{token}      → VerifyToken
	GET  /classes/{class}/candidates → ListCandidates
	POST /votes                     → SubmitVote

Links are built on the request's Origin (or Referer) so they point back at
the page that asked for them. A failed email does not fail the request; the
response carries the link and email_sent=false.

# Errors

Election errors map to status codes by kind:

	validation → 400
	not found  → 404
	expired    → 410
	conflict   → 409
	other      → 500 (logged, generic message)

# Snapshots

POST /admin/snapshots and GET /admin/snapshots/{id} require the
X-Admin-Key header. Print the key with:

	classrep -print-admin-key
*/
package handlers

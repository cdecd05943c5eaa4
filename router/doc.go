// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the classrep API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, cfg)

# Endpoints

Operations:

	GET /health  - Liveness
	GET /metrics - Prometheus metrics

Registration (public):

	POST /register                            - Register directly
	POST /registration-links                  - Email a registration link
	GET  /registration-links/{token}          - Check a registration link
	POST /registration-links/{token}/complete - Finish registration

Voting (public, token from the emailed link):

	POST /voting-links               - Email a voting link
	GET  /voting-links/{token}       - Check a voting link
	GET  /classes/{class}/candidates - Classmates to choose from
	POST /votes                      - Submit a ballot

Results:

	GET  /results               - Live scores per class
	POST /admin/snapshots       - Freeze results (X-Admin-Key)
	GET  /admin/snapshots/{id}  - Read a snapshot (X-Admin-Key)

# Handler Initialization

	registrationHandler := handlers.NewRegistrationHandler(svc.Registrar, cfg)
	votingHandler := handlers.NewVotingHandler(svc.Issuer, svc.Ballots, cfg)
	resultsHandler := handlers.NewResultsHandler(svc.Ballots, cfg)

CORS is applied around the mux in main.
*/
package router

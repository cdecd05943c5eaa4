// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/classrep/cliparse"
	"github.com/danielhkuo/classrep/election"
	"github.com/danielhkuo/classrep/handlers"
	"github.com/danielhkuo/classrep/metrics"
	"github.com/danielhkuo/classrep/middleware"
)

func NewRouter(svc *election.Service, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	registrationHandler := handlers.NewRegistrationHandler(svc.Registrar, cfg)
	votingHandler := handlers.NewVotingHandler(svc.Issuer, svc.Ballots, cfg)
	resultsHandler := handlers.NewResultsHandler(svc.Ballots, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", metrics.Handler())

	// Registration (public)
	mux.HandleFunc("POST /register", middleware.WithLogging(registrationHandler.Register))
	mux.HandleFunc("POST /registration-links", middleware.WithLogging(registrationHandler.RequestLink))
	mux.HandleFunc("GET /registration-links/{token}", middleware.WithLogging(registrationHandler.VerifyToken))
	mux.HandleFunc("POST /registration-links/{token}/complete", middleware.WithLogging(registrationHandler.Complete))

	// Voting (public, token carried in the link)
	mux.HandleFunc("POST /voting-links", middleware.WithLogging(votingHandler.RequestLink))
	mux.HandleFunc("GET /voting-links/{token}", middleware.WithLogging(votingHandler.VerifyToken))
	mux.HandleFunc("GET /classes/{class}/candidates", middleware.WithLogging(votingHandler.ListCandidates))
	mux.HandleFunc("POST /votes", middleware.WithLogging(votingHandler.SubmitVote))

	// Results
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("POST /admin/snapshots", middleware.WithLogging(resultsHandler.CreateSnapshot))
	mux.HandleFunc("GET /admin/snapshots/{id}", middleware.WithLogging(resultsHandler.GetSnapshot))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("classrep API v1"))
	})

	return mux
}

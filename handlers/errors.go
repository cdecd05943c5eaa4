// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/classrep/election"
	"github.com/danielhkuo/classrep/middleware"
)

// StatusFor maps an election error to its HTTP status
func StatusFor(err error) int {
	switch election.KindOf(err) {
	case election.KindValidation:
		return http.StatusBadRequest
	case election.KindNotFound:
		return http.StatusNotFound
	case election.KindExpired:
		return http.StatusGone
	case election.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with the status for err. Internal failures are logged
// and reported as fallback so store details never reach the client.
func writeError(w http.ResponseWriter, err error, fallback string) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error(fallback, "error", err)
		middleware.ErrorResponse(w, status, fallback)
		return
	}
	middleware.ErrorResponse(w, status, err.Error())
}

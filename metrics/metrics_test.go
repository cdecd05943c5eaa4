// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(Rejections.WithLabelValues("already_voted"))
	Rejections.WithLabelValues("already_voted").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(Rejections.WithLabelValues("already_voted")))

	before = testutil.ToFloat64(VotesRecorded)
	VotesRecorded.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(VotesRecorded))
}

func TestHandler(t *testing.T) {
	LinksIssued.WithLabelValues(LinkVoting).Inc()

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `classrep_links_issued_total{kind="voting"}`)
	assert.Contains(t, string(body), "classrep_votes_recorded_total")
}

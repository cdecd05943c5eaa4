// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "classrep"

// Label values
const (
	MethodDirect = "direct"
	MethodLink   = "link"

	LinkRegistration = "registration"
	LinkVoting       = "voting"

	ResultSent   = "sent"
	ResultFailed = "failed"
)

var (
	Registrations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "The total number of completed voter registrations.",
	},
		[]string{"method"},
	)
	LinksIssued = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "links_issued_total",
		Help:      "The total number of registration and voting links issued.",
	},
		[]string{"kind"},
	)
	VotesRecorded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_recorded_total",
		Help:      "The total number of votes recorded.",
	})
	Rejections = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rejections_total",
		Help:      "The total number of rejected operations by reason.",
	},
		[]string{"reason"},
	)
	Notifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "The total number of notification attempts by result.",
	},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(Registrations)
	prometheus.MustRegister(LinksIssued)
	prometheus.MustRegister(VotesRecorded)
	prometheus.MustRegister(Rejections)
	prometheus.MustRegister(Notifications)
}

// Handler serves the default registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.Handler()
}

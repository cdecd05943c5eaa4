// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics holds the Prometheus counters for registrations, links,
// votes, rejections and notifications, served at GET /metrics.
package metrics

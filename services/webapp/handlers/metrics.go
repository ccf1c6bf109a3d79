// Copyright (C) 2026 textisbeautiful.net
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	projectsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tib_projects_created_total",
		Help: "Analytics projects created from submissions.",
	})
	statusPollsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tib_status_polls_total",
		Help: "Status polls received.",
	})
	mapsCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tib_maps_completed_total",
		Help: "Concept maps materialized and returned.",
	})
	failuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tib_failures_total",
		Help: "Requests that ended in a server-side failure.",
	})
)

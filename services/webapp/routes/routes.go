// Copyright (C) 2026 textisbeautiful.net
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package routes wires the tib web API onto a Gin engine.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/textisbeautiful/tib/services/feedback"
	"github.com/textisbeautiful/tib/services/mailer"
	"github.com/textisbeautiful/tib/services/webapp/handlers"
)

// Deps carries everything the handlers need. Built once in main.
type Deps struct {
	Concept  handlers.ConceptService
	Source   handlers.TextSource
	Sender   mailer.Sender
	Feedback *feedback.Store
	TextRoot string
}

func SetupRoutes(router *gin.Engine, deps Deps) {
	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")
	{
		v1.POST("/maps", handlers.CreateMap(deps.Concept, deps.Source, deps.TextRoot))
		v1.GET("/maps/:id/status", handlers.MapStatus(deps.Concept))
		v1.POST("/contact", handlers.Contact(deps.Sender))
		v1.POST("/feedback", handlers.Feedback(deps.Feedback))
	}
}

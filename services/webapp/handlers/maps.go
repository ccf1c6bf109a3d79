// Copyright (C) 2026 textisbeautiful.net
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package handlers holds the Gin handlers for the tib web API.
package handlers

import (
	"context"
	"crypto/md5"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/textisbeautiful/tib/pkg/validation"
	"github.com/textisbeautiful/tib/services/concept"
	"github.com/textisbeautiful/tib/services/concept/markers"
	"github.com/textisbeautiful/tib/services/wikitext"
)

// ConceptService is the slice of the lifecycle manager the web layer uses.
// Satisfied by *concept.Service; tests substitute a mock.
type ConceptService interface {
	CreateProject(ctx context.Context, name, doc, mimeType string) (*concept.Project, error)
	ProjectStatus(ctx context.Context, url string) (*concept.ProjectStatus, error)
	AdvanceStage(ctx context.Context, status *concept.ProjectStatus) (*concept.ProjectStatus, error)
	MaterializeMap(ctx context.Context, projectURL string) (markersURL, cookie string, err error)
	FetchMarkers(ctx context.Context, markersURL, cookie string) ([]byte, error)
	DeleteProject(ctx context.Context, url string) error
}

// TextSource fetches article text for a submitted URL. Satisfied by
// *wikitext.Extractor.
type TextSource interface {
	ArticleText(ctx context.Context, articleURL string) (string, error)
}

// CreateMapRequest is the submission body. Exactly one of Text and URL is
// expected; URL wins when both are present.
type CreateMapRequest struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// CreateMap accepts a text or Wikipedia URL submission, stages the text on
// disk and creates the remote analytics project. The response id is the
// URL-safe base64 encoding of the project href and is the handle for all
// subsequent status polls.
func CreateMap(svc ConceptService, source TextSource, textRoot string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateMapRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		text := req.Text
		if req.URL != "" {
			articleURL, err := wikitext.NormalizeArticleURL(req.URL)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Only Wikipedia article URLs are supported"})
				return
			}
			text, err = source.ArticleText(c.Request.Context(), articleURL)
			if err != nil {
				slog.Error("Failed to extract article text", "url", articleURL, "error", err)
				c.JSON(http.StatusBadGateway, gin.H{"error": "Couldn't fetch the article text"})
				return
			}
		}
		if err := validation.ValidateText(text); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		name := fmt.Sprintf("%x", md5.Sum([]byte(fmt.Sprintf("%s:%s", time.Now(), text))))
		if err := writeTextArtifact(textRoot, name, text); err != nil {
			slog.Error("Failed to stage submitted text", "name", name, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Couldn't store the submitted text"})
			return
		}

		project, err := svc.CreateProject(c.Request.Context(), name, name+".txt", "text/plain")
		if err != nil {
			slog.Error("Failed to create analytics project", "name", name, "error", err)
			failuresTotal.Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"error": queryProblemMessage})
			return
		}
		projectsCreatedTotal.Inc()

		c.JSON(http.StatusCreated, gin.H{
			"id": base64.URLEncoding.EncodeToString([]byte(project.Href)),
		})
	}
}

func writeTextArtifact(textRoot, name, text string) error {
	if err := os.MkdirAll(textRoot, 0750); err != nil {
		return fmt.Errorf("failed to create the text root %s: %w", textRoot, err)
	}
	return os.WriteFile(filepath.Join(textRoot, name+".txt"), []byte(text), 0640)
}

const queryProblemMessage = "There was a problem with your query. Please try again."

type statusResponse struct {
	Message   string          `json:"message"`
	Progress  int             `json:"progress"`
	Completed bool            `json:"completed"`
	Markers   *markersPayload `json:"markers,omitempty"`
}

type markersPayload struct {
	Concepts   []*markers.Entity        `json:"concepts"`
	Themes     []markers.Theme          `json:"themes"`
	Prominence []markers.ProminenceEdge `json:"iprom"`
	NumBlocks  int                      `json:"numBlocks"`
}

// MapStatus polls the remote pipeline for one run. Each poll advances the
// stage machine when it is parked at a checkpoint. Once the terminal stage is
// reached the handler materializes the map, decodes the markers, deletes the
// project and returns the completed payload; the run id is dead afterwards.
func MapStatus(svc ConceptService) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectURL, err := base64.URLEncoding.DecodeString(c.Param("id"))
		if err != nil || len(projectURL) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid map id"})
			return
		}
		ctx := c.Request.Context()
		statusPollsTotal.Inc()

		status, err := svc.ProjectStatus(ctx, string(projectURL))
		if err == nil {
			status, err = svc.AdvanceStage(ctx, status)
		}
		if err != nil {
			var resErr *concept.ResourceError
			if errors.As(err, &resErr) {
				slog.Error("Status poll hit a resource error", "error", err)
			} else {
				slog.Error("Status poll failed", "error", err)
			}
			failuresTotal.Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"error": queryProblemMessage})
			return
		}

		stage := status.Stage.Name
		if strings.EqualFold(status.Stage.State, "error") {
			slog.Error("Remote pipeline reported a failure", "stage", stage, "message", status.Message)
			failuresTotal.Inc()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": fmt.Sprintf("Processing failed during stage %s: %s", stage, status.Message),
			})
			return
		}

		if !strings.EqualFold(stage, "MAP") {
			c.JSON(http.StatusOK, statusResponse{
				Message:  fmt.Sprintf("Running stage %s: %s", stage, status.Message),
				Progress: concept.Progress(stage),
			})
			return
		}

		payload, err := completeRun(ctx, svc, status.ProjectHref)
		if err != nil {
			slog.Error("Failed to materialize the concept map", "project", status.ProjectHref, "error", err)
			failuresTotal.Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"error": queryProblemMessage})
			return
		}
		mapsCompletedTotal.Inc()
		c.JSON(http.StatusOK, statusResponse{
			Message:   "Done",
			Progress:  concept.Progress(stage),
			Completed: true,
			Markers:   payload,
		})
	}
}

// completeRun turns a finished project into the response payload. The delete
// happens only after a successful decode so a failed materialization can be
// retried on the next poll.
func completeRun(ctx context.Context, svc ConceptService, projectURL string) (*markersPayload, error) {
	markersURL, cookie, err := svc.MaterializeMap(ctx, projectURL)
	if err != nil {
		return nil, err
	}
	raw, err := svc.FetchMarkers(ctx, markersURL, cookie)
	if err != nil {
		return nil, err
	}
	graph, err := markers.Decode(raw)
	if err != nil {
		return nil, err
	}
	if err := svc.DeleteProject(ctx, projectURL); err != nil {
		// The map decoded fine; a leaked remote project is an ops problem,
		// not the visitor's.
		slog.Warn("Failed to delete completed project", "project", projectURL, "error", err)
	}
	return buildPayload(graph), nil
}

func buildPayload(graph *markers.ConceptGraph) *markersPayload {
	payload := &markersPayload{
		Concepts:   make([]*markers.Entity, 0, len(graph.Entities)),
		Themes:     make([]markers.Theme, 0, len(graph.Themes)),
		Prominence: graph.Prominence,
		NumBlocks:  graph.BlockCount,
	}
	for _, entity := range graph.Entities {
		payload.Concepts = append(payload.Concepts, entity)
	}
	sort.Slice(payload.Concepts, func(i, j int) bool {
		return payload.Concepts[i].ID < payload.Concepts[j].ID
	})
	for _, theme := range graph.Themes {
		payload.Themes = append(payload.Themes, theme)
	}
	sort.Slice(payload.Themes, func(i, j int) bool {
		return payload.Themes[i].ID < payload.Themes[j].ID
	})
	return payload
}

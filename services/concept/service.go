// Copyright (C) 2026 textisbeautiful.net
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package concept

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

// terminalStage is the pseudo-stage the remote reports once the analysis
// pipeline has run to completion and a map can be materialized.
const terminalStage = "MAP"

// Service is the project lifecycle manager. One instance serves the whole
// process; it holds no per-project state, so concurrent polls for different
// projects never contend.
type Service struct {
	client   *Client
	settings *Settings
}

// NewService wires a lifecycle manager around the analytics settings.
// Pass a nil httpClient outside of tests.
func NewService(settings *Settings, httpClient HTTPClient) *Service {
	return &Service{
		client:   NewClient(settings, httpClient),
		settings: settings,
	}
}

// Settings returns the configuration the service was built with.
func (s *Service) Settings() *Settings {
	return s.settings
}

// CreateProject creates a remote project bound to the named data-folder
// document and kicks off processing. The caller owns the returned project
// and is responsible for eventually deleting it.
//
// The sequence is fixed: resolve both folders, create the project, overwrite
// its configuration, attach the document, then nudge the status once so the
// pipeline starts running.
func (s *Service) CreateProject(ctx context.Context, name, doc, mimeType string) (*Project, error) {
	ctx, span := tracer.Start(ctx, "Service.CreateProject")
	defer span.End()
	span.SetAttributes(attribute.String("project.name", name))

	projectFolder, err := s.ResolveUserProjectFolder(ctx)
	if err != nil {
		return nil, err
	}
	dataFolder, err := s.ResolveDataFolder(ctx)
	if err != nil {
		return nil, err
	}

	project, err := s.client.CreateProject(ctx, projectFolder.Href, name)
	if err != nil {
		return nil, err
	}
	slog.Info("Created analytics project", "name", name, "href", project.Href)

	if err := s.client.WriteProjectConfig(ctx, project.Href); err != nil {
		return nil, err
	}

	if len(project.Docsets) == 0 {
		return nil, fmt.Errorf("project %s has no docset", project.Href)
	}
	fileHref := strings.TrimSuffix(dataFolder.Href, "/") + "/" + doc
	if err := s.client.AttachDocument(ctx, project.Docsets[0].Href, doc, fileHref, mimeType); err != nil {
		return nil, err
	}

	if len(project.Statuses) == 0 {
		return nil, fmt.Errorf("project %s has no status resource", project.Href)
	}
	status, err := s.client.Status(ctx, project.Statuses[0].Href)
	if err != nil {
		return nil, err
	}
	status.ProjectHref = project.Href
	if _, err := s.AdvanceStage(ctx, status); err != nil {
		return nil, err
	}

	return project, nil
}

// AdvanceStage nudges the remote pipeline past its current checkpoint. The
// remote stage machine parks with state "next" at each checkpoint and will
// not progress on polling alone; writing "<currentStage>:MAP"/"active" tells
// it to run through to the terminal stage. When the state is anything else,
// or the pipeline already reached MAP, nothing is written. Either way the
// status is re-fetched so the caller always sees the remote's latest view.
func (s *Service) AdvanceStage(ctx context.Context, status *ProjectStatus) (*ProjectStatus, error) {
	stage := status.Stage.Name
	state := status.Stage.State
	if strings.EqualFold(state, "next") && !strings.EqualFold(stage, terminalStage) {
		return s.client.PushStageTransition(ctx, status, stage+":"+terminalStage, "active")
	}
	fresh, err := s.client.Status(ctx, status.Href)
	if err != nil {
		return nil, err
	}
	fresh.ProjectHref = status.ProjectHref
	return fresh, nil
}

// ProjectStatus fetches the project at url and returns its first status.
// This is the single boundary where transport failures are translated into
// ResourceError: polling is the one path a user retries by hand, so it gets
// the "try again" failure kind instead of a bare transport error.
func (s *Service) ProjectStatus(ctx context.Context, url string) (*ProjectStatus, error) {
	project, err := s.client.Project(ctx, url)
	if err != nil {
		return nil, &ResourceError{Msg: fmt.Sprintf("couldn't fetch project using the URL %s", url), Err: err}
	}
	if len(project.Statuses) == 0 {
		return nil, &ResourceError{Msg: fmt.Sprintf("project %s has no status resource", url)}
	}
	status, err := s.client.Status(ctx, project.Statuses[0].Href)
	if err != nil {
		return nil, &ResourceError{Msg: fmt.Sprintf("couldn't fetch project using the URL %s", url), Err: err}
	}
	status.ProjectHref = project.Href
	return status, nil
}

// DeleteProject removes the remote project and the matching local text
// artifact. Callers must invoke it at most once per project, after the map
// has been materialized and decoded; deleting an already-deleted project
// fails loudly with the remote's 4xx.
func (s *Service) DeleteProject(ctx context.Context, url string) error {
	project, err := s.client.Project(ctx, url)
	if err != nil {
		return err
	}

	textPath := filepath.Join(s.settings.TextRoot, project.Name+".txt")
	if _, err := os.Stat(textPath); err == nil {
		if err := os.Remove(textPath); err != nil {
			slog.Warn("Failed to remove local text artifact", "path", textPath, "error", err)
		}
	}

	if err := s.client.Delete(ctx, url); err != nil {
		return err
	}
	slog.Info("Deleted analytics project", "href", url)
	return nil
}

// FetchMarkers exposes the raw markers fetch for the web layer.
func (s *Service) FetchMarkers(ctx context.Context, markersURL, cookie string) ([]byte, error) {
	return s.client.FetchMarkers(ctx, markersURL, cookie)
}

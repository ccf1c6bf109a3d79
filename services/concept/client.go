// Copyright (C) 2026 textisbeautiful.net
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package concept drives a remote text-analytics project from creation
// through its processing stages to a finished concept map. All remote calls
// are single-attempt blocking round trips; the remote service is the sole
// source of truth and nothing is cached locally.
package concept

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("tib.concept")

// HTTPClient allows injecting mock HTTP clients for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Settings is the process-wide configuration for the analytics service.
// It is built once at startup and passed by reference; package code never
// reads ambient global state.
type Settings struct {
	// BaseURL is the service root, e.g. "https://analytics.example.com/lex".
	BaseURL string

	// Username and Password are attached to every call as HTTP Basic
	// credentials. Username doubles as the per-user project folder name.
	Username string
	Password string

	// TopProjectFolder is the name of the top-level project folder.
	TopProjectFolder string

	// TopDataFolder and DataFolder name the two-level data folder path
	// holding the uploaded text documents.
	TopDataFolder string
	DataFolder    string

	// ProjectConfigXML is the fixed configuration payload written over every
	// freshly created project.
	ProjectConfigXML string

	// ThemeSize is the theme sizing parameter applied when the concept map
	// is materialized.
	ThemeSize int

	// TextRoot is the local directory holding submitted text artifacts.
	TextRoot string
}

// Client performs authenticated HTTP calls against the analytics service and
// decodes the responses into typed resources.
type Client struct {
	httpClient HTTPClient
	settings   *Settings
}

// NewClient builds a Client around the given settings. A nil httpClient gets
// a default with a 60s timeout; remote analysis fetches can be slow.
func NewClient(settings *Settings, httpClient HTTPClient) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	settings.BaseURL = strings.TrimSuffix(settings.BaseURL, "/")
	return &Client{httpClient: httpClient, settings: settings}
}

// do issues a single request with Basic credentials attached and returns the
// response and its fully read body. Non-2xx statuses are returned as errors
// except where the caller opts out (markers fetch inspects the status itself).
func (c *Client) do(ctx context.Context, method, rawURL string, body io.Reader, headers map[string]string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s request for %s: %w", method, rawURL, err)
	}
	req.SetBasicAuth(c.settings.Username, c.settings.Password)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s failed: %w", method, rawURL, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, fmt.Errorf("failed to read response from %s: %w", rawURL, err)
	}
	return resp, respBody, nil
}

// get fetches a resource body, treating any non-200 status as an error.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	resp, body, err := c.do(ctx, http.MethodGet, rawURL, nil, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s returned status %d: %s", rawURL, resp.StatusCode, string(body))
	}
	return body, nil
}

// postForm posts url-encoded parameters and returns the response and body.
func (c *Client) postForm(ctx context.Context, rawURL string, params url.Values, headers map[string]string) (*http.Response, []byte, error) {
	if headers == nil {
		headers = map[string]string{}
	}
	headers["Content-Type"] = "application/x-www-form-urlencoded"
	resp, body, err := c.do(ctx, http.MethodPost, rawURL, strings.NewReader(params.Encode()), headers)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, body, fmt.Errorf("POST %s returned status %d: %s", rawURL, resp.StatusCode, string(body))
	}
	return resp, body, nil
}

// Instance fetches the service root.
func (c *Client) Instance(ctx context.Context) (*Instance, error) {
	body, err := c.get(ctx, c.settings.BaseURL)
	if err != nil {
		return nil, err
	}
	return decodeInstance(body)
}

// Folder fetches a folder resource by href.
func (c *Client) Folder(ctx context.Context, href string) (*Folder, error) {
	body, err := c.get(ctx, href)
	if err != nil {
		return nil, err
	}
	return decodeFolder(body)
}

// Project fetches a project resource by href.
func (c *Client) Project(ctx context.Context, href string) (*Project, error) {
	body, err := c.get(ctx, href)
	if err != nil {
		return nil, err
	}
	return decodeProject(body)
}

// Status fetches a project-status resource by href.
func (c *Client) Status(ctx context.Context, href string) (*ProjectStatus, error) {
	body, err := c.get(ctx, href)
	if err != nil {
		return nil, err
	}
	return decodeProjectStatus(body)
}

// CreateProject creates a named project under the given folder and decodes
// the created resource from the response body.
func (c *Client) CreateProject(ctx context.Context, folderHref, name string) (*Project, error) {
	ctx, span := tracer.Start(ctx, "Client.CreateProject")
	defer span.End()
	span.SetAttributes(attribute.String("project.name", name))

	_, body, err := c.postForm(ctx, folderHref, url.Values{"name": {name}}, nil)
	if err != nil {
		return nil, err
	}
	return decodeProject(body)
}

// WriteProjectConfig replaces the project's configuration with the fixed
// payload from settings. The service only accepts PUT through the override
// header on this resource.
func (c *Client) WriteProjectConfig(ctx context.Context, projectHref string) error {
	confHref := projectHref + "_/project-configuration"
	headers := map[string]string{
		"Content-Type":           "text/xml",
		"X-HTTP-Method-Override": "PUT",
	}
	resp, body, err := c.do(ctx, http.MethodPost, confHref, strings.NewReader(c.settings.ProjectConfigXML), headers)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("config write to %s returned status %d: %s", confHref, resp.StatusCode, string(body))
	}
	return nil
}

// AttachDocument registers a data-folder file with the project's docset.
func (c *Client) AttachDocument(ctx context.Context, docsetHref, name, fileHref, mimeType string) error {
	params := url.Values{
		"name":   {name},
		"source": {fileHref},
	}
	if mimeType != "" {
		params.Set("mimetype", mimeType)
	}
	_, _, err := c.postForm(ctx, docsetHref, params, nil)
	return err
}

// PushStageTransition writes a new stage/state pair to the status resource
// and returns the freshly fetched status. The status passed in is never
// mutated; the remote copy is the only one that changes.
func (c *Client) PushStageTransition(ctx context.Context, status *ProjectStatus, stagePair, state string) (*ProjectStatus, error) {
	headers := map[string]string{"X-HTTP-Method-Override": "PUT"}
	params := url.Values{
		"stage": {stagePair},
		"state": {state},
	}
	if _, _, err := c.postForm(ctx, status.Href, params, headers); err != nil {
		return nil, err
	}
	slog.Debug("Pushed stage transition", "href", status.Href, "stage", stagePair, "state", state)
	fresh, err := c.Status(ctx, status.Href)
	if err != nil {
		return nil, err
	}
	fresh.ProjectHref = status.ProjectHref
	return fresh, nil
}

// Delete removes the remote resource at href.
func (c *Client) Delete(ctx context.Context, href string) error {
	resp, body, err := c.do(ctx, http.MethodDelete, href, nil, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("DELETE %s returned status %d: %s", href, resp.StatusCode, string(body))
	}
	return nil
}

// FetchMarkers retrieves the raw markers XML for a materialized map. The
// service binds map reads to the session that created the map, so the
// Set-Cookie value captured during materialization must be replayed here.
// A non-200 response yields ErrMarkersUnavailable rather than empty content
// so callers cannot mistake a dead session for "not ready yet".
func (c *Client) FetchMarkers(ctx context.Context, markersURL, cookie string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "Client.FetchMarkers")
	defer span.End()

	resp, body, err := c.do(ctx, http.MethodGet, markersURL, nil, map[string]string{"Cookie": cookie})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		slog.Warn("Markers fetch returned non-200", "url", markersURL, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: GET %s returned status %d", ErrMarkersUnavailable, markersURL, resp.StatusCode)
	}
	return body, nil
}

// Copyright (C) 2026 textisbeautiful.net
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package concept

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

func TestMaterializeMap(t *testing.T) {
	mock := newRoutedClient()
	mock.route(http.MethodPost, "http://lex/projects/p1_/cluster/markersets/default/copy", mockResponse{
		status: http.StatusCreated,
		headers: map[string]string{
			"Location":   "http://lex/maps/m1",
			"Set-Cookie": "session=s1",
		},
	})
	mock.route(http.MethodPost, "http://lex/maps/m1/cluster", mockResponse{status: http.StatusNoContent})
	svc := NewService(testSettings(), mock)

	markersURL, cookie, err := svc.MaterializeMap(context.Background(), "http://lex/projects/p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if markersURL != "http://lex/maps/m1/map" {
		t.Errorf("unexpected markers URL %s", markersURL)
	}
	if cookie != "session=s1" {
		t.Errorf("unexpected cookie %s", cookie)
	}

	// The copy names the markerset and the cluster call sizes the themes
	// under the captured session.
	if !strings.Contains(mock.bodies[0], "name=%40map1") {
		t.Errorf("copy body should name the markerset, got %q", mock.bodies[0])
	}
	clusterReq := mock.requests[1]
	if clusterReq.Header.Get("Cookie") != "session=s1" {
		t.Error("cluster call must replay the session cookie")
	}
	if !strings.Contains(mock.bodies[1], "themesize=33") {
		t.Errorf("cluster body should carry the theme size, got %q", mock.bodies[1])
	}
	if !strings.Contains(mock.bodies[1], "themeonly=true") {
		t.Errorf("cluster body should request themes only, got %q", mock.bodies[1])
	}
}

func TestMaterializeMapMissingLocation(t *testing.T) {
	mock := newRoutedClient()
	mock.route(http.MethodPost, "http://lex/projects/p1_/cluster/markersets/default/copy", mockResponse{
		status:  http.StatusCreated,
		headers: map[string]string{"Set-Cookie": "session=s1"},
	})
	svc := NewService(testSettings(), mock)

	_, _, err := svc.MaterializeMap(context.Background(), "http://lex/projects/p1")
	if err == nil || !strings.Contains(err.Error(), "location") {
		t.Fatalf("expected a missing-location error, got %v", err)
	}
}

func TestMaterializeMapMissingCookie(t *testing.T) {
	mock := newRoutedClient()
	mock.route(http.MethodPost, "http://lex/projects/p1_/cluster/markersets/default/copy", mockResponse{
		status:  http.StatusCreated,
		headers: map[string]string{"Location": "http://lex/maps/m1"},
	})
	svc := NewService(testSettings(), mock)

	_, _, err := svc.MaterializeMap(context.Background(), "http://lex/projects/p1")
	if err == nil || !strings.Contains(err.Error(), "cookie") {
		t.Fatalf("expected a missing-cookie error, got %v", err)
	}
}

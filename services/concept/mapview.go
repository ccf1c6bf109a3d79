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
	"net/url"
	"strconv"
)

// mapName is the fixed name the cloned markerset is created under. The
// service scopes it to the session, so the constant never collides across
// concurrent projects.
const mapName = "@map1"

// MaterializeMap asks the service to clone the default markerset for a
// finished project and size its themes, yielding the markers URL and the
// session cookie that must accompany every read of it.
//
// Both calls are single attempts. This path only runs after the remote has
// reported completion, so a transport failure here is a plain server error
// and propagates unwrapped.
func (s *Service) MaterializeMap(ctx context.Context, projectURL string) (markersURL, cookie string, err error) {
	ctx, span := tracer.Start(ctx, "Service.MaterializeMap")
	defer span.End()

	copyURL := projectURL + "_/cluster/markersets/default/copy"
	resp, _, err := s.client.postForm(ctx, copyURL, url.Values{"name": {mapName}}, nil)
	if err != nil {
		return "", "", err
	}

	mapURL := resp.Header.Get("Location")
	if mapURL == "" {
		return "", "", fmt.Errorf("map copy response from %s carried no location header", copyURL)
	}
	cookie = resp.Header.Get("Set-Cookie")
	if cookie == "" {
		return "", "", fmt.Errorf("map copy response from %s carried no session cookie", copyURL)
	}

	params := url.Values{
		"themeonly": {"true"},
		"themesize": {strconv.Itoa(s.settings.ThemeSize)},
	}
	headers := map[string]string{"Cookie": cookie}
	if _, _, err := s.client.postForm(ctx, mapURL+"/cluster", params, headers); err != nil {
		return "", "", err
	}

	return mapURL + "/map", cookie, nil
}

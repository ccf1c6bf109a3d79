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
)

// Folder topology is configuration, not data: the folders are provisioned
// out of band and this system never creates them. A miss is therefore a
// ResourceError, not something to retry.

// ResolveUserProjectFolder walks root -> top-level project folder -> the
// per-user subfolder named after the credential identity. Children are
// scanned linearly; the first exact name match wins.
func (s *Service) ResolveUserProjectFolder(ctx context.Context) (*Folder, error) {
	inst, err := s.client.Instance(ctx)
	if err != nil {
		return nil, err
	}

	var top *Folder
	for _, link := range inst.ProjectFolders {
		folder, err := s.client.Folder(ctx, link.Href)
		if err != nil {
			return nil, err
		}
		if folder.Name == s.settings.TopProjectFolder {
			top = folder
			break
		}
	}
	if top == nil {
		return nil, &ResourceError{Msg: fmt.Sprintf("couldn't find the top level project folder %q", s.settings.TopProjectFolder)}
	}

	for _, link := range top.ProjectFolders {
		folder, err := s.client.Folder(ctx, link.Href)
		if err != nil {
			return nil, err
		}
		if folder.Name == s.settings.Username {
			return folder, nil
		}
	}
	return nil, &ResourceError{Msg: fmt.Sprintf("couldn't find the user project folder %q", s.settings.Username)}
}

// ResolveDataFolder walks root -> top-level data folder -> the configured
// data subfolder. Unlike the project side, the leaf match is done on the
// child links directly; the service includes names on data-folder links.
func (s *Service) ResolveDataFolder(ctx context.Context) (*Folder, error) {
	inst, err := s.client.Instance(ctx)
	if err != nil {
		return nil, err
	}

	var top *Folder
	for _, link := range inst.DataFolders {
		folder, err := s.client.Folder(ctx, link.Href)
		if err != nil {
			return nil, err
		}
		if folder.Name == s.settings.TopDataFolder {
			top = folder
			break
		}
	}
	if top == nil {
		return nil, &ResourceError{Msg: fmt.Sprintf("couldn't find the top level data folder %q", s.settings.TopDataFolder)}
	}

	for _, link := range top.DataFolders {
		if link.Name == s.settings.DataFolder {
			return &Folder{Href: link.Href, Name: link.Name}, nil
		}
	}
	return nil, &ResourceError{Msg: fmt.Sprintf("couldn't find the data folder %q", s.settings.DataFolder)}
}

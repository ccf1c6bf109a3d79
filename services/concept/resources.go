// Copyright (C) 2026 textisbeautiful.net
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package concept

import (
	"encoding/xml"
	"fmt"
)

// The analytics service speaks attribute-tagged XML. Every resource kind gets
// its own struct and decode function; navigation between resources happens by
// following explicit href fields with another fetch, never by poking at a
// dynamic attribute bag.

// Link is a named reference to a child resource.
type Link struct {
	Href string `xml:"href,attr"`
	Name string `xml:"name,attr"`
}

// Instance is the service root. It lists the top-level project and data
// folder links; their names are only known after following the hrefs.
type Instance struct {
	XMLName        xml.Name `xml:"instance"`
	ProjectFolders []Link   `xml:"project-folder"`
	DataFolders    []Link   `xml:"data-folder"`
}

// Folder is a project or data folder: a name plus child links. Folders are
// looked up by exact name and are never created by this system.
type Folder struct {
	Href           string `xml:"href,attr"`
	Name           string `xml:"name,attr"`
	ProjectFolders []Link `xml:"project-folder"`
	DataFolders    []Link `xml:"data-folder"`
	DataFiles      []Link `xml:"data-file"`
	Projects       []Link `xml:"project"`
}

// Project identifies one analysis run. Name is the content hash the run was
// created under; the docset and status links are sub-resources.
type Project struct {
	XMLName  xml.Name `xml:"project"`
	Href     string   `xml:"href,attr"`
	Name     string   `xml:"name,attr"`
	Docsets  []Link   `xml:"docset"`
	Statuses []Link   `xml:"project-status"`
}

// ProjectStatus is the mutable stage/state sub-resource of a Project.
// State "next" means the pipeline is parked at a checkpoint and needs an
// explicit nudge; state "error" is a terminal failure whose Message carries
// the remote diagnostic verbatim.
type ProjectStatus struct {
	XMLName xml.Name `xml:"project-status"`
	Href    string   `xml:"href,attr"`
	Stage   struct {
		Name  string `xml:"name,attr"`
		State string `xml:"state,attr"`
	} `xml:"stage"`
	Message string `xml:"message"`

	// ProjectHref is filled in by the lifecycle manager when the status is
	// reached through its parent project; the wire format does not carry it.
	ProjectHref string `xml:"-"`
}

func decodeInstance(body []byte) (*Instance, error) {
	var inst Instance
	if err := xml.Unmarshal(body, &inst); err != nil {
		return nil, fmt.Errorf("failed to decode instance resource: %w", err)
	}
	return &inst, nil
}

func decodeFolder(body []byte) (*Folder, error) {
	var f Folder
	if err := xml.Unmarshal(body, &f); err != nil {
		return nil, fmt.Errorf("failed to decode folder resource: %w", err)
	}
	return &f, nil
}

func decodeProject(body []byte) (*Project, error) {
	var p Project
	if err := xml.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("failed to decode project resource: %w", err)
	}
	return &p, nil
}

func decodeProjectStatus(body []byte) (*ProjectStatus, error) {
	var s ProjectStatus
	if err := xml.Unmarshal(body, &s); err != nil {
		return nil, fmt.Errorf("failed to decode project status resource: %w", err)
	}
	return &s, nil
}

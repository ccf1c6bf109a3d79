// Copyright (C) 2026 textisbeautiful.net
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package markers decodes the analytics service's XML markers export into a
// normalized concept graph for client-side rendering.
package markers

// Relation is one entry in an entity's related-concept list. Strength, count
// and prominence are relayed exactly as the service wrote them; this layer
// does not interpret their domain meaning.
type Relation struct {
	ID         string `json:"id"`
	Strength   string `json:"strength"`
	Count      string `json:"count"`
	Prominence string `json:"prom"`
}

// MSTEdge is one edge of the minimum spanning tree over concepts, stored on
// the entity it originates from.
type MSTEdge struct {
	To int `json:"to"`
}

// Entity is a discovered concept with its visualization coordinates.
type Entity struct {
	ID        int        `json:"id"`
	Weight    float64    `json:"weight"`
	Frequency int        `json:"frequency"`
	MSTEdges  []MSTEdge  `json:"mstEdges"`
	Value     string     `json:"value"`
	Kind      string     `json:"kind"`
	ThemeID   string     `json:"themeId"`
	X         float64    `json:"x"`
	Y         float64    `json:"y"`
	Related   []Relation `json:"related,omitempty"`
}

// Theme is a concept cluster, keyed by its index in the export.
type Theme struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Hue          string `json:"hue"`
	Connectivity string `json:"connectivity"`
}

// ProminenceEdge is a directed weighted edge between two concepts.
type ProminenceEdge struct {
	From   int     `json:"from"`
	To     int     `json:"to"`
	Weight float64 `json:"weight"`
}

// ConceptGraph is the decoded markers document. Every id referenced from
// MSTEdges or Prominence is guaranteed to be a key of Entities; Decode
// rejects documents that violate this.
type ConceptGraph struct {
	Entities   map[int]*Entity
	Themes     map[int]Theme
	Prominence []ProminenceEdge
	BlockCount int
}

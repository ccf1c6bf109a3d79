// Copyright (C) 2026 textisbeautiful.net
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package markers

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ErrUnknownEntity indicates an MST or prominence edge referencing an entity
// id that the markers section never declared. The document is rejected as
// malformed rather than silently dropping the edge.
var ErrUnknownEntity = errors.New("edge references unknown entity id")

// Decode parses a markers XML document into a ConceptGraph.
//
// The export carries up to four sibling sections under the root element:
// markers, themes, mst and prominence. Their order varies between exports
// and any of them may be absent, so the decoder dispatches on tag name and
// leaves missing sections as empty collections. Malformed XML and malformed
// numeric attributes fail the decode; they never degrade to a partial graph.
func Decode(data []byte) (*ConceptGraph, error) {
	root, err := parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("malformed markers document: %w", err)
	}

	graph := &ConceptGraph{
		Entities: make(map[int]*Entity),
		Themes:   make(map[int]Theme),
	}

	// Entities must exist before mst/prominence sections are resolved
	// against them, regardless of document order.
	for _, section := range root.children {
		if section.tag == "markers" {
			if err := decodeEntities(section, graph); err != nil {
				return nil, err
			}
		}
	}
	for _, section := range root.children {
		switch section.tag {
		case "themes":
			if err := decodeThemes(section, graph); err != nil {
				return nil, err
			}
		case "mst":
			if err := decodeMST(section, graph); err != nil {
				return nil, err
			}
		case "prominence":
			if err := decodeProminence(section, graph); err != nil {
				return nil, err
			}
		}
	}
	return graph, nil
}

func decodeEntities(section *node, graph *ConceptGraph) error {
	count, err := intAttr(section, "cbcount")
	if err != nil {
		return err
	}
	graph.BlockCount = count

	for _, e := range section.children {
		id, err := intAttr(e, "id")
		if err != nil {
			return err
		}
		weight, err := floatAttr(e, "ctv")
		if err != nil {
			return err
		}
		freq, err := intAttr(e, "freq")
		if err != nil {
			return err
		}
		x, err := floatAttr(e, "x")
		if err != nil {
			return err
		}
		y, err := floatAttr(e, "y")
		if err != nil {
			return err
		}

		entity := &Entity{
			ID:        id,
			Weight:    weight,
			Frequency: freq,
			MSTEdges:  []MSTEdge{},
			Value:     e.attrs["value"],
			Kind:      e.attrs["kind"],
			ThemeID:   e.attrs["tid"],
			X:         x,
			Y:         y,
		}
		// Relation groups nest one level below the entity.
		for _, rels := range e.children {
			related := make([]Relation, 0, len(rels.children))
			for _, rel := range rels.children {
				related = append(related, Relation{
					ID:         rel.attrs["id"],
					Strength:   rel.attrs["str"],
					Count:      rel.attrs["ct"],
					Prominence: rel.attrs["pr"],
				})
			}
			entity.Related = related
		}
		graph.Entities[id] = entity
	}
	return nil
}

func decodeThemes(section *node, graph *ConceptGraph) error {
	for _, t := range section.children {
		index, err := intAttr(t, "index")
		if err != nil {
			return err
		}
		graph.Themes[index] = Theme{
			ID:           index,
			Name:         t.attrs["name"],
			Hue:          t.attrs["hue"],
			Connectivity: t.attrs["connectiv"],
		}
	}
	return nil
}

func decodeMST(section *node, graph *ConceptGraph) error {
	for _, n := range section.children {
		id, err := intAttr(n, "id")
		if err != nil {
			return err
		}
		entity, ok := graph.Entities[id]
		if !ok {
			return fmt.Errorf("%w: mst node %d", ErrUnknownEntity, id)
		}
		if len(n.children) == 0 {
			continue
		}
		// Edges live in the node's first nested group.
		for _, edge := range n.children[0].children {
			to, err := intAttr(edge, "id")
			if err != nil {
				return err
			}
			if _, ok := graph.Entities[to]; !ok {
				return fmt.Errorf("%w: mst edge %d -> %d", ErrUnknownEntity, id, to)
			}
			entity.MSTEdges = append(entity.MSTEdges, MSTEdge{To: to})
		}
	}
	return nil
}

func decodeProminence(section *node, graph *ConceptGraph) error {
	if len(section.children) == 0 {
		return nil
	}
	// Edges are grandchildren: the section wraps them in a single group.
	for _, edge := range section.children[0].children {
		if edge.tag != "edge" {
			continue
		}
		from, err := intAttr(edge, "from")
		if err != nil {
			return err
		}
		to, err := intAttr(edge, "to")
		if err != nil {
			return err
		}
		weight, err := floatAttr(edge, "w")
		if err != nil {
			return err
		}
		if _, ok := graph.Entities[from]; !ok {
			return fmt.Errorf("%w: prominence edge from %d", ErrUnknownEntity, from)
		}
		if _, ok := graph.Entities[to]; !ok {
			return fmt.Errorf("%w: prominence edge to %d", ErrUnknownEntity, to)
		}
		graph.Prominence = append(graph.Prominence, ProminenceEdge{From: from, To: to, Weight: weight})
	}
	return nil
}

func intAttr(n *node, name string) (int, error) {
	v, ok := n.attrs[name]
	if !ok {
		return 0, fmt.Errorf("element %s is missing attribute %q", n.tag, name)
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("element %s attribute %q is not an integer: %w", n.tag, name, err)
	}
	return i, nil
}

func floatAttr(n *node, name string) (float64, error) {
	v, ok := n.attrs[name]
	if !ok {
		return 0, fmt.Errorf("element %s is missing attribute %q", n.tag, name)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("element %s attribute %q is not a number: %w", n.tag, name, err)
	}
	return f, nil
}

// node is a minimal element tree. The export addresses children by position
// and dispatches on tag names, which maps poorly onto struct unmarshalling,
// so the decoder works over this generic form instead.
type node struct {
	tag      string
	attrs    map[string]string
	children []*node
}

func parse(r io.Reader) (*node, error) {
	decoder := xml.NewDecoder(r)

	var stack []*node
	var root *node
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{tag: t.Name.Local, attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				n.attrs[a.Name.Local] = a.Value
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			} else if root == nil {
				root = n
			} else {
				return nil, fmt.Errorf("unexpected second root element %s", t.Name.Local)
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if root == nil {
		return nil, io.ErrUnexpectedEOF
	}
	return root, nil
}

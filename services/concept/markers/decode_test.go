// Copyright (C) 2026 textisbeautiful.net
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package markers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullExport = `
<markerset>
	<markers cbcount="42">
		<marker id="1" ctv="0.95" freq="120" value="beauty" kind="word" tid="0" x="0.1" y="0.2">
			<related>
				<rel id="2" str="0.8" ct="15" pr="1.3"/>
				<rel id="3" str="0.5" ct="7" pr="0.9"/>
			</related>
		</marker>
		<marker id="2" ctv="0.80" freq="90" value="text" kind="word" tid="0" x="0.3" y="0.4"/>
		<marker id="3" ctv="0.60" freq="40" value="art" kind="name" tid="1" x="0.5" y="0.6"/>
	</markers>
	<themes>
		<theme index="0" name="beauty" hue="0.55" connectiv="0.7"/>
		<theme index="1" name="art" hue="0.12" connectiv="0.4"/>
	</themes>
	<mst>
		<node id="1">
			<edges>
				<edge id="2"/>
				<edge id="3"/>
			</edges>
		</node>
		<node id="2"/>
	</mst>
	<prominence>
		<edges>
			<edge from="1" to="2" w="1.7"/>
			<edge from="2" to="3" w="0.4"/>
		</edges>
	</prominence>
</markerset>`

func TestDecodeFullExport(t *testing.T) {
	graph, err := Decode([]byte(fullExport))
	require.NoError(t, err)

	assert.Equal(t, 42, graph.BlockCount)
	assert.Len(t, graph.Entities, 3)
	assert.Len(t, graph.Themes, 2)
	assert.Len(t, graph.Prominence, 2)

	beauty := graph.Entities[1]
	require.NotNil(t, beauty)
	assert.Equal(t, "beauty", beauty.Value)
	assert.Equal(t, "word", beauty.Kind)
	assert.Equal(t, "0", beauty.ThemeID)
	assert.InDelta(t, 0.95, beauty.Weight, 1e-9)
	assert.Equal(t, 120, beauty.Frequency)
	assert.InDelta(t, 0.1, beauty.X, 1e-9)
	assert.InDelta(t, 0.2, beauty.Y, 1e-9)

	require.Len(t, beauty.Related, 2)
	assert.Equal(t, Relation{ID: "2", Strength: "0.8", Count: "15", Prominence: "1.3"}, beauty.Related[0])

	require.Len(t, beauty.MSTEdges, 2)
	assert.Equal(t, []MSTEdge{{To: 2}, {To: 3}}, beauty.MSTEdges)
	assert.Empty(t, graph.Entities[2].MSTEdges)

	art := graph.Themes[1]
	assert.Equal(t, "art", art.Name)
	assert.Equal(t, "0.12", art.Hue)
	assert.Equal(t, "0.4", art.Connectivity)

	assert.Equal(t, ProminenceEdge{From: 1, To: 2, Weight: 1.7}, graph.Prominence[0])
}

func TestDecodeSectionOrderDoesNotMatter(t *testing.T) {
	reordered := `
<markerset>
	<mst>
		<node id="1">
			<edges><edge id="2"/></edges>
		</node>
	</mst>
	<prominence>
		<edges><edge from="2" to="1" w="0.5"/></edges>
	</prominence>
	<markers cbcount="5">
		<marker id="1" ctv="0.9" freq="10" value="a" kind="word" tid="0" x="0" y="0"/>
		<marker id="2" ctv="0.8" freq="8" value="b" kind="word" tid="0" x="1" y="1"/>
	</markers>
</markerset>`
	graph, err := Decode([]byte(reordered))
	require.NoError(t, err)
	assert.Equal(t, []MSTEdge{{To: 2}}, graph.Entities[1].MSTEdges)
	require.Len(t, graph.Prominence, 1)
	assert.Equal(t, 2, graph.Prominence[0].From)
}

func TestDecodeMissingSectionsYieldEmptyCollections(t *testing.T) {
	graph, err := Decode([]byte(`<markerset><markers cbcount="1">
		<marker id="7" ctv="0.5" freq="3" value="x" kind="word" tid="0" x="0" y="0"/>
	</markers></markerset>`))
	require.NoError(t, err)
	assert.Len(t, graph.Entities, 1)
	assert.Empty(t, graph.Themes)
	assert.Empty(t, graph.Prominence)
}

func TestDecodeRejectsUnknownMSTTarget(t *testing.T) {
	doc := `
<markerset>
	<markers cbcount="1">
		<marker id="1" ctv="0.9" freq="10" value="a" kind="word" tid="0" x="0" y="0"/>
	</markers>
	<mst>
		<node id="1">
			<edges><edge id="99"/></edges>
		</node>
	</mst>
</markerset>`
	_, err := Decode([]byte(doc))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownEntity)
}

func TestDecodeRejectsUnknownMSTNode(t *testing.T) {
	doc := `
<markerset>
	<markers cbcount="1">
		<marker id="1" ctv="0.9" freq="10" value="a" kind="word" tid="0" x="0" y="0"/>
	</markers>
	<mst>
		<node id="99"/>
	</mst>
</markerset>`
	_, err := Decode([]byte(doc))
	assert.ErrorIs(t, err, ErrUnknownEntity)
}

func TestDecodeRejectsUnknownProminenceEndpoint(t *testing.T) {
	doc := `
<markerset>
	<markers cbcount="1">
		<marker id="1" ctv="0.9" freq="10" value="a" kind="word" tid="0" x="0" y="0"/>
	</markers>
	<prominence>
		<edges><edge from="1" to="99" w="0.5"/></edges>
	</prominence>
</markerset>`
	_, err := Decode([]byte(doc))
	assert.ErrorIs(t, err, ErrUnknownEntity)
}

func TestDecodeRejectsMalformedNumericAttribute(t *testing.T) {
	doc := `
<markerset>
	<markers cbcount="1">
		<marker id="1" ctv="not-a-number" freq="10" value="a" kind="word" tid="0" x="0" y="0"/>
	</markers>
</markerset>`
	_, err := Decode([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ctv")
}

func TestDecodeRejectsMissingRequiredAttribute(t *testing.T) {
	doc := `
<markerset>
	<markers cbcount="1">
		<marker id="1" freq="10" value="a" kind="word" tid="0" x="0" y="0"/>
	</markers>
</markerset>`
	_, err := Decode([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ctv")
}

func TestDecodeRejectsEmptyDocument(t *testing.T) {
	_, err := Decode([]byte(""))
	assert.Error(t, err)
}

func TestDecodeRejectsTruncatedXML(t *testing.T) {
	_, err := Decode([]byte(`<markerset><markers cbcount="1">`))
	assert.Error(t, err)
}

// Package chart provides the serialization formats for org charts and
// their computed layouts.
//
// A [Chart] is the wire and storage format for the raw node list - the
// `{id, name, role, prev}` records an org chart is loaded from. A [Layout]
// is the serialized output of the layout engine: positions, connections
// and canvas dimensions, plus the labels sinks need to draw boxes.
//
// Both formats are JSON (with bson tags for the MongoDB store) and
// round-trip exactly. Chart node order is preserved because it is the
// sibling ordering key for layout.
package chart

// Package io reads and writes location networks.
//
// # Formats
//
// Three encodings are supported, all carrying the same [network.Record]
// contract (identifier, rate, neighbor identifiers):
//
// Text, one location per line, as published with the original puzzle:
//
//	Valve AA has flow rate=0; tunnels lead to valves DD, II, BB
//	Valve HH has flow rate=22; tunnel leads to valve GG
//
// JSON, either an object with a "locations" array or a bare array:
//
//	{"locations": [{"id": "AA", "rate": 0, "neighbors": ["DD", "II"]}]}
//
// TOML, one [[location]] table per record:
//
//	[[location]]
//	id = "AA"
//	rate = 0
//	neighbors = ["DD", "II"]
//
// # Reading
//
// [ReadFile] picks a decoder from the file extension (see [DetectFormat]);
// [Read] takes an explicit [Format]. Readers only check syntax. Semantic
// validation (duplicates, dangling neighbors, negative rates) is left to
// [network.Build] so that every format reports the same errors.
//
// # Writing
//
// [Write] and [ExportFile] emit any format. Text output picks the singular
// or plural phrasing per line, so the sample input round-trips exactly.
package io

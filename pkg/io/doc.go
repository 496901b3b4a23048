// Package io reads and writes workflow graph payloads as JSON or YAML files.
//
// # Payload Format
//
// A payload is an ordered list of jobs. Each job names its prerequisites in
// deps; a dep that names no job in the same payload is ignored.
//
//	[
//	  {"id": "a", "name": "build", "state": "completed", "deps": []},
//	  {"id": "b", "name": "test", "state": "executing", "deps": ["build"]}
//	]
//
// The same list in YAML:
//
//	- id: a
//	  name: build
//	  state: completed
//	- id: b
//	  name: test
//	  state: executing
//	  deps: [build]
//
// # Import
//
// Use [Import] to read a file, picking the decoder by extension, or [Read]
// with an explicit [Format] for any io.Reader:
//
//	nodes, err := io.Import("run.yaml")
//
// Both validate the payload with [workflow.Validate]. Failures carry the
// INVALID_PAYLOAD code. An empty file yields no nodes and no error; callers
// treat that as "nothing to draw".
//
// # Export
//
// [Write] and [Export] encode nodes in either format. Output is stable, so a
// payload can be imported, exported and re-imported without change.
//
// [workflow.Validate]: github.com/matzehuels/flowgraph/pkg/workflow.Validate
package io

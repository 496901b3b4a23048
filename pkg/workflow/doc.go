// Package workflow defines the graph payload a host hands to flowgraph: an
// ordered list of jobs, each with a navigation id, a display name, an
// execution state and the names of the jobs it depends on.
//
// Dependency edges are never part of the payload. They are derived with
// [Edges], which materializes dep→node only when the dep names another node
// of the same payload:
//
//	nodes, err := workflow.ParsePayload(data)
//	if err != nil {
//	    return err // INVALID_PAYLOAD
//	}
//	for _, e := range workflow.Edges(nodes) {
//	    fmt.Println(e.From, "→", e.To)
//	}
package workflow

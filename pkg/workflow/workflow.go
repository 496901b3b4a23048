package workflow

import "strings"

// State is the execution state of a workflow job.
type State string

// Recognized job states. Any other value is rendered with the neutral
// fallback palette entry.
const (
	StateAvailable State = "available"
	StateCancelled State = "cancelled"
	StateCompleted State = "completed"
	StateDiscarded State = "discarded"
	StateExecuting State = "executing"
	StateRetryable State = "retryable"
	StateScheduled State = "scheduled"
)

var knownStates = []State{
	StateAvailable,
	StateCancelled,
	StateCompleted,
	StateDiscarded,
	StateExecuting,
	StateRetryable,
	StateScheduled,
}

// States returns the recognized states in canonical order.
func States() []State {
	out := make([]State, len(knownStates))
	copy(out, knownStates)
	return out
}

// Known reports whether s is one of the recognized states.
func (s State) Known() bool {
	for _, k := range knownStates {
		if s == k {
			return true
		}
	}
	return false
}

// Label is the lowercase text shown under a node's name.
func (s State) Label() string { return strings.ToLower(string(s)) }

// Node is one job in a workflow graph payload.
type Node struct {
	ID    string   `json:"id" yaml:"id"`
	Name  string   `json:"name" yaml:"name"`
	State State    `json:"state" yaml:"state"`
	Deps  []string `json:"deps" yaml:"deps"`
}

// Edge is a dependency relation from a prerequisite job to its dependent.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Edges derives the dependency edges of nodes. Each dep that names a node in
// the same slice yields one edge dep→node; deps naming nothing are skipped.
// Edges come out in node order, then dep order, and repeated deps collapse
// into a single edge.
func Edges(nodes []Node) []Edge {
	names := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		names[n.Name] = struct{}{}
	}

	seen := make(map[Edge]struct{})
	var edges []Edge
	for _, n := range nodes {
		for _, dep := range n.Deps {
			if _, ok := names[dep]; !ok {
				continue
			}
			e := Edge{From: dep, To: n.Name}
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}
			edges = append(edges, e)
		}
	}
	return edges
}

package workflow

import (
	"slices"
	"testing"

	"github.com/matzehuels/flowgraph/pkg/errors"
)

func TestEdges(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
		want  []Edge
	}{
		{
			name: "single dependency",
			nodes: []Node{
				{ID: "a", Name: "build", State: StateCompleted},
				{ID: "b", Name: "test", State: StateExecuting, Deps: []string{"build"}},
			},
			want: []Edge{{From: "build", To: "test"}},
		},
		{
			name: "dangling dependency",
			nodes: []Node{
				{ID: "a", Name: "build", State: StateAvailable, Deps: []string{"missing"}},
			},
			want: nil,
		},
		{
			name: "duplicate deps collapse",
			nodes: []Node{
				{Name: "a"},
				{Name: "b", Deps: []string{"a", "a"}},
			},
			want: []Edge{{From: "a", To: "b"}},
		},
		{
			name: "node then dep order",
			nodes: []Node{
				{Name: "d", Deps: []string{"b", "a"}},
				{Name: "a"},
				{Name: "b", Deps: []string{"a"}},
			},
			want: []Edge{{From: "b", To: "d"}, {From: "a", To: "d"}, {From: "a", To: "b"}},
		},
		{
			name: "deps match names not ids",
			nodes: []Node{
				{ID: "job-1", Name: "build"},
				{ID: "job-2", Name: "test", Deps: []string{"job-1"}},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Edges(tt.nodes)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Edges() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStateKnown(t *testing.T) {
	for _, s := range States() {
		if !s.Known() {
			t.Errorf("%q.Known() = false", s)
		}
	}
	for _, s := range []State{"", "running", "Completed", "pending"} {
		if s.Known() {
			t.Errorf("%q.Known() = true", s)
		}
	}
	if len(States()) != 7 {
		t.Errorf("len(States()) = %d, want 7", len(States()))
	}
}

func TestStateLabel(t *testing.T) {
	if got := State("Executing").Label(); got != "executing" {
		t.Errorf("Label() = %q, want executing", got)
	}
}

func TestParsePayload(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantNodes int
		wantCode  errors.Code
	}{
		{name: "empty", data: "", wantNodes: 0},
		{name: "whitespace", data: "  \n", wantNodes: 0},
		{name: "null", data: "null", wantNodes: 0},
		{name: "empty array", data: "[]", wantNodes: 0},
		{
			name:      "two nodes",
			data:      `[{"id":"a","name":"build","state":"completed","deps":[]},{"id":"b","name":"test","state":"executing","deps":["build"]}]`,
			wantNodes: 2,
		},
		{
			name:      "missing deps field",
			data:      `[{"id":"a","name":"build","state":"available"}]`,
			wantNodes: 1,
		},
		{
			name:      "unknown state accepted",
			data:      `[{"id":"a","name":"build","state":"weird"}]`,
			wantNodes: 1,
		},
		{name: "not json", data: "{{{", wantCode: errors.ErrCodeInvalidPayload},
		{name: "object not array", data: `{"id":"a"}`, wantCode: errors.ErrCodeInvalidPayload},
		{name: "wrong field type", data: `[{"id":"a","name":"x","deps":"y"}]`, wantCode: errors.ErrCodeInvalidPayload},
		{name: "empty name", data: `[{"id":"a","name":""}]`, wantCode: errors.ErrCodeInvalidPayload},
		{name: "duplicate name", data: `[{"id":"a","name":"x"},{"id":"b","name":"x"}]`, wantCode: errors.ErrCodeInvalidPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := ParsePayload([]byte(tt.data))
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("ParsePayload() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePayload() error: %v", err)
			}
			if len(nodes) != tt.wantNodes {
				t.Errorf("ParsePayload() nodes = %d, want %d", len(nodes), tt.wantNodes)
			}
		})
	}
}

package workflow

import (
	"bytes"
	"encoding/json"

	"github.com/matzehuels/flowgraph/pkg/errors"
)

// ParsePayload decodes a serialized graph payload.
//
// An empty payload, JSON null, or an empty array yields (nil, nil): there is
// no graph to draw and callers should hide the view. Anything that does not
// decode as an array of nodes, or that fails [Validate], yields an
// INVALID_PAYLOAD error.
func ParsePayload(data []byte) ([]Node, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	var nodes []Node
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPayload, err, "invalid graph payload")
	}
	if len(nodes) == 0 {
		return nil, nil
	}
	if err := Validate(nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// Validate checks the invariants layout relies on: every node has a usable
// name and names are unique within the payload. States and dependency
// references are not checked here; unknown states fall back to the neutral
// palette entry and dangling deps are skipped.
func Validate(nodes []Node) error {
	seen := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if err := errors.ValidateNodeName(n.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPayload, err, "node %d", i)
		}
		if prev, dup := seen[n.Name]; dup {
			return errors.New(errors.ErrCodeInvalidPayload,
				"duplicate node name %q (nodes %d and %d)", n.Name, prev, i)
		}
		seen[n.Name] = i
	}
	return nil
}

package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/flowgraph/pkg/errors"
	"github.com/matzehuels/flowgraph/pkg/workflow"
)

// Write encodes nodes in format f and writes them to w. Nil deps are written
// as empty lists so the output always matches the payload schema.
func Write(nodes []workflow.Node, w io.Writer, f Format) error {
	out := make([]workflow.Node, len(nodes))
	for i, n := range nodes {
		if n.Deps == nil {
			n.Deps = []string{}
		}
		out[i] = n
	}

	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown payload format %q", f)
	}
	return nil
}

// Export writes nodes to path, choosing the encoder by extension.
func Export(nodes []workflow.Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(nodes, f, DetectFormat(path))
}

package io

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/flowgraph/pkg/errors"
	"github.com/matzehuels/flowgraph/pkg/workflow"
)

// Read decodes a payload in format f from r.
//
// Read returns (nil, nil) for an empty payload. It returns an INVALID_PAYLOAD
// error if the data does not decode as a list of jobs or if a job name is
// empty or repeated. Read does not close r.
func Read(r io.Reader, f Format) ([]workflow.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return Decode(data, f)
}

// Decode decodes an in-memory payload. See [Read].
func Decode(data []byte, f Format) ([]workflow.Node, error) {
	switch f {
	case FormatJSON:
		return workflow.ParsePayload(data)
	case FormatYAML:
		return decodeYAML(data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown payload format %q", f)
	}
}

func decodeYAML(data []byte) ([]workflow.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var nodes []workflow.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPayload, err, "invalid graph payload")
	}
	if len(nodes) == 0 {
		return nil, nil
	}
	if err := workflow.Validate(nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// Import reads the payload file at path, choosing the decoder by extension.
func Import(path string) ([]workflow.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	nodes, err := Read(f, DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nodes, nil
}

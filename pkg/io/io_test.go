package io

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/flowgraph/pkg/errors"
	"github.com/matzehuels/flowgraph/pkg/workflow"
)

var sample = []workflow.Node{
	{ID: "a", Name: "build", State: workflow.StateCompleted, Deps: []string{}},
	{ID: "b", Name: "test", State: workflow.StateExecuting, Deps: []string{"build"}},
}

func TestReadYAML(t *testing.T) {
	input := `
- id: a
  name: build
  state: completed
  deps: []
- id: b
  name: test
  state: executing
  deps: [build]
`
	got, err := Read(strings.NewReader(input), FormatYAML)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(got, sample) {
		t.Errorf("Read() = %+v, want %+v", got, sample)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
		code   errors.Code
	}{
		{"malformed json", `[{"name":`, FormatJSON, errors.ErrCodeInvalidPayload},
		{"json object", `{"name":"build"}`, FormatJSON, errors.ErrCodeInvalidPayload},
		{"malformed yaml", "- name: [build", FormatYAML, errors.ErrCodeInvalidPayload},
		{"yaml mapping", "name: build", FormatYAML, errors.ErrCodeInvalidPayload},
		{"duplicate yaml", "- name: a\n- name: a\n", FormatYAML, errors.ErrCodeInvalidPayload},
		{"empty yaml name", "- id: x\n", FormatYAML, errors.ErrCodeInvalidPayload},
		{"unknown format", `[]`, Format("xml"), errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("Read() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestReadEmpty(t *testing.T) {
	for _, tt := range []struct {
		input  string
		format Format
	}{
		{"", FormatJSON},
		{"null", FormatJSON},
		{"[]", FormatJSON},
		{"", FormatYAML},
		{"[]", FormatYAML},
	} {
		nodes, err := Read(strings.NewReader(tt.input), tt.format)
		if err != nil || nodes != nil {
			t.Errorf("Read(%q, %s) = %v, %v; want nil, nil", tt.input, tt.format, nodes, err)
		}
	}
}

func TestExportImport(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"run.json", "run.yaml", "run.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Export(sample, path); err != nil {
				t.Fatalf("Export: %v", err)
			}
			got, err := Import(path)
			if err != nil {
				t.Fatalf("Import: %v", err)
			}
			if !reflect.DeepEqual(got, sample) {
				t.Errorf("Import() = %+v, want %+v", got, sample)
			}
		})
	}
}

func TestWriteFillsDeps(t *testing.T) {
	var buf bytes.Buffer
	if err := Write([]workflow.Node{{ID: "a", Name: "build", State: workflow.StateScheduled}}, &buf, FormatJSON); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), `"deps": []`) {
		t.Errorf("output missing empty deps:\n%s", buf.String())
	}
}

func TestImportMissingFile(t *testing.T) {
	if _, err := Import(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFormat(t *testing.T) {
	for path, want := range map[string]Format{
		"a.json": FormatJSON,
		"a.YAML": FormatYAML,
		"a.yml":  FormatYAML,
		"a":      FormatJSON,
	} {
		if got := DetectFormat(path); got != want {
			t.Errorf("DetectFormat(%q) = %s, want %s", path, got, want)
		}
	}

	if f, err := ParseFormat("YML"); err != nil || f != FormatYAML {
		t.Errorf("ParseFormat(YML) = %s, %v", f, err)
	}
	if _, err := ParseFormat("toml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormat(toml) = %v, want INVALID_FORMAT", err)
	}
}

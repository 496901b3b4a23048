package sink

import (
	"encoding/json"

	"github.com/matzehuels/flowgraph/pkg/errors"
	"github.com/matzehuels/flowgraph/pkg/geom"
	"github.com/matzehuels/flowgraph/pkg/scene"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonOutput)

// WithJSONTransform records the viewport transform the scene is shown with.
func WithJSONTransform(t geom.Transform) JSONOption {
	return func(o *jsonOutput) { o.Transform = &t }
}

// WithJSONControls includes the zoom buttons laid out for a surface size.
func WithJSONControls(size geom.Size) JSONOption {
	return func(o *jsonOutput) { o.Controls = o.Scene.Controls(size) }
}

type jsonOutput struct {
	scene.Scene
	Transform *geom.Transform `json:"transform,omitempty"`
	Controls  []scene.Button  `json:"controls,omitempty"`
}

// RenderJSON exports the scene as a pretty-printed JSON document, for API
// consumers that draw the graph themselves.
func RenderJSON(s scene.Scene, opts ...JSONOption) ([]byte, error) {
	out := jsonOutput{Scene: s}
	for _, opt := range opts {
		opt(&out)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "encode scene")
	}
	return data, nil
}

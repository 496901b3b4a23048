package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/matzehuels/flowgraph/pkg/errors"
	"github.com/matzehuels/flowgraph/pkg/geom"
	fio "github.com/matzehuels/flowgraph/pkg/io"
	"github.com/matzehuels/flowgraph/pkg/surface"
	"github.com/matzehuels/flowgraph/pkg/theme"
	"github.com/matzehuels/flowgraph/pkg/view"
)

// TransformHeader reports the fitted viewport transform of a preview as
// "scale,x,y".
const TransformHeader = "X-Viewport-Transform"

// handlePreview mounts the payload in a view on an in-memory surface and
// answers with what a browser host would show on first paint: the fitted
// graph with zoom controls.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, err)
		return
	}
	size, err := previewSize(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	dark, _ := theme.Parse(opts.Theme)

	payload, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	nodes, err := fio.Decode(payload, payloadFormat(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(nodes) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidPayload, "graph payload is empty"))
		return
	}

	mem := surface.NewMemory(size)
	v, err := view.New(mem, view.Config{
		BasePath:      opts.BasePath,
		Theme:         dark,
		Logger:        s.log.With("request_id", RequestID(r.Context())),
		LayoutOptions: opts.LayoutOptions(),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer func() { _ = v.Destroy() }()

	if err := v.Mount(nodes); err != nil {
		s.writeError(w, r, err)
		return
	}
	t, _ := v.Transform()

	w.Header().Set("Content-Type", contentTypes["svg"])
	w.Header().Set(TransformHeader, fmt.Sprintf("%s,%s,%s",
		strconv.FormatFloat(t.Scale, 'g', -1, 64),
		strconv.FormatFloat(t.X, 'g', -1, 64),
		strconv.FormatFloat(t.Y, 'g', -1, 64)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(mem.SVG())
}

func previewSize(r *http.Request) (geom.Size, error) {
	size := geom.Size{W: DefaultPreviewWidth, H: DefaultPreviewHeight}
	for _, dim := range []struct {
		name string
		dst  *float64
	}{{"width", &size.W}, {"height", &size.H}} {
		v := r.URL.Query().Get(dim.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 10000 {
			return size, errors.New(errors.ErrCodeInvalidInput, "%s must be between 1 and 10000, got %q", dim.name, v)
		}
		*dim.dst = float64(n)
	}
	return size, nil
}

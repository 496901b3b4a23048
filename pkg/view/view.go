package view

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowgraph/pkg/errors"
	"github.com/matzehuels/flowgraph/pkg/geom"
	"github.com/matzehuels/flowgraph/pkg/layout"
	"github.com/matzehuels/flowgraph/pkg/observability"
	"github.com/matzehuels/flowgraph/pkg/scene"
	"github.com/matzehuels/flowgraph/pkg/surface"
	"github.com/matzehuels/flowgraph/pkg/theme"
	"github.com/matzehuels/flowgraph/pkg/viewport"
	"github.com/matzehuels/flowgraph/pkg/workflow"
)

// Phase is the lifecycle state of a View.
type Phase int

const (
	Unmounted Phase = iota
	MountedEmpty
	MountedGraph
	Destroyed
)

func (p Phase) String() string {
	switch p {
	case Unmounted:
		return "unmounted"
	case MountedEmpty:
		return "mounted-empty"
	case MountedGraph:
		return "mounted-graph"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Navigator receives navigation intents raised by node clicks.
type Navigator interface {
	Navigate(scene.Intent)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(scene.Intent)

func (f NavigatorFunc) Navigate(i scene.Intent) { f(i) }

// Config configures a View.
type Config struct {
	BasePath  string         // prefix of navigation targets, "" or an absolute path
	Theme     theme.Provider // read at the start of every pass; nil means light
	Navigator Navigator      // nil drops intents
	Logger    *log.Logger

	LayoutOptions   []layout.Option
	ViewportOptions []viewport.Option

	// Hooks receives render pass events. Nil uses observability.View().
	Hooks observability.ViewHooks
}

// View renders workflow graphs onto a surface.
//
// A View is not safe for concurrent use. Host events and data pushes must be
// delivered from one goroutine, and each call completes before the next
// event is handled.
type View struct {
	surface surface.Surface
	cfg     Config
	log     *log.Logger
	hooks   observability.ViewHooks

	phase   Phase
	scene   scene.Scene
	vp      *viewport.Controller
	release func()
}

// New creates an unmounted view on s.
func New(s surface.Surface, cfg Config) (*View, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "view needs a surface")
	}
	if err := errors.ValidateBasePath(cfg.BasePath); err != nil {
		return nil, err
	}
	if _, err := viewport.Resolve(cfg.ViewportOptions...); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	hooks := cfg.Hooks
	if hooks == nil {
		hooks = observability.View()
	}
	return &View{surface: s, cfg: cfg, log: logger, hooks: hooks}, nil
}

// Phase returns the lifecycle phase.
func (v *View) Phase() Phase { return v.phase }

// Transform returns the current viewport transform. It reports false when
// no graph is shown.
func (v *View) Transform() (geom.Transform, bool) {
	if v.vp == nil {
		return geom.Transform{}, false
	}
	return v.vp.Transform(), true
}

// Scene returns the scene of the last successful pass. It reports false
// when no graph is shown.
func (v *View) Scene() (scene.Scene, bool) {
	if v.phase != MountedGraph {
		return scene.Scene{}, false
	}
	return v.scene, true
}

// Viewport returns the active viewport controller, or nil.
func (v *View) Viewport() *viewport.Controller { return v.vp }

// Mount runs the first render pass. An empty node list hides the surface.
func (v *View) Mount(nodes []workflow.Node) error {
	if v.phase != Unmounted {
		return errors.New(errors.ErrCodeInvalidState, "mount: view is %s", v.phase)
	}
	return v.render("mount", nodes)
}

// Update re-renders with new data, keeping the user's viewpoint.
func (v *View) Update(nodes []workflow.Node) error {
	if v.phase == Unmounted || v.phase == Destroyed {
		return errors.New(errors.ErrCodeInvalidState, "update: view is %s", v.phase)
	}
	return v.render("update", nodes)
}

// MountPayload parses a serialized payload and mounts it.
func (v *View) MountPayload(data []byte) error {
	if v.phase != Unmounted {
		return errors.New(errors.ErrCodeInvalidState, "mount: view is %s", v.phase)
	}
	nodes, err := workflow.ParsePayload(data)
	if err != nil {
		v.fail("mount", 0, time.Now(), err)
		return err
	}
	return v.Mount(nodes)
}

// UpdatePayload parses a serialized payload and updates with it. A malformed
// payload leaves the current scene untouched.
func (v *View) UpdatePayload(data []byte) error {
	if v.phase == Unmounted || v.phase == Destroyed {
		return errors.New(errors.ErrCodeInvalidState, "update: view is %s", v.phase)
	}
	nodes, err := workflow.ParsePayload(data)
	if err != nil {
		v.fail("update", 0, time.Now(), err)
		return err
	}
	return v.Update(nodes)
}

// Destroy disposes the viewport, releases all listeners and empties the
// surface. The view cannot be used afterwards.
func (v *View) Destroy() error {
	if v.phase == Destroyed {
		return errors.New(errors.ErrCodeInvalidState, "destroy: view is already destroyed")
	}
	v.teardown()
	v.surface.SetVisible(false)
	v.scene = scene.Scene{}
	v.phase = Destroyed
	v.log.Debug("destroyed")
	return nil
}

func (v *View) render(op string, nodes []workflow.Node) error {
	start := time.Now()

	if len(nodes) == 0 {
		v.teardown()
		v.surface.SetVisible(false)
		v.scene = scene.Scene{}
		v.phase = MountedEmpty
		v.log.Debug("no graph, surface hidden", "op", op)
		v.hooks.OnRenderPass(op, 0, false, time.Since(start), nil)
		return nil
	}

	g, sc, err := v.prepare(nodes)
	if err != nil {
		v.fail(op, len(nodes), start, err)
		return err
	}

	var saved *geom.Transform
	if v.vp != nil {
		t := v.vp.Transform()
		saved = &t
	}
	v.teardown()

	vp, err := viewport.New(v.surface, sc.Size(), v.viewportOptions()...)
	if err != nil {
		// Options were validated in New; this only happens on a broken surface.
		v.phase = MountedEmpty
		v.fail(op, len(nodes), start, err)
		return err
	}
	v.surface.Replace(surface.Content{Scene: sc, Controls: true})
	v.surface.SetVisible(true)
	v.vp = vp
	v.release = v.surface.Listen(v.handle)
	v.scene = sc
	v.phase = MountedGraph

	restored := false
	if saved != nil {
		if err := vp.Restore(*saved); err != nil {
			v.log.Warn("previous transform rejected, fitting instead", "op", op, "err", errors.UserMessage(err))
		} else {
			restored = true
		}
	}
	if !restored {
		vp.Fit(g.Size())
	}

	v.log.Debug("rendered", "op", op, "nodes", len(sc.Nodes), "edges", len(sc.Edges),
		"restored", restored, "transform", vp.Transform())
	v.hooks.OnRenderPass(op, len(nodes), restored, time.Since(start), nil)
	return nil
}

// prepare computes the layout and scene of a pass. It touches neither the
// surface nor the viewport, so a failure leaves the previous pass in place.
// Panics, including ones from a host theme provider, become RENDER_FAILED.
func (v *View) prepare(nodes []workflow.Node) (g layout.Graph, sc scene.Scene, err error) {
	defer func() {
		if r := recover(); r != nil {
			g, sc = layout.Graph{}, scene.Scene{}
			err = errors.New(errors.ErrCodeRenderFailed, "render of %d nodes panicked: %v", len(nodes), r)
		}
	}()

	opts := append([]layout.Option{layout.WithLogger(v.log)}, v.cfg.LayoutOptions...)
	g, err = layout.Compute(nodes, opts...)
	if err != nil {
		return layout.Graph{}, scene.Scene{}, err
	}
	return g, scene.Build(g, theme.Select(v.cfg.Theme), v.cfg.BasePath), nil
}

func (v *View) viewportOptions() []viewport.Option {
	return append([]viewport.Option{viewport.WithLogger(v.log)}, v.cfg.ViewportOptions...)
}

func (v *View) fail(op string, n int, start time.Time, err error) {
	v.log.Error("render pass failed", "op", op, "code", errors.GetCode(err), "err", errors.UserMessage(err))
	v.hooks.OnRenderPass(op, n, false, time.Since(start), err)
}

// teardown removes the previous pass: viewport, listener and content.
func (v *View) teardown() {
	if v.release != nil {
		v.release()
		v.release = nil
	}
	if v.vp != nil {
		v.vp.Dispose()
		v.vp = nil
	}
	v.surface.Clear()
}

func (v *View) handle(ev surface.Event) bool {
	if v.phase != MountedGraph || v.vp == nil {
		return false
	}
	switch ev.Kind {
	case surface.PointerDown:
		_, onControl := v.scene.ControlAt(v.surface.Size(), ev.Pos)
		return onControl
	case surface.Click:
		if b, ok := v.scene.ControlAt(v.surface.Size(), ev.Pos); ok {
			switch b.Action {
			case scene.ActionZoomIn:
				v.vp.ZoomIn()
			case scene.ActionZoomOut:
				v.vp.ZoomOut()
			}
			return true
		}
		box, ok := v.scene.NodeAt(v.vp.Transform().Invert(ev.Pos))
		if !ok {
			return false
		}
		intent := v.scene.Intent(box)
		v.log.Debug("navigate", "node", box.Name, "path", intent.Path())
		v.hooks.OnNavigate(intent.Path())
		if v.cfg.Navigator != nil {
			v.cfg.Navigator.Navigate(intent)
		}
		return true
	}
	return false
}

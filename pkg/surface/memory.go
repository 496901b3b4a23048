package surface

import (
	"slices"
	"sync"

	"github.com/matzehuels/flowgraph/pkg/geom"
	"github.com/matzehuels/flowgraph/pkg/render/sink"
)

type listener struct {
	id int
	h  Handler
}

// Memory is an in-memory [Surface].
//
// The zero value is not usable; create one with [NewMemory]. Memory is safe
// for concurrent use, but handlers run without the lock held so they may call
// back into the surface.
type Memory struct {
	mu        sync.Mutex
	size      geom.Size
	visible   bool
	content   *Content
	transform geom.Transform
	listeners []listener
	nextID    int
	replaces  int
}

var _ Surface = (*Memory)(nil)

// NewMemory creates a visible, empty surface of the given size.
func NewMemory(size geom.Size) *Memory {
	return &Memory{size: size, visible: true, transform: geom.Identity}
}

func (m *Memory) Size() geom.Size {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.size
}

// Resize changes the surface size. Content and transform are kept.
func (m *Memory) Resize(size geom.Size) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.size = size
}

func (m *Memory) SetVisible(visible bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visible = visible
}

func (m *Memory) Visible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible
}

func (m *Memory) Replace(c Content) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.content = &c
	m.replaces++
}

func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.content = nil
	m.transform = geom.Identity
}

func (m *Memory) Content() (Content, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.content == nil {
		return Content{}, false
	}
	return *m.content, true
}

func (m *Memory) SetTransform(t geom.Transform) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transform = t
}

func (m *Memory) Transform() geom.Transform {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transform
}

func (m *Memory) Listen(h Handler) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := m.nextID
	m.listeners = append(m.listeners, listener{id: id, h: h})

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.listeners = slices.DeleteFunc(m.listeners, func(l listener) bool { return l.id == id })
		})
	}
}

// Listeners returns the number of registered handlers.
func (m *Memory) Listeners() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.listeners)
}

// Replaces returns how many times content was attached.
func (m *Memory) Replaces() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.replaces
}

// Dispatch delivers ev to the listeners, newest first, and reports whether
// one of them consumed it.
func (m *Memory) Dispatch(ev Event) bool {
	m.mu.Lock()
	ls := slices.Clone(m.listeners)
	m.mu.Unlock()

	for i := len(ls) - 1; i >= 0; i-- {
		if ls[i].h(ev) {
			return true
		}
	}
	return false
}

// SVG materializes the current content with the current transform. It
// returns nil when the surface is empty or hidden.
func (m *Memory) SVG() []byte {
	m.mu.Lock()
	content, size, t, visible := m.content, m.size, m.transform, m.visible
	m.mu.Unlock()

	if content == nil || !visible {
		return nil
	}
	opts := []sink.SVGOption{sink.WithTransform(t)}
	if content.Controls {
		opts = append(opts, sink.WithControls(size))
	}
	return sink.RenderSVG(content.Scene, opts...)
}

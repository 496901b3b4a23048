package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/flowgraph/pkg/errors"
	"github.com/matzehuels/flowgraph/pkg/geom"
	fio "github.com/matzehuels/flowgraph/pkg/io"
	"github.com/matzehuels/flowgraph/pkg/scene"
	"github.com/matzehuels/flowgraph/pkg/surface"
	"github.com/matzehuels/flowgraph/pkg/view"
)

// panStep is how far one arrow key drags the graph, in surface pixels.
const panStep = 40.0

// wheelStep is the wheel delta of one zoom key press.
const wheelStep = 64.0

var (
	rowSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	rowNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	rowHiddenStyle   = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// navigation records the intents raised by node clicks.
type navigation struct {
	last  string
	count int
}

// =============================================================================
// viewModel - terminal host for an interactive view
// =============================================================================

// viewModel hosts a view on an in-memory surface. Keys become surface events,
// so the terminal drives the same code paths a pointer would.
type viewModel struct {
	path     string
	mem      *surface.Memory
	view     *view.View
	nav      *navigation
	pointer  geom.Point // where wheel zoom is centered, surface coordinates
	selected int
	status   string
	err      error
}

// newViewModel mounts the payload at path on a surface of the given size.
// cfg.Navigator is replaced so the model can show navigation targets.
func newViewModel(path string, size geom.Size, cfg view.Config) (viewModel, error) {
	nav := &navigation{}
	cfg.Navigator = view.NavigatorFunc(func(i scene.Intent) {
		nav.last = i.Path()
		nav.count++
	})

	mem := surface.NewMemory(size)
	v, err := view.New(mem, cfg)
	if err != nil {
		return viewModel{}, err
	}
	m := viewModel{
		path:    path,
		mem:     mem,
		view:    v,
		nav:     nav,
		pointer: geom.Point{X: size.W / 2, Y: size.H / 2},
	}

	nodes, err := fio.Import(path)
	if err != nil {
		return viewModel{}, err
	}
	if err := v.Mount(nodes); err != nil {
		return viewModel{}, err
	}
	return m, nil
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.err = nil

	switch key.String() {
	case "q", "ctrl+c", "esc":
		_ = m.view.Destroy()
		return m, tea.Quit
	case "left", "h":
		m.drag(-panStep, 0)
	case "right", "l":
		m.drag(panStep, 0)
	case "up", "k":
		m.drag(0, -panStep)
	case "down", "j":
		m.drag(0, panStep)
	case "+", "=":
		m.clickControl(scene.ActionZoomIn)
	case "-":
		m.clickControl(scene.ActionZoomOut)
	case "i":
		m.mem.Dispatch(surface.Event{Kind: surface.Wheel, Pos: m.pointer, DeltaY: -wheelStep})
	case "o":
		m.mem.Dispatch(surface.Event{Kind: surface.Wheel, Pos: m.pointer, DeltaY: wheelStep})
	case "f":
		if sc, ok := m.view.Scene(); ok {
			m.view.Viewport().Fit(sc.Size())
			m.status = "fitted"
		}
	case "tab":
		m.selected = m.step(1)
	case "shift+tab":
		m.selected = m.step(-1)
	case "enter":
		m.clickSelected()
	case "r":
		m.reload()
	case "s":
		m.snapshot()
	}
	return m, nil
}

// drag moves the graph by (dx, dy) with a pointer drag from the surface
// center.
func (m *viewModel) drag(dx, dy float64) {
	size := m.mem.Size()
	from := geom.Point{X: size.W / 2, Y: size.H / 2}
	to := geom.Point{X: from.X + dx, Y: from.Y + dy}
	m.mem.Dispatch(surface.Event{Kind: surface.PointerDown, Pos: from})
	m.mem.Dispatch(surface.Event{Kind: surface.PointerMove, Pos: to})
	m.mem.Dispatch(surface.Event{Kind: surface.PointerUp, Pos: to})
}

func (m *viewModel) clickControl(action scene.Action) {
	sc, ok := m.view.Scene()
	if !ok {
		return
	}
	for _, b := range sc.Controls(m.mem.Size()) {
		if b.Action == action {
			m.mem.Dispatch(surface.Event{Kind: surface.Click, Pos: b.Rect.Center()})
			m.status = action.String()
			return
		}
	}
}

func (m viewModel) step(delta int) int {
	sc, ok := m.view.Scene()
	if !ok || len(sc.Nodes) == 0 {
		return 0
	}
	n := len(sc.Nodes)
	return ((m.selected+delta)%n + n) % n
}

// clickSelected clicks the center of the selected node as it is currently
// drawn.
func (m *viewModel) clickSelected() {
	sc, ok := m.view.Scene()
	if !ok || m.selected >= len(sc.Nodes) {
		return
	}
	t, _ := m.view.Transform()
	box := sc.Nodes[m.selected]
	pos := t.Apply(box.Rect.Center())
	if !m.mem.Dispatch(surface.Event{Kind: surface.Click, Pos: pos}) {
		m.status = box.Name + " is not under the pointer"
		return
	}
	m.status = "navigate " + iconArrow + " " + m.nav.last
}

// reload re-reads the payload and updates the view in place.
func (m *viewModel) reload() {
	nodes, err := fio.Import(m.path)
	if err == nil {
		err = m.view.Update(nodes)
	}
	if err != nil {
		m.err = err
		return
	}
	if m.selected >= len(nodes) {
		m.selected = 0
	}
	m.status = fmt.Sprintf("reloaded %d nodes", len(nodes))
}

// snapshot writes what the surface shows to <payload>.view.svg.
func (m *viewModel) snapshot() {
	svg := m.mem.SVG()
	if svg == nil {
		m.err = errors.New(errors.ErrCodeInvalidState, "nothing to save, the surface is empty")
		return
	}
	out := basePath("", m.path) + ".view.svg"
	if err := os.WriteFile(out, svg, 0o644); err != nil {
		m.err = err
		return
	}
	m.status = "saved " + out
}

func (m viewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("flowgraph view"))
	b.WriteString(" ")
	b.WriteString(StyleDim.Render(m.path))
	b.WriteString("\n\n")

	sc, ok := m.view.Scene()
	if !ok {
		b.WriteString(StyleWarning.Render("No graph to show (" + m.view.Phase().String() + ")"))
		b.WriteString("\n\n")
	} else {
		b.WriteString(m.nodeTable(sc))
		b.WriteString("\n")
	}

	if t, ok := m.view.Transform(); ok {
		b.WriteString(StyleDim.Render(fmt.Sprintf("scale %.2f  x %.1f  y %.1f", t.Scale, t.X, t.Y)))
		b.WriteString("\n")
	}
	if m.nav.count > 0 {
		b.WriteString(StyleDim.Render("last navigation ") + StyleLink.Render(m.nav.last))
		b.WriteString("\n")
	}
	switch {
	case m.err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + errors.UserMessage(m.err))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(styleIconInfo.Render(iconInfo) + " " + m.status)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←↑↓→ pan  +/- zoom  i/o wheel  f fit  tab select  ⏎ open  r reload  s save  q quit"))
	return b.String()
}

// nodeTable lists nodes with their on-screen position. Rows of nodes outside
// the surface are dimmed.
func (m viewModel) nodeTable(sc scene.Scene) string {
	t, _ := m.view.Transform()
	size := m.mem.Size()
	bounds := geom.Rect{W: size.W, H: size.H}

	rows := make([][]string, 0, len(sc.Nodes))
	visible := make([]bool, 0, len(sc.Nodes))
	for i, n := range sc.Nodes {
		cursor := "  "
		if i == m.selected {
			cursor = "▸ "
		}
		c := t.Apply(n.Rect.Center())
		rows = append(rows, []string{cursor, n.Name, n.State.Label(), fmt.Sprintf("%.0f, %.0f", c.X, c.Y), n.Href})
		visible = append(visible, bounds.Contains(c))
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Job", "State", "On screen", "Link").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1: // header
				return headerStyle
			case row == m.selected:
				return rowSelectedStyle
			case row >= 0 && row < len(visible) && !visible[row]:
				return rowHiddenStyle
			default:
				return rowNormalStyle
			}
		}).
		Render()
}

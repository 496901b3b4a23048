// Package theme holds the light and dark color palettes used to draw
// workflow graphs, and the provider abstraction that picks one of them.
package theme

import "github.com/matzehuels/flowgraph/pkg/workflow"

// Colors is the color triple of one node state.
type Colors struct {
	Fill   string `json:"fill"`
	Stroke string `json:"stroke"`
	Text   string `json:"text"`
}

// ControlColors styles the zoom buttons.
type ControlColors struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	Border     string `json:"border"`
}

// Palette maps node states to colors. Palettes are values; the package-level
// ones are never mutated.
type Palette struct {
	Name     string
	Dark     bool
	States   map[workflow.State]Colors
	Fallback Colors
	Edge     string // edge and arrowhead stroke
	Controls ControlColors
}

// Resolve returns the colors for s. Unrecognized states get Fallback, the
// same entry as cancelled and scheduled.
func (p Palette) Resolve(s workflow.State) Colors {
	if c, ok := p.States[s]; ok {
		return c
	}
	return p.Fallback
}

var (
	lightNeutral = Colors{Fill: "#f3f4f6", Stroke: "#9ca3af", Text: "#374151"}
	darkNeutral  = Colors{Fill: "#1f2937", Stroke: "#6b7280", Text: "#d1d5db"}
)

// Light returns the light palette.
func Light() Palette {
	return Palette{
		Name: "light",
		States: map[workflow.State]Colors{
			workflow.StateAvailable: {Fill: "#fef9c3", Stroke: "#facc15", Text: "#854d0e"},
			workflow.StateCancelled: lightNeutral,
			workflow.StateCompleted: {Fill: "#dcfce7", Stroke: "#4ade80", Text: "#166534"},
			workflow.StateDiscarded: {Fill: "#ffe4e6", Stroke: "#fb7185", Text: "#9f1239"},
			workflow.StateExecuting: {Fill: "#dbeafe", Stroke: "#60a5fa", Text: "#1e40af"},
			workflow.StateRetryable: {Fill: "#ffedd5", Stroke: "#fb923c", Text: "#9a3412"},
			workflow.StateScheduled: lightNeutral,
		},
		Fallback: lightNeutral,
		Edge:     "#6b7280",
		Controls: ControlColors{Background: "#ffffff", Text: "#374151", Border: "#d1d5db"},
	}
}

// Dark returns the dark palette.
func Dark() Palette {
	return Palette{
		Name: "dark",
		Dark: true,
		States: map[workflow.State]Colors{
			workflow.StateAvailable: {Fill: "#422006", Stroke: "#facc15", Text: "#fef9c3"},
			workflow.StateCancelled: darkNeutral,
			workflow.StateCompleted: {Fill: "#052e16", Stroke: "#4ade80", Text: "#dcfce7"},
			workflow.StateDiscarded: {Fill: "#4c0519", Stroke: "#fb7185", Text: "#ffe4e6"},
			workflow.StateExecuting: {Fill: "#172554", Stroke: "#60a5fa", Text: "#dbeafe"},
			workflow.StateRetryable: {Fill: "#431407", Stroke: "#fb923c", Text: "#ffedd5"},
			workflow.StateScheduled: darkNeutral,
		},
		Fallback: darkNeutral,
		Edge:     "#9ca3af",
		Controls: ControlColors{Background: "#1f2937", Text: "#d1d5db", Border: "#374151"},
	}
}

// ForDark returns Dark() when dark is true, Light() otherwise.
func ForDark(dark bool) Palette {
	if dark {
		return Dark()
	}
	return Light()
}

package theme

import (
	"testing"

	"github.com/matzehuels/flowgraph/pkg/workflow"
)

func TestResolve(t *testing.T) {
	for _, p := range []Palette{Light(), Dark()} {
		t.Run(p.Name, func(t *testing.T) {
			cancelled := p.Resolve(workflow.StateCancelled)
			if p.Resolve(workflow.StateScheduled) != cancelled {
				t.Error("scheduled should share the cancelled entry")
			}
			for _, s := range []workflow.State{"", "running", "COMPLETED", "pending"} {
				if got := p.Resolve(s); got != cancelled {
					t.Errorf("Resolve(%q) = %+v, want fallback %+v", s, got, cancelled)
				}
			}

			distinct := map[Colors]workflow.State{}
			for _, s := range workflow.States() {
				if s == workflow.StateScheduled {
					continue
				}
				c := p.Resolve(s)
				if prev, dup := distinct[c]; dup {
					t.Errorf("%s and %s share colors %+v", prev, s, c)
				}
				distinct[c] = s
			}
		})
	}
}

func TestPaletteValues(t *testing.T) {
	tests := []struct {
		p     Palette
		state workflow.State
		want  Colors
	}{
		{Light(), workflow.StateCompleted, Colors{"#dcfce7", "#4ade80", "#166534"}},
		{Light(), workflow.StateExecuting, Colors{"#dbeafe", "#60a5fa", "#1e40af"}},
		{Dark(), workflow.StateCompleted, Colors{"#052e16", "#4ade80", "#dcfce7"}},
		{Dark(), "unknown", Colors{"#1f2937", "#6b7280", "#d1d5db"}},
	}
	for _, tt := range tests {
		if got := tt.p.Resolve(tt.state); got != tt.want {
			t.Errorf("%s.Resolve(%s) = %+v, want %+v", tt.p.Name, tt.state, got, tt.want)
		}
	}
	if Light().Edge != "#6b7280" || Dark().Edge != "#9ca3af" {
		t.Error("edge colors changed")
	}
}

func TestPalettesAreIndependent(t *testing.T) {
	p := Light()
	p.States[workflow.StateCompleted] = Colors{Fill: "red"}
	if Light().Resolve(workflow.StateCompleted).Fill == "red" {
		t.Error("mutating a returned palette leaked into Light()")
	}
}

func TestSelect(t *testing.T) {
	if Select(nil).Dark {
		t.Error("nil provider should be light")
	}
	if !Select(Static(true)).Dark {
		t.Error("Static(true) should be dark")
	}
	dark := false
	p := ProviderFunc(func() bool { return dark })
	if Select(p).Dark {
		t.Error("want light")
	}
	dark = true
	if !Select(p).Dark {
		t.Error("provider is read on every Select")
	}
}

func TestParse(t *testing.T) {
	if s, err := Parse("Dark"); err != nil || !s.IsDark() {
		t.Errorf("Parse(Dark) = %v, %v", s, err)
	}
	if s, err := Parse(""); err != nil || s.IsDark() {
		t.Errorf("Parse(\"\") = %v, %v", s, err)
	}
	if _, err := Parse("solarized"); err == nil {
		t.Error("Parse(solarized) should fail")
	}
}

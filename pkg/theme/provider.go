package theme

import (
	"strings"

	"github.com/matzehuels/flowgraph/pkg/errors"
)

// Provider reports the host's current theme. It is read once at the start of
// every render pass; flowgraph never writes it.
type Provider interface {
	IsDark() bool
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func() bool

// IsDark implements Provider.
func (f ProviderFunc) IsDark() bool { return f() }

// Static is a fixed theme.
type Static bool

// IsDark implements Provider.
func (s Static) IsDark() bool { return bool(s) }

// Select returns the palette p currently asks for. A nil provider means light.
func Select(p Provider) Palette {
	if p == nil {
		return Light()
	}
	return ForDark(p.IsDark())
}

// Parse converts "light" or "dark" to a Static provider.
func Parse(name string) (Static, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "light":
		return Static(false), nil
	case "dark":
		return Static(true), nil
	default:
		return false, errors.New(errors.ErrCodeInvalidInput, "unknown theme %q (want light or dark)", name)
	}
}

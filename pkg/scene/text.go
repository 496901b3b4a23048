package scene

import (
	"strconv"
	"strings"

	"github.com/matzehuels/flowgraph/pkg/geom"
)

// Ellipsis replaces the tail of truncated names.
const Ellipsis = "…"

// Truncate shortens s to at most n runes. Longer strings keep their first
// n-1 runes followed by [Ellipsis].
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + Ellipsis
}

// PathData formats points as an SVG path: "M x y L x y ...".
func PathData(points []geom.Point) string {
	var b strings.Builder
	for i, p := range points {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		b.WriteString(FormatFloat(p.X))
		b.WriteByte(' ')
		b.WriteString(FormatFloat(p.Y))
	}
	return b.String()
}

// FormatFloat prints f with at most two decimals and no trailing zeros.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

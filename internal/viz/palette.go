package viz

import "github.com/charmbracelet/lipgloss"

// Palette holds per-body display colors, parallel to the engine's body
// list. It is the only place rendering identity and physics state meet.
type Palette []lipgloss.Style

var namedColors = map[string]lipgloss.Color{
	"red":     lipgloss.Color("9"),
	"green":   lipgloss.Color("10"),
	"yellow":  lipgloss.Color("11"),
	"blue":    lipgloss.Color("12"),
	"magenta": lipgloss.Color("13"),
	"cyan":    lipgloss.Color("14"),
	"white":   lipgloss.Color("15"),
}

// fallback cycle for unnamed or unknown colors
var defaultCycle = []lipgloss.Color{"9", "10", "12", "11", "13", "14"}

// NewPalette builds one style per body from color names. Unknown names fall
// back to a rotating default so every body stays distinguishable.
func NewPalette(names []string) Palette {
	p := make(Palette, len(names))
	for i, name := range names {
		c, ok := namedColors[name]
		if !ok {
			c = defaultCycle[i%len(defaultCycle)]
		}
		p[i] = lipgloss.NewStyle().Foreground(c)
	}
	return p
}

func (p Palette) Render(i int, s string) string {
	if i < 0 || i >= len(p) {
		return s
	}
	return p[i].Render(s)
}

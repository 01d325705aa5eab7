package visual

// Palette maps body and star color names to 24-bit hex values
// Names follow the rich console color set so scene files stay portable across renderers
var Palette = map[string]string{
	"white":          "#e5e5e5",
	"bright_white":   "#ffffff",
	"black":          "#000000",
	"grey":           "#808080",
	"yellow":         "#cdcd00",
	"bright_yellow":  "#ffff00",
	"gold":           "#ffd700",
	"orange":         "#ff8700",
	"red":            "#cd0000",
	"bright_red":     "#ff0000",
	"pink":           "#ffafd7",
	"magenta":        "#cd00cd",
	"bright_magenta": "#ff00ff",
	"green":          "#00cd00",
	"bright_green":   "#00ff00",
	"cyan":           "#00cdcd",
	"bright_cyan":    "#00ffff",
	"blue":           "#0000ee",
	"bright_blue":    "#5c5cff",
}

// Hex resolves a palette name or a literal "#rrggbb" value; ok is false for anything else
func Hex(name string) (string, bool) {
	if isHexLiteral(name) {
		return name, true
	}
	hex, ok := Palette[name]
	return hex, ok
}

// Known reports whether name resolves to a color
func Known(name string) bool {
	_, ok := Hex(name)
	return ok
}

func isHexLiteral(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

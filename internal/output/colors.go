package output

import (
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// ColorScheme defines the colors used for different elements in the output
type ColorScheme struct {
	Title  *color.Color
	Border *color.Color
	Label  *color.Color
	Value  *color.Color
	Dim    *color.Color
	Warn   *color.Color
	Alert  *color.Color
}

// DefaultColorScheme returns the default color scheme
func DefaultColorScheme() *ColorScheme {
	s := &ColorScheme{
		Title:  color.New(color.FgWhite, color.Bold),
		Border: color.New(color.FgCyan),
		Label:  color.New(color.FgYellow),
		Value:  color.New(color.FgWhite, color.Bold),
		Dim:    color.New(color.Faint),
		Warn:   color.New(color.FgYellow, color.Bold),
		Alert:  color.New(color.FgRed, color.Bold),
	}
	s.each(func(c *color.Color) { c.EnableColor() })
	return s
}

// NoColorScheme returns a color scheme with all colors disabled
func NoColorScheme() *ColorScheme {
	s := DefaultColorScheme()
	s.each(func(c *color.Color) { c.DisableColor() })
	return s
}

func (s *ColorScheme) each(fn func(*color.Color)) {
	for _, c := range []*color.Color{s.Title, s.Border, s.Label, s.Value, s.Dim, s.Warn, s.Alert} {
		fn(c)
	}
}

type namedColor struct {
	attr color.Attribute
	rgba Vec4
}

var namedColors = map[string]namedColor{
	"red":     {color.FgRed, Vec4{0.90, 0.25, 0.25, 1}},
	"green":   {color.FgGreen, Vec4{0.30, 0.85, 0.40, 1}},
	"yellow":  {color.FgYellow, Vec4{0.95, 0.85, 0.30, 1}},
	"blue":    {color.FgBlue, Vec4{0.30, 0.55, 0.95, 1}},
	"magenta": {color.FgMagenta, Vec4{0.85, 0.40, 0.85, 1}},
	"cyan":    {color.FgCyan, Vec4{0.30, 0.85, 0.90, 1}},
	"white":   {color.FgWhite, Vec4{1, 1, 1, 1}},
}

// defaultRGBA is used for empty or unknown color names.
var defaultRGBA = Vec4{0.85, 0.85, 0.85, 1}

// RGBA resolves a curve or bar color to normalized RGBA. Accepts the named
// terminal colors and "#rrggbb" / "#rrggbbaa".
func RGBA(name string) Vec4 {
	name = strings.ToLower(strings.TrimSpace(name))
	if nc, ok := namedColors[name]; ok {
		return nc.rgba
	}
	if rgba, ok := parseHex(name); ok {
		return rgba
	}
	return defaultRGBA
}

func parseHex(s string) (Vec4, bool) {
	if !strings.HasPrefix(s, "#") || (len(s) != 7 && len(s) != 9) {
		return Vec4{}, false
	}
	rgba := Vec4{0, 0, 0, 1}
	for i := 0; i < (len(s)-1)/2; i++ {
		n, err := strconv.ParseUint(s[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return Vec4{}, false
		}
		rgba[i] = float32(n) / 255
	}
	return rgba, true
}

// TermColor returns a terminal color for a curve or bar color name. Hex
// colors and unknown names map to the plain foreground.
func TermColor(name string, enabled bool) *color.Color {
	attr := color.Reset
	if nc, ok := namedColors[strings.ToLower(strings.TrimSpace(name))]; ok {
		attr = nc.attr
	}
	c := color.New(attr)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// KnownColor reports whether name is a supported color.
func KnownColor(name string) bool {
	if name == "" {
		return true
	}
	_, named := namedColors[strings.ToLower(strings.TrimSpace(name))]
	_, hex := parseHex(strings.ToLower(strings.TrimSpace(name)))
	return named || hex
}

// SuccessIcon returns a checkmark symbol with appropriate color
func SuccessIcon(noColor bool) string {
	if noColor {
		return "✓"
	}
	return color.New(color.FgGreen).Sprint("✓")
}

// ErrorIcon returns an X symbol with appropriate color
func ErrorIcon(noColor bool) string {
	if noColor {
		return "✗"
	}
	return color.New(color.FgRed).Sprint("✗")
}

// WarningIcon returns a warning symbol with appropriate color
func WarningIcon(noColor bool) string {
	if noColor {
		return "⚠"
	}
	return color.New(color.FgYellow).Sprint("⚠")
}

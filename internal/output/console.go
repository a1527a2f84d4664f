// Package output renders HUD frames: render-parameter binding for GPU
// consumers and a live terminal view for the CLI.
package output

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/wesleyorama2/perfhud/internal/hud"
	"github.com/wesleyorama2/perfhud/internal/hud/scale"
)

// ANSI escape codes for cursor control
const (
	cursorUp   = "\033[%dA" // Move cursor up N lines
	clearLine  = "\033[2K"  // Clear entire line
	hideCursor = "\033[?25l"
	showCursor = "\033[?25h"

	boxHorizontal = "━"

	barFilled = "█"
	barEmpty  = "░"
)

// sparkRunes are the eight block heights used for sparklines, lowest first.
var sparkRunes = []rune("▁▂▃▄▅▆▇█")

const (
	defaultWidth = 48
	labelWidth   = 12
)

// Console manages the live terminal view of a running HUD.
type Console struct {
	title  string
	writer io.Writer
	width  int
	isTTY  bool
	quiet  bool
	colors *ColorScheme
	color  bool

	mu          sync.Mutex
	linesOutput int // Number of lines in the live display
}

// ConsoleConfig contains configuration for Console.
type ConsoleConfig struct {
	Title  string
	Writer io.Writer

	// Width is the sparkline and bar width in cells
	Width int

	Quiet       bool
	NoColor     bool
	ForceColors bool
	ForceTTY    bool
}

// NewConsole creates a new console view.
func NewConsole(config ConsoleConfig) *Console {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}
	if config.Width <= 0 {
		config.Width = defaultWidth
	}

	isTTY := config.ForceTTY || isTerminal(config.Writer)
	useColors := !config.NoColor && (config.ForceColors || (isTTY && supportsColors()))

	colors := NoColorScheme()
	if useColors {
		colors = DefaultColorScheme()
	}

	return &Console{
		title:  config.Title,
		writer: config.Writer,
		width:  config.Width,
		isTTY:  isTTY,
		quiet:  config.Quiet,
		colors: colors,
		color:  useColors,
	}
}

// isTerminal checks if the writer is a terminal.
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok && (f == os.Stdout || f == os.Stderr) {
		return checkIsTerminal(f)
	}
	return false
}

// supportsColors checks if the terminal supports colors.
func supportsColors() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if runtime.GOOS == "windows" {
		return true
	}
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}

// IsTTY returns whether the output is a terminal.
func (c *Console) IsTTY() bool {
	return c.isTTY
}

// PrintHeader prints the title banner and hides the cursor on terminals.
func (c *Console) PrintHeader() {
	if c.quiet {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	line := strings.Repeat(boxHorizontal, c.width+labelWidth+16)
	c.writeln(c.colors.Border.Sprint(line))
	c.writeln(c.colors.Title.Sprint(c.title))
	c.writeln(c.colors.Border.Sprint(line))
	if c.isTTY {
		c.write(hideCursor)
	}
}

// Update redraws the live view in place. It is a no-op when not a TTY.
func (c *Console) Update(frame hud.Frame, elapsed time.Duration) {
	if c.quiet || !c.isTTY {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.clear()
	lines := c.renderFrame(frame, elapsed)
	c.linesOutput = len(lines)
	for _, line := range lines {
		c.writeln(line)
	}
}

// clear erases the previous live view.
func (c *Console) clear() {
	if c.linesOutput == 0 {
		return
	}
	c.write(fmt.Sprintf(cursorUp, c.linesOutput))
	for i := 0; i < c.linesOutput; i++ {
		c.write(clearLine + "\n")
	}
	c.write(fmt.Sprintf(cursorUp, c.linesOutput))
	c.linesOutput = 0
}

// renderFrame renders one frame as display lines.
func (c *Console) renderFrame(frame hud.Frame, elapsed time.Duration) []string {
	lines := []string{
		c.colors.Dim.Sprintf("frame %d | %s | %d sampled", frame.Number, formatDuration(elapsed), frame.Sampled),
	}

	if g := frame.Graph; g != nil {
		lines = append(lines, "")
		precision, unit := 1, ""
		if len(g.Curves) > 0 {
			precision, unit = g.Curves[0].Precision, g.Curves[0].Unit
		}
		lines = append(lines, c.colors.Dim.Sprintf("%s %s .. %s",
			padRight("range", labelWidth),
			FormatValue(g.Range.Min, precision, unit),
			FormatValue(g.Range.Max, precision, unit)))

		for _, curve := range g.Curves {
			value := "n/a"
			if curve.Len > 0 {
				value = FormatValue(curve.Latest, curve.Precision, curve.Unit)
			}
			spark := Sparkline(curve.Samples[:curve.Len], g.Range, c.width)
			lines = append(lines, fmt.Sprintf("%s %s %s",
				c.colors.Label.Sprint(padRight(curve.Label, labelWidth)),
				TermColor(curve.Color, c.color).Sprint(padRight(spark, c.width)),
				c.colors.Value.Sprint(value)))
		}
	}

	if len(frame.Bars) > 0 {
		lines = append(lines, "")
		for _, bar := range frame.Bars {
			lines = append(lines, c.renderBarLine(bar))
		}
	}
	return lines
}

// renderBarLine renders a labelled bar with its value and range.
func (c *Console) renderBarLine(bar hud.BarReading) string {
	value := c.colors.Dim.Sprint("n/a")
	if bar.Available {
		style := c.colors.Value
		switch {
		case bar.Norm >= 0.95:
			style = c.colors.Alert
		case bar.Norm >= 0.8:
			style = c.colors.Warn
		}
		value = style.Sprint(FormatValue(bar.Value, bar.Precision, bar.Unit))
	}

	return fmt.Sprintf("%s %s %s %s",
		c.colors.Label.Sprint(padRight(bar.Label, labelWidth)),
		TermColor(bar.Color, c.color).Sprint(RenderBar(bar.Norm, c.width)),
		value,
		c.colors.Dim.Sprintf("[%s, %s]",
			FormatValue(bar.Range.Min, bar.Precision, bar.Unit),
			FormatValue(bar.Range.Max, bar.Precision, bar.Unit)))
}

// PrintNonInteractiveUpdate prints a one-line status update.
// Used when output is not a TTY (e.g., piped to a file or CI/CD).
func (c *Console) PrintNonInteractiveUpdate(frame hud.Frame, elapsed time.Duration) {
	if c.quiet {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.writeln(fmt.Sprintf("[%s] %s", formatDuration(elapsed), summaryLine(frame)))
}

// PrintSummary clears the live view and prints the final frame.
func (c *Console) PrintSummary(frame hud.Frame, frames uint64, elapsed time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.quiet {
		c.writeln(summaryLine(frame))
		return
	}

	if c.isTTY {
		c.clear()
		c.write(showCursor)
	}

	fps := 0.0
	if elapsed > 0 {
		fps = float64(frames) / elapsed.Seconds()
	}

	line := strings.Repeat(boxHorizontal, c.width+labelWidth+16)
	c.writeln(c.colors.Border.Sprint(line))
	c.writeln(fmt.Sprintf("%s - %d frames in %s (%.1f fps)",
		c.colors.Title.Sprint(c.title), frames, formatDuration(elapsed), fps))
	c.writeln(c.colors.Border.Sprint(line))
	for _, l := range c.renderFrame(frame, elapsed) {
		c.writeln(l)
	}
}

// summaryLine renders the latest value of every curve and bar on one line.
func summaryLine(frame hud.Frame) string {
	parts := []string{fmt.Sprintf("frame %d", frame.Number)}
	if frame.Graph != nil {
		for _, curve := range frame.Graph.Curves {
			value := "n/a"
			if curve.Len > 0 {
				value = FormatValue(curve.Latest, curve.Precision, curve.Unit)
			}
			parts = append(parts, curve.Label+": "+value)
		}
	}
	for _, bar := range frame.Bars {
		value := "n/a"
		if bar.Available {
			value = fmt.Sprintf("%s (%.0f%%)", FormatValue(bar.Value, bar.Precision, bar.Unit), bar.Norm*100)
		}
		parts = append(parts, bar.Label+": "+value)
	}
	return strings.Join(parts, " | ")
}

// Sparkline renders the newest width samples as block characters scaled
// to r. Samples outside r are clamped.
func Sparkline(samples []float64, r scale.Range, width int) string {
	if width <= 0 || len(samples) == 0 {
		return ""
	}
	if len(samples) > width {
		samples = samples[len(samples)-width:]
	}

	top := float64(len(sparkRunes) - 1)
	var b strings.Builder
	for _, v := range samples {
		b.WriteRune(sparkRunes[int(r.Normalize(v)*top+0.5)])
	}
	return b.String()
}

// RenderBar renders a proportional bar of width cells filled to norm.
func RenderBar(norm float64, width int) string {
	if norm < 0 {
		norm = 0
	}
	if norm > 1 {
		norm = 1
	}

	filled := int(norm*float64(width) + 0.5)
	return strings.Repeat(barFilled, filled) + strings.Repeat(barEmpty, width-filled)
}

// write writes to the output without a newline.
func (c *Console) write(s string) {
	fmt.Fprint(c.writer, s)
}

// writeln writes to the output with a newline.
func (c *Console) writeln(s string) {
	fmt.Fprintln(c.writer, s)
}

// padRight pads s with spaces to width visible cells.
func padRight(s string, width int) string {
	n := len([]rune(stripANSI(s)))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// formatDuration formats a duration in a human-readable format.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %02ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
}

// stripANSI removes ANSI escape codes from a string.
func stripANSI(s string) string {
	var result strings.Builder
	inEscape := false

	for i := 0; i < len(s); i++ {
		if s[i] == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if (s[i] >= 'a' && s[i] <= 'z') || (s[i] >= 'A' && s[i] <= 'Z') {
				inEscape = false
			}
			continue
		}
		result.WriteByte(s[i])
	}

	return result.String()
}

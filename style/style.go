package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Color is a color name ("blue"), an ANSI index ("4", "244") or a hex value ("#ff8800").
// The empty Color means "terminal default".
type Color string

// Style describes how a run of visible text is painted.
type Style struct {
	FG    Color
	BG    Color
	Bold  bool
	Faint bool
}

// Span is a piece of visible text and the style it will be painted with.
// Width is always taken from Text, never from the painted result.
type Span struct {
	Text  string
	Style Style
}

// Width returns the number of terminal cells Text occupies.
func (s Span) Width() int {
	return runewidth.StringWidth(s.Text)
}

// Styler turns visible text into an encoded string and measures encoded strings.
// Markers produced by Paint must begin with ESC and end at an ANSI terminator.
type Styler interface {
	Paint(text string, st Style) string
	Width(encoded string) int
}

// Paint serializes spans in order.
func Paint(s Styler, spans ...Span) string {
	var b strings.Builder
	for _, sp := range spans {
		b.WriteString(s.Paint(sp.Text, sp.Style))
	}
	return b.String()
}

var namedColors = map[string]string{
	"black":          "0",
	"red":            "1",
	"green":          "2",
	"yellow":         "3",
	"blue":           "4",
	"magenta":        "5",
	"cyan":           "6",
	"white":          "7",
	"gray":           "8",
	"grey":           "8",
	"bright_black":   "8",
	"bright_red":     "9",
	"bright_green":   "10",
	"bright_yellow":  "11",
	"bright_blue":    "12",
	"bright_magenta": "13",
	"bright_cyan":    "14",
	"bright_white":   "15",
}

// Lipgloss paints through a lipgloss renderer, so the color profile of the
// renderer decides which escape codes (if any) are emitted.
type Lipgloss struct {
	r *lipgloss.Renderer
}

// NewLipgloss wraps r. A nil renderer uses lipgloss' default renderer.
func NewLipgloss(r *lipgloss.Renderer) *Lipgloss {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Lipgloss{r: r}
}

// Renderer exposes the underlying lipgloss renderer for layout work
// (tables, panes) that should share the same color profile.
func (l *Lipgloss) Renderer() *lipgloss.Renderer {
	return l.r
}

func (l *Lipgloss) Paint(text string, st Style) string {
	s := l.r.NewStyle()
	if st.FG != "" {
		s = s.Foreground(TerminalColor(st.FG))
	}
	if st.BG != "" {
		s = s.Background(TerminalColor(st.BG))
	}
	if st.Bold {
		s = s.Bold(true)
	}
	if st.Faint {
		s = s.Faint(true)
	}
	return s.Render(text)
}

func (l *Lipgloss) Width(encoded string) int {
	return ansi.StringWidth(encoded)
}

// Plain ignores styles entirely.
type Plain struct{}

func (Plain) Paint(text string, _ Style) string { return text }

func (Plain) Width(encoded string) int { return ansi.StringWidth(encoded) }

// TerminalColor maps c to a lipgloss color, resolving color names.
func TerminalColor(c Color) lipgloss.Color {
	name := strings.ToLower(strings.TrimSpace(string(c)))
	if code, ok := namedColors[name]; ok {
		return lipgloss.Color(code)
	}
	return lipgloss.Color(string(c))
}

package style

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Render paints text with fg/bg so that the result is exactly width cells wide.
// Text longer than width is clipped before painting, so markers are never cut;
// shorter text is followed by same-styled blanks. width <= 0 yields "".
func Render(s Styler, text string, fg, bg Color, width int) string {
	if width <= 0 {
		return ""
	}
	st := Style{FG: fg, BG: bg}
	spans := Fit(Span{Text: text, Style: st}, width)

	var b strings.Builder
	for _, sp := range spans {
		b.WriteString(s.Paint(sp.Text, sp.Style))
	}
	return b.String()
}

// Fit clips sp to width cells and appends one-cell blank spans in the same
// style until the total width equals width.
func Fit(sp Span, width int) []Span {
	if width <= 0 {
		return nil
	}
	text := sp.Text
	if runewidth.StringWidth(text) > width {
		text = runewidth.Truncate(text, width, "")
	}

	var spans []Span
	if text != "" {
		spans = append(spans, Span{Text: text, Style: sp.Style})
	}
	for w := runewidth.StringWidth(text); w < width; w++ {
		spans = append(spans, Span{Text: " ", Style: sp.Style})
	}
	return spans
}

// Label formats tag to exactly width cells (truncated, or padded with
// trailing spaces) and renders it with fg/bg.
func Label(s Styler, tag string, fg, bg Color, width int) string {
	if width <= 0 {
		return ""
	}
	return Render(s, FixedWidth(tag, width), fg, bg, width)
}

// FixedWidth returns tag truncated or right-padded to width cells.
func FixedWidth(tag string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(tag) > width {
		tag = runewidth.Truncate(tag, width, "")
	}
	return runewidth.FillRight(tag, width)
}

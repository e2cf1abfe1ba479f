package timeline

import (
	"strings"

	"github.com/mattn/go-runewidth"
	reansi "github.com/muesli/reflow/ansi"
)

const sgrReset = "\x1b[0m"

// Wrap re-flows an encoded glyph stream into lines of width visible cells.
//
// Escape sequences are copied whole and never counted. A style that is still
// open when a line fills up is reset at the end of that line and re-opened at
// the start of the next one. With pad, the last line is filled to width with
// blanks painted in the style of its last visible rune. A newline in the
// stream ends the current line early.
func Wrap(stream string, width int, pad bool) []string {
	if stream == "" {
		return nil
	}
	if width <= 0 {
		return []string{stream}
	}

	var (
		lines   []string
		line    strings.Builder
		seq     strings.Builder
		inSeq   bool
		visible int
		active  []string // SGR sequences in effect since the last reset
		pending []string // styles opened after the line filled up
		last    []string // style of the last visible rune on the line
	)

	closeLine := func() {
		if len(active) > 0 {
			line.WriteString(sgrReset)
		}
		lines = append(lines, line.String())
		line.Reset()
		visible = 0
		last = nil
		for _, s := range active {
			line.WriteString(s)
		}
		for _, s := range pending {
			line.WriteString(s)
		}
		active = append(active, pending...)
		pending = nil
	}

	for _, c := range stream {
		if inSeq {
			seq.WriteRune(c)
			if !reansi.IsTerminator(c) {
				continue
			}
			inSeq = false
			s := seq.String()
			switch {
			case !strings.HasSuffix(s, "m"):
				line.WriteString(s)
			case s == sgrReset || s == "\x1b[m":
				line.WriteString(s)
				active = active[:0]
				pending = nil
			case visible >= width:
				pending = append(pending, s)
			default:
				line.WriteString(s)
				active = append(active, s)
			}
			continue
		}
		if c == reansi.Marker {
			inSeq = true
			seq.Reset()
			seq.WriteRune(c)
			continue
		}
		if c == '\n' {
			closeLine()
			continue
		}

		w := runewidth.RuneWidth(c)
		if visible > 0 && visible+w > width {
			closeLine()
		}
		line.WriteRune(c)
		visible += w
		last = append(last[:0], active...)
	}

	// Nothing visible follows the last break; the line would hold only
	// reopened styles.
	if visible == 0 && (line.Len() == 0 || len(lines) > 0) {
		return lines
	}
	if pad && visible < width {
		if len(active) > 0 {
			line.WriteString(sgrReset)
		}
		blank := " "
		if len(last) > 0 {
			blank = strings.Join(last, "") + " " + sgrReset
		}
		line.WriteString(strings.Repeat(blank, width-visible))
	}
	lines = append(lines, line.String())
	return lines
}

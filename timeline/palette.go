package timeline

import (
	"strings"

	"github.com/dylan/timewar/style"
)

// Palette resolves tags to colors. Lookups are case-insensitive.
type Palette struct {
	Tags     map[string]style.Color
	Default  style.Color
	LabelFG  style.Color
	Empty    style.Color
	Hour     style.Color
	NoEvents style.Color
}

// DefaultTagColors is the built-in tag table.
func DefaultTagColors() map[string]style.Color {
	return map[string]style.Color{
		"work":    "blue",
		"meeting": "green",
		"coding":  "yellow",
		"break":   "red",
	}
}

func DefaultPalette() Palette {
	return Palette{
		Tags:     DefaultTagColors(),
		Default:  "white",
		LabelFG:  "black",
		NoEvents: "red",
	}
}

// ColorFor returns the color for tag, or the default color for unknown tags.
func (p Palette) ColorFor(tag string) style.Color {
	if c, ok := p.Tags[strings.ToLower(tag)]; ok {
		return c
	}
	return p.Default
}

// Glyphs are the single-cell runes a timeline is drawn with.
type Glyphs struct {
	Fill  string
	Empty string
}

var (
	BlockGlyphs = Glyphs{Fill: "█", Empty: "░"}
	ASCIIGlyphs = Glyphs{Fill: "#", Empty: "."}
)

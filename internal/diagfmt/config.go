package diagfmt

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Style selects how much of a diagnostic is rendered.
type Style uint8

const (
	// StyleRich renders the full report with source previews.
	//
	//	error[E0001]: unexpected type in `+` application
	//
	//	   ┌─ test:2:9
	//	   │
	//	 2 │ (+ test "")
	//	   │         ^^ expected `Int` but found `String`
	//	   │
	//	   = expected type `Int`
	//	        found type `String`
	StyleRich Style = iota
	// StyleShort renders one line per primary label.
	//
	//	test:2:9: error[E0001]: unexpected type in `+` application
	StyleShort
)

// Config controls how diagnostics are rendered. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	// Style selects rich or short output. Defaults to StyleRich.
	Style Style
	// TabWidth is the column width of a tab stop. Defaults to 4.
	TabWidth int
	// Styles maps render elements to colors.
	Styles Styles
	// Chars is the glyph set used for borders, carets and brackets.
	Chars Chars
}

// DefaultConfig returns the standard rich configuration.
func DefaultConfig() Config {
	return Config{
		Style:    StyleRich,
		TabWidth: 4,
		Styles:   DefaultStyles(),
		Chars:    DefaultChars(),
	}
}

// width measures the display width of a string: tabs expand to
// TabWidth, wide runes count as two columns, combining marks as zero.
// This is distinct from the column index reported in a locus, which
// counts characters.
func (c *Config) width(s string) int {
	w := 0
	for _, r := range s {
		if r == '\t' {
			w += c.TabWidth
		} else {
			w += runewidth.RuneWidth(r)
		}
	}
	return w
}

// expandTabs rewrites tabs as TabWidth spaces so emitted source rows
// line up with the width math used for underlines.
func (c *Config) expandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", c.TabWidth))
}

package diagfmt

// Chars is the glyph set used when rendering a diagnostic. Every glyph
// can be overridden, e.g. to swap the box-drawing defaults for ASCII.
type Chars struct {
	// SourceBorderTopLeft is the top-left corner of the locus line.
	// Defaults to '┌'.
	SourceBorderTopLeft rune
	// SourceBorderTop is the horizontal border next to the locus.
	// Defaults to '─'.
	SourceBorderTop rune
	// SourceBorderLeft is the left border of a source row.
	// Defaults to '│'.
	SourceBorderLeft rune
	// SourceBorderLeftBreak marks skipped source lines.
	// Defaults to '·'.
	SourceBorderLeftBreak rune

	// NoteBullet introduces a trailing note. Defaults to '='.
	NoteBullet rune

	// PrimaryCaret underlines a single-line primary label.
	// Defaults to '^'.
	PrimaryCaret rune
	// SecondaryCaret underlines a single-line secondary label.
	// Defaults to '-'.
	SecondaryCaret rune

	// MultiPrimaryCaret ends a multi-line primary bracket.
	// Defaults to '^'.
	MultiPrimaryCaret rune
	// MultiSecondaryCaret ends a multi-line secondary bracket.
	// Defaults to '\''.
	MultiSecondaryCaret rune
	// MultiTopLeft is the top-left corner of a multi-line bracket.
	// Defaults to '╭'.
	MultiTopLeft rune
	// MultiTop is the horizontal part of a top bracket. Defaults to '─'.
	MultiTop rune
	// MultiBottomLeft is the bottom-left corner of a multi-line
	// bracket. Defaults to '╰'.
	MultiBottomLeft rune
	// MultiBottom is the horizontal part of a bottom bracket.
	// Defaults to '─'.
	MultiBottom rune
	// MultiLeft is the vertical continuation of a multi-line bracket.
	// Defaults to '│'.
	MultiLeft rune
}

// DefaultChars returns the Unicode box-drawing glyph set.
func DefaultChars() Chars {
	return Chars{
		SourceBorderTopLeft:   '┌',
		SourceBorderTop:       '─',
		SourceBorderLeft:      '│',
		SourceBorderLeftBreak: '·',

		NoteBullet: '=',

		PrimaryCaret:   '^',
		SecondaryCaret: '-',

		MultiPrimaryCaret:   '^',
		MultiSecondaryCaret: '\'',
		MultiTopLeft:        '╭',
		MultiTop:            '─',
		MultiBottomLeft:     '╰',
		MultiBottom:         '─',
		MultiLeft:           '│',
	}
}

// ASCIIChars returns a seven-bit-safe glyph set.
func ASCIIChars() Chars {
	return Chars{
		SourceBorderTopLeft:   '-',
		SourceBorderTop:       '-',
		SourceBorderLeft:      '|',
		SourceBorderLeftBreak: '.',

		NoteBullet: '=',

		PrimaryCaret:   '^',
		SecondaryCaret: '-',

		MultiPrimaryCaret:   '^',
		MultiSecondaryCaret: '\'',
		MultiTopLeft:        '/',
		MultiTop:            '-',
		MultiBottomLeft:     '\\',
		MultiBottom:         '-',
		MultiLeft:           '|',
	}
}

func (c *Chars) singleCaret(m markStyle) rune {
	if m.primary {
		return c.PrimaryCaret
	}
	return c.SecondaryCaret
}

func (c *Chars) multiCaretStart(m markStyle) rune {
	if m.primary {
		return c.MultiPrimaryCaret
	}
	return c.MultiSecondaryCaret
}

func (c *Chars) multiCaretEnd(m markStyle) rune {
	if m.primary {
		return c.MultiPrimaryCaret
	}
	return c.MultiSecondaryCaret
}

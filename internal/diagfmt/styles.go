package diagfmt

import (
	"github.com/fatih/color"

	"codemark/internal/diag"
)

// markStyle is the color identity of a rendered mark: primary marks
// take the diagnostic's severity color, secondary marks use a fixed
// neutral color.
type markStyle struct {
	primary  bool
	severity diag.Severity
}

func primaryMark(sev diag.Severity) markStyle {
	return markStyle{primary: true, severity: sev}
}

func secondaryMark() markStyle {
	return markStyle{}
}

// Styles maps render elements to colors. Any field may be replaced;
// nil entries render unstyled.
type Styles struct {
	// Header styles, one per severity. Default: bold severity color.
	HeaderBug     *color.Color
	HeaderError   *color.Color
	HeaderWarning *color.Color
	HeaderNote    *color.Color
	HeaderHelp    *color.Color
	// HeaderMessage styles the message after the severity prefix.
	// Default: bold.
	HeaderMessage *color.Color

	// Primary label styles, one per severity. Default: severity color.
	PrimaryLabelBug     *color.Color
	PrimaryLabelError   *color.Color
	PrimaryLabelWarning *color.Color
	PrimaryLabelNote    *color.Color
	PrimaryLabelHelp    *color.Color
	// SecondaryLabel styles secondary marks. Default: blue.
	SecondaryLabel *color.Color

	// LineNumber styles the outer gutter numbers. Default: blue.
	LineNumber *color.Color
	// SourceBorder styles the border glyphs. Default: blue.
	SourceBorder *color.Color
	// NoteBullet styles the '=' in front of notes. Default: blue.
	NoteBullet *color.Color
}

// DefaultStyles mirrors the palette used by most compilers: red
// errors, yellow warnings, green notes, cyan help, blue furniture.
func DefaultStyles() Styles {
	return Styles{
		HeaderBug:     color.New(color.FgHiRed, color.Bold),
		HeaderError:   color.New(color.FgHiRed, color.Bold),
		HeaderWarning: color.New(color.FgHiYellow, color.Bold),
		HeaderNote:    color.New(color.FgHiGreen, color.Bold),
		HeaderHelp:    color.New(color.FgHiCyan, color.Bold),
		HeaderMessage: color.New(color.Bold),

		PrimaryLabelBug:     color.New(color.FgRed),
		PrimaryLabelError:   color.New(color.FgRed),
		PrimaryLabelWarning: color.New(color.FgYellow),
		PrimaryLabelNote:    color.New(color.FgGreen),
		PrimaryLabelHelp:    color.New(color.FgCyan),
		SecondaryLabel:      color.New(color.FgBlue),

		LineNumber:   color.New(color.FgBlue),
		SourceBorder: color.New(color.FgBlue),
		NoteBullet:   color.New(color.FgBlue),
	}
}

// Header returns the header style for a severity.
func (s *Styles) Header(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevBug:
		return s.HeaderBug
	case diag.SevError:
		return s.HeaderError
	case diag.SevWarning:
		return s.HeaderWarning
	case diag.SevNote:
		return s.HeaderNote
	case diag.SevHelp:
		return s.HeaderHelp
	}
	return s.HeaderMessage
}

// Label returns the style for a mark.
func (s *Styles) Label(m markStyle) *color.Color {
	if !m.primary {
		return s.SecondaryLabel
	}
	switch m.severity {
	case diag.SevBug:
		return s.PrimaryLabelBug
	case diag.SevError:
		return s.PrimaryLabelError
	case diag.SevWarning:
		return s.PrimaryLabelWarning
	case diag.SevNote:
		return s.PrimaryLabelNote
	case diag.SevHelp:
		return s.PrimaryLabelHelp
	}
	return s.SecondaryLabel
}

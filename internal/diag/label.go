package diag

import "codemark/internal/source"

// LabelStyle distinguishes the span a diagnostic is about from spans
// that add context.
type LabelStyle uint8

const (
	// LabelPrimary marks the span the diagnostic is about.
	LabelPrimary LabelStyle = iota
	// LabelSecondary marks a related span shown for context.
	LabelSecondary
)

// Label attaches an optional message to a byte span in a source file.
type Label struct {
	Style   LabelStyle
	Span    source.Span
	Message string
}

// PrimaryLabel creates a primary label over the given span.
func PrimaryLabel(span source.Span) Label {
	return Label{Style: LabelPrimary, Span: span}
}

// SecondaryLabel creates a secondary label over the given span.
func SecondaryLabel(span source.Span) Label {
	return Label{Style: LabelSecondary, Span: span}
}

// WithMessage returns a copy of the label carrying the given message.
func (l Label) WithMessage(msg string) Label {
	l.Message = msg
	return l
}

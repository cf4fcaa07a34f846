package diag

import (
	"codemark/internal/source"
)

// Diagnostic is a single report: a severity, an optional code, a
// message, any number of labeled spans, and free-floating notes.
// It is a plain value; the With* methods return modified copies.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	Labels   []Label
	Notes    []string
}

// New creates an empty diagnostic with the given severity.
func New(sev Severity) Diagnostic {
	return Diagnostic{Severity: sev}
}

// Bug creates a diagnostic for an unexpected internal failure.
func Bug() Diagnostic { return New(SevBug) }

// Error creates an error diagnostic.
func Error() Diagnostic { return New(SevError) }

// Warning creates a warning diagnostic.
func Warning() Diagnostic { return New(SevWarning) }

// Note creates an informational diagnostic.
func Note() Diagnostic { return New(SevNote) }

// Help creates a help diagnostic.
func Help() Diagnostic { return New(SevHelp) }

// WithCode sets the machine-readable code shown next to the severity.
func (d Diagnostic) WithCode(code string) Diagnostic {
	d.Code = code
	return d
}

// WithMessage sets the headline message.
func (d Diagnostic) WithMessage(msg string) Diagnostic {
	d.Message = msg
	return d
}

// WithLabels appends labeled spans.
func (d Diagnostic) WithLabels(labels ...Label) Diagnostic {
	d.Labels = append(d.Labels, labels...)
	return d
}

// WithNotes appends trailing notes rendered after the snippets.
func (d Diagnostic) WithNotes(notes ...string) Diagnostic {
	d.Notes = append(d.Notes, notes...)
	return d
}

// PrimarySpan returns the span of the earliest primary label, ordered
// by (file, start), falling back to the earliest label of any style.
// ok is false when the diagnostic carries no labels at all.
func (d Diagnostic) PrimarySpan() (span source.Span, ok bool) {
	found := false
	for _, l := range d.Labels {
		if l.Style != LabelPrimary {
			continue
		}
		if !found || spanBefore(l.Span, span) {
			span = l.Span
			found = true
		}
	}
	if found {
		return span, true
	}
	for _, l := range d.Labels {
		if !found || spanBefore(l.Span, span) {
			span = l.Span
			found = true
		}
	}
	return span, found
}

// spanBefore orders spans by file, then start offset.
func spanBefore(a, b source.Span) bool {
	if a.File != b.File {
		return a.File < b.File
	}
	return a.Start < b.Start
}

package diag

import "codemark/internal/source"

// Reporter is the minimal contract for receiving diagnostics from
// producers. Implementations: BagReporter (collects into a Bag),
// DedupReporter (suppresses duplicates).
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter is an adapter that writes into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// ReportBuilder accumulates diagnostic details before emitting to a
// Reporter exactly once.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to a Reporter.
func NewReportBuilder(r Reporter, sev Severity, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag:     New(sev).WithMessage(msg),
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, msg)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, msg)
}

// WithCode sets the diagnostic code.
func (b *ReportBuilder) WithCode(code string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithCode(code)
	return b
}

// WithPrimary appends a primary label.
func (b *ReportBuilder) WithPrimary(span source.Span, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithLabels(PrimaryLabel(span).WithMessage(msg))
	return b
}

// WithSecondary appends a secondary label.
func (b *ReportBuilder) WithSecondary(span source.Span, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithLabels(SecondaryLabel(span).WithMessage(msg))
	return b
}

// WithNote appends a trailing note.
func (b *ReportBuilder) WithNote(msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithNotes(msg)
	return b
}

// Emit sends the diagnostic to the underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag)
	}
	b.emitted = true
}

// Diagnostic returns the accumulated diagnostic without emitting.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}

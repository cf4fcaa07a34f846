package diagfmt

import (
	"fmt"

	"codemark/internal/diag"
	"codemark/internal/source"
)

// Emit renders one diagnostic to the surface, using the index to
// resolve label spans. Position lookups for a snippet all happen
// before any of its rows are written, so a bad span surfaces as a
// typed error from the source package instead of a torn report.
// Rendering the same diagnostic against an unchanged index twice
// produces identical bytes.
func Emit(out Surface, cfg *Config, index source.Index, d diag.Diagnostic) error {
	switch cfg.Style {
	case StyleShort:
		return emitShort(out, cfg, index, d)
	default:
		return emitRich(out, cfg, index, d)
	}
}

// emitRich writes the full report: header, blank line, one snippet per
// labeled file in first-seen order, the notes, and a trailing blank
// line separating consecutive diagnostics.
func emitRich(out Surface, cfg *Config, index source.Index, d diag.Diagnostic) error {
	lay, err := buildLayout(index, d)
	if err != nil {
		return err
	}

	r := newRenderer(out, cfg)
	r.renderHeader("", d)
	r.renderEmpty()

	for _, fl := range lay.files {
		r.renderSourceStart(lay.padding, fl)
		r.renderSourceEmpty(lay.padding)
		for _, row := range fl.rows {
			switch row.kind {
			case rowBreak:
				r.renderSourceBreak(lay.padding, fl.numMulti, row.multis)
			default:
				r.renderSourceLine(lay.padding, row.line, fl.numMulti)
			}
		}
		r.renderSourceEmpty(lay.padding)
	}

	for _, note := range d.Notes {
		r.renderSourceNote(lay.padding, note)
	}
	r.renderEmpty()

	return r.err
}

// emitShort writes one "origin:line:col: header" line per primary
// label, or a single bare header when the diagnostic has none.
func emitShort(out Surface, cfg *Config, index source.Index, d diag.Diagnostic) error {
	r := newRenderer(out, cfg)

	primaries := 0
	for _, label := range d.Labels {
		if label.Style != diag.LabelPrimary {
			continue
		}
		name, err := index.Origin(label.Span.File)
		if err != nil {
			return err
		}
		loc, err := index.Location(label.Span.File, label.Span.Start)
		if err != nil {
			return err
		}
		r.renderHeader(fmt.Sprintf("%s:%d:%d", name, loc.Line, loc.Col), d)
		primaries++
	}
	if primaries == 0 {
		r.renderHeader("", d)
	}

	return r.err
}

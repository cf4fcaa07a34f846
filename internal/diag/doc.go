// Package diag defines the diagnostic data model rendered by diagfmt.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture
//     findings produced by any tool working over source.Span values.
//   - Offer light-weight utilities (Reporter, Bag) that let producers
//     emit diagnostics without coupling to concrete storage or
//     formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO, or CLI
// integration. Rendering responsibilities live in internal/diagfmt.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – five-level enum (Help, Note, Warning, Error, Bug)
//     defined in severity.go.
//   - Code – optional free-form identifier rendered next to the
//     severity, e.g. "E0308".
//   - Message – human oriented text; keep it short and actionable.
//   - Labels – spans with optional messages. A primary label marks the
//     span the diagnostic is about; secondary labels add context.
//   - Notes – trailing free-form notes rendered after the snippets.
//
// Diagnostics are plain values built with the New/Error/Warning/...
// constructors and the chaining With* methods; nothing here mutates in
// place.
//
// # Emitting diagnostics
//
// Producers should use a diag.Reporter to decouple emission from
// storage: construct a ReportBuilder via NewReportBuilder (or
// ReportError/ReportWarning) and chain WithPrimary / WithSecondary /
// WithNote before calling Emit. For direct collection, diag.BagReporter
// aggregates diagnostics into a Bag, which supports sorting,
// deduplication, and merge.
package diag

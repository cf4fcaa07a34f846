// Package diagfmt renders diag.Diagnostic values as compiler-style
// terminal reports: a header, per-file source snippets with gutters,
// underlines and multi-line brackets, and trailing notes.
//
// The entry point is Emit. It resolves label spans through a
// source.Index, lays the snippet out (layout.go), and writes styled
// rows to a Surface (renderer.go). Rich and short styles, glyphs,
// colors and tab width are controlled by Config.
//
//	fs := source.NewFileSet()
//	id := fs.AddVirtual("test.fun", content)
//
//	d := diag.Error().
//		WithCode("E0308").
//		WithMessage("mismatched types").
//		WithLabels(diag.PrimaryLabel(source.Span{File: id, Start: 6, End: 10}))
//
//	cfg := diagfmt.DefaultConfig()
//	err := diagfmt.Emit(diagfmt.NewColorSurface(os.Stderr), &cfg, fs, d)
//
// Surfaces decouple styling from the render: NewColorSurface writes
// ANSI escapes, NewPlainSurface and NewBufferSurface drop styling for
// plain writers and in-memory capture.
package diagfmt

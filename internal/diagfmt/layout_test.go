package diagfmt

import (
	"testing"

	"codemark/internal/diag"
	"codemark/internal/source"
)

func TestBuildLayoutBracketIndexStability(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("n", []byte("one\ntwo\nthree\nfour\n"))

	d := diag.Error().
		WithMessage("nested").
		WithLabels(
			diag.PrimaryLabel(source.Span{Start: 0, End: 17}).WithMessage("outer"),
			diag.SecondaryLabel(source.Span{Start: 4, End: 13}).WithMessage("inner"),
		)

	lay, err := buildLayout(fs, d)
	if err != nil {
		t.Fatalf("buildLayout() error: %v", err)
	}
	if len(lay.files) != 1 {
		t.Fatalf("len(files) = %d, want 1", len(lay.files))
	}

	fl := lay.files[0]
	if fl.numMulti != 2 {
		t.Fatalf("numMulti = %d, want 2", fl.numMulti)
	}

	// every mark of one label carries the bracket index assigned at its top
	indexByKind := map[int][]multiMarkKind{}
	for _, row := range fl.rows {
		if row.kind != rowLine {
			continue
		}
		for _, m := range row.line.multis {
			indexByKind[m.index] = append(indexByKind[m.index], m.kind)
		}
	}

	wantOuter := []multiMarkKind{markTopLeft, markLeft, markLeft, markBottom}
	wantInner := []multiMarkKind{markTopLeft, markBottom}
	for i, kind := range wantOuter {
		if indexByKind[0][i] != kind {
			t.Errorf("bracket 0 mark %d = %d, want %d", i, indexByKind[0][i], kind)
		}
	}
	for i, kind := range wantInner {
		if indexByKind[1][i] != kind {
			t.Errorf("bracket 1 mark %d = %d, want %d", i, indexByKind[1][i], kind)
		}
	}
}

func TestEmitNestedBrackets(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("n", []byte("one\ntwo\nthree\nfour\n"))

	d := diag.Error().
		WithMessage("nested").
		WithLabels(
			diag.PrimaryLabel(source.Span{Start: 0, End: 17}).WithMessage("outer"),
			diag.SecondaryLabel(source.Span{Start: 4, End: 13}).WithMessage("inner"),
		)

	got := render(t, DefaultConfig(), fs, d)
	want := "" +
		"error: nested\n" +
		"\n" +
		"   ┌─ n:1:1\n" +
		"   │\n" +
		" 1 │ ╭   one\n" +
		" 2 │ │ ╭ two\n" +
		" 3 │ │ │ three\n" +
		"   │ │ ╰─────' inner\n" +
		" 4 │ │   four\n" +
		"   │ ╰─────^ outer\n" +
		"   │\n" +
		"\n"
	if got != want {
		t.Errorf("output =\n%q\nwant\n%q", got, want)
	}
}

func TestInsertSingleOrdering(t *testing.T) {
	marks := []singleMark{}
	marks = insertSingle(marks, singleMark{start: 5, end: 9, message: "b"})
	marks = insertSingle(marks, singleMark{start: 0, end: 3, message: "a"})
	marks = insertSingle(marks, singleMark{start: 5, end: 9, message: "c"})
	marks = insertSingle(marks, singleMark{start: 5, end: 7, message: "d"})

	want := []string{"a", "d", "b", "c"}
	for i, m := range marks {
		if m.message != want[i] {
			t.Errorf("marks[%d].message = %q, want %q", i, m.message, want[i])
		}
	}
}

func TestConfigWidth(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "ascii", input: "hello", want: 5},
		{name: "tab counts as TabWidth", input: "\ta", want: 5},
		{name: "wide rune counts as two", input: "犬", want: 2},
		{name: "combining mark counts as zero", input: "e\u0301", want: 1},
		{name: "precomposed accent", input: "\u00e9", want: 1},
		{name: "newline counts as zero", input: "ab\n", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.width(tt.input); got != tt.want {
				t.Errorf("width(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestEmitWideRunePadding(t *testing.T) {
	fs := source.NewFileSet()
	// the dog is two bytes of padding but four display columns
	fs.AddVirtual("w", []byte("犬犬 fizz\n"))

	d := diag.Error().
		WithMessage("wide").
		WithLabels(diag.PrimaryLabel(source.Span{Start: 7, End: 11}))

	got := render(t, DefaultConfig(), fs, d)
	want := "" +
		"error: wide\n" +
		"\n" +
		"   ┌─ w:1:4\n" +
		"   │\n" +
		" 1 │ 犬犬 fizz\n" +
		"   │      ^^^^\n" +
		"   │\n" +
		"\n"
	if got != want {
		t.Errorf("output =\n%q\nwant\n%q", got, want)
	}
}

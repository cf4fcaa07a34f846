package diag

import (
	"math"
	"testing"

	"codemark/internal/source"
)

func labeled(sev Severity, code string, start, end uint32) Diagnostic {
	return New(sev).
		WithCode(code).
		WithLabels(PrimaryLabel(source.Span{Start: start, End: end}))
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)

	if !bag.Add(labeled(SevError, "E1", 0, 1)) {
		t.Fatal("first Add() = false, want true")
	}
	if !bag.Add(labeled(SevError, "E2", 1, 2)) {
		t.Fatal("second Add() = false, want true")
	}
	if bag.Add(labeled(SevError, "E3", 2, 3)) {
		t.Error("third Add() = true, want false (bag full)")
	}
	if bag.Len() != 2 {
		t.Errorf("Len() = %d, want 2", bag.Len())
	}
}

func TestNewBagClampsLimit(t *testing.T) {
	bag := NewBag(-1)
	if bag.Cap() != 0 {
		t.Errorf("NewBag(-1).Cap() = %d, want 0", bag.Cap())
	}
	if bag.Add(labeled(SevError, "E1", 0, 1)) {
		t.Error("Add() = true on a zero-capacity bag")
	}

	bag = NewBag(1 << 20)
	if bag.Cap() != math.MaxUint16 {
		t.Errorf("NewBag(1<<20).Cap() = %d, want %d", bag.Cap(), math.MaxUint16)
	}
}

func TestBagHasErrors(t *testing.T) {
	bag := NewBag(4)
	bag.Add(labeled(SevWarning, "W1", 0, 1))

	if bag.HasErrors() {
		t.Error("HasErrors() = true for warning-only bag")
	}
	if !bag.HasWarnings() {
		t.Error("HasWarnings() = false, want true")
	}

	bag.Add(labeled(SevBug, "ICE", 0, 1))
	if !bag.HasErrors() {
		t.Error("HasErrors() = false after adding a bug")
	}
}

func TestBagSort(t *testing.T) {
	bag := NewBag(8)
	bag.Add(labeled(SevWarning, "B", 5, 9))
	bag.Add(labeled(SevError, "A", 5, 9))
	bag.Add(labeled(SevError, "C", 0, 3))

	bag.Sort()

	items := bag.Items()
	wantCodes := []string{"C", "A", "B"}
	for i, want := range wantCodes {
		if items[i].Code != want {
			t.Errorf("Items()[%d].Code = %q, want %q", i, items[i].Code, want)
		}
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(4)
	d := labeled(SevError, "E1", 0, 3).WithMessage("dup")
	bag.Add(d)
	bag.Add(d)
	bag.Add(labeled(SevError, "E1", 0, 3).WithMessage("other"))

	bag.Dedup()

	if bag.Len() != 2 {
		t.Errorf("Len() after Dedup = %d, want 2", bag.Len())
	}
}

func TestBagMerge(t *testing.T) {
	a := NewBag(1)
	a.Add(labeled(SevError, "E1", 0, 1))

	b := NewBag(2)
	b.Add(labeled(SevWarning, "W1", 1, 2))
	b.Add(labeled(SevWarning, "W2", 2, 3))

	a.Merge(b)

	if a.Len() != 3 {
		t.Errorf("Len() after Merge = %d, want 3", a.Len())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(8)
	r := NewDedupReporter(BagReporter{Bag: bag})

	d := labeled(SevError, "E1", 4, 8).WithMessage("same")
	r.Report(d)
	r.Report(d)
	r.Report(labeled(SevError, "E1", 4, 8).WithMessage("different"))

	if bag.Len() != 2 {
		t.Errorf("bag.Len() = %d, want 2", bag.Len())
	}
}

func TestReportBuilderEmitOnce(t *testing.T) {
	bag := NewBag(4)
	b := ReportError(BagReporter{Bag: bag}, "bad thing").
		WithCode("E9").
		WithPrimary(source.Span{Start: 1, End: 2}, "here").
		WithNote("try the other thing")

	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("bag.Len() = %d, want 1", bag.Len())
	}

	got := bag.Items()[0]
	if got.Code != "E9" || got.Message != "bad thing" {
		t.Errorf("diagnostic = %+v, want code E9 message %q", got, "bad thing")
	}
	if len(got.Labels) != 1 || got.Labels[0].Message != "here" {
		t.Errorf("Labels = %+v, want one primary with message %q", got.Labels, "here")
	}
	if len(got.Notes) != 1 {
		t.Errorf("Notes = %v, want one note", got.Notes)
	}
}

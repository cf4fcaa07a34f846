package diag

import (
	"fmt"
	"math"
	"sort"
)

// Bag is a bounded accumulator of diagnostics.
type Bag struct {
	items []Diagnostic
	max   uint16
}

// NewBag creates a bag holding at most max diagnostics. The limit is
// clamped to [0, math.MaxUint16].
func NewBag(max int) *Bag {
	if max < 0 {
		max = 0
	}
	if max > math.MaxUint16 {
		max = math.MaxUint16
	}
	return &Bag{
		items: make([]Diagnostic, 0, max),
		max:   uint16(max),
	}
}

// Add appends a diagnostic, honoring the limit.
// Returns false when the bag is full.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 {
	return b.max
}

// HasErrors returns true if any diagnostic has Severity >= Error.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings returns true if any diagnostic has Severity >= Warning.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns a read-only slice of diagnostics.
// Callers must not modify the returned slice.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends diagnostics from another Bag, growing max if needed.
func (b *Bag) Merge(other *Bag) {
	newTotal := len(b.items) + len(other.items)
	if uint16(newTotal) > b.max {
		b.max = uint16(newTotal)
	}
	b.items = append(b.items, other.items...)
}

// Sort orders diagnostics by file, start, end, severity (desc), code
// (asc) for a stable, deterministic output order. Diagnostics without
// labels sort before labeled ones in the same file bucket.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		si, _ := di.PrimarySpan()
		sj, _ := dj.PrimarySpan()
		if si.File != sj.File {
			return si.File < sj.File
		}
		if si.Start != sj.Start {
			return si.Start < sj.Start
		}
		if si.End != sj.End {
			return si.End < sj.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Dedup removes diagnostics with the same code, severity, primary span
// and message, keeping the first occurrence.
func (b *Bag) Dedup() {
	seen := make(map[string]bool)
	newitems := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		span, _ := d.PrimarySpan()
		key := fmt.Sprintf("%s:%d:%s:%s", d.Code, d.Severity, span.String(), d.Message)
		if seen[key] {
			continue
		}
		seen[key] = true
		newitems = append(newitems, d)
	}
	b.items = newitems
}

// Package lsp converts between byte offsets into source.File content
// and Language Server Protocol positions, which count lines from zero
// and columns in UTF-16 code units.
package lsp

import (
	"sort"
	"unicode/utf8"

	"fortio.org/safecast"

	"codemark/internal/source"
)

// Position is a zero-based line and UTF-16 column, as the protocol
// defines them.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a half-open [Start, End) pair of positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

const maxUint32 = ^uint32(0)

func safeUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return maxUint32
	}
	return v
}

// OffsetForPosition maps a protocol position to a byte offset. Out of
// range lines clamp to the end of the file; a column past the end of
// its line clamps to the line end, never crossing the newline.
func OffsetForPosition(file *source.File, pos Position) uint32 {
	if file == nil || pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	content := file.Content
	if len(content) == 0 {
		return 0
	}
	contentLen := safeUint32(len(content))
	if pos.Line >= int(file.LineCount()) {
		return contentLen
	}
	var lineStart uint32
	if pos.Line > 0 {
		lineStart = file.LineIdx[pos.Line-1] + 1
	}
	lineEnd := contentLen
	if pos.Line < len(file.LineIdx) {
		lineEnd = file.LineIdx[pos.Line]
	}
	if lineStart > lineEnd {
		return lineEnd
	}
	units := 0
	off := lineStart
	for off < lineEnd {
		r, size := utf8.DecodeRune(content[off:lineEnd])
		need := 1
		if r > 0xFFFF {
			need = 2
		}
		if units+need > pos.Character {
			break
		}
		units += need
		off += safeUint32(size)
		if units == pos.Character {
			break
		}
	}
	return off
}

// PositionForOffset maps a byte offset to a protocol position. Offsets
// past the end of the file clamp to the final position.
func PositionForOffset(file *source.File, offset uint32) Position {
	if file == nil {
		return Position{}
	}
	contentLen := safeUint32(len(file.Content))
	if offset > contentLen {
		offset = contentLen
	}
	lineIdx := file.LineIdx
	idx := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= offset })
	var lineStart uint32
	if idx > 0 {
		lineStart = lineIdx[idx-1] + 1
	}
	if lineStart > offset {
		lineStart = offset
	}
	units := 0
	for off := lineStart; off < offset; {
		r, size := utf8.DecodeRune(file.Content[off:offset])
		if off+safeUint32(size) > offset {
			break
		}
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		off += safeUint32(size)
	}
	return Position{Line: idx, Character: units}
}

// RangeForSpan converts a span's byte offsets to a protocol range.
func RangeForSpan(file *source.File, span source.Span) Range {
	if file == nil {
		return Range{}
	}
	return Range{
		Start: PositionForOffset(file, span.Start),
		End:   PositionForOffset(file, span.End),
	}
}

// SpanForRange converts a protocol range back to byte offsets in the
// given file. The span keeps the file's ID.
func SpanForRange(file *source.File, r Range) source.Span {
	if file == nil {
		return source.Span{}
	}
	return source.Span{
		File:  file.ID,
		Start: OffsetForPosition(file, r.Start),
		End:   OffsetForPosition(file, r.End),
	}
}

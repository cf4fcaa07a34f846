package source

import (
	"fmt"
	"path/filepath"
	"slices"
	"sort"
	"unicode/utf8"

	"fortio.org/safecast"
)

// normalizeCRLF replaces every \r\n with \n, leaving lone \r alone.
// Returns the new slice and whether anything changed.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/16)
	for i, b := range content {
		if b == '\n' {
			off, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("newline offset overflow: %w", err))
			}
			out = append(out, off)
		}
	}
	return out
}

// lineIndexFor returns the 0-based line containing off. The newline
// byte belongs to the line it terminates; an offset equal to the file
// length lands on the last line.
func (f *File) lineIndexFor(off uint32) uint32 {
	i := sort.Search(len(f.LineIdx), func(i int) bool {
		return f.LineIdx[i] >= off
	})
	line, err := safecast.Conv[uint32](i)
	if err != nil {
		panic(fmt.Errorf("line index overflow: %w", err))
	}
	return line
}

// lineRange returns the byte range of the 0-based line, including the
// trailing newline if present.
func (f *File) lineRange(line uint32) (Span, error) {
	count := f.LineCount()
	if line >= count {
		return Span{}, &LineOutOfBoundsError{File: f.ID, Line: line, Max: count}
	}
	var start uint32
	if line > 0 {
		start = f.LineIdx[line-1] + 1
	}
	end := f.Size()
	if line < count-1 {
		end = f.LineIdx[line] + 1
	}
	return Span{File: f.ID, Start: start, End: end}, nil
}

// location resolves a byte offset to a 1-based line/column pair,
// counting columns in Unicode scalar values.
func (f *File) location(off uint32) (LineCol, error) {
	size := f.Size()
	if off > size {
		return LineCol{}, &OffsetOutOfBoundsError{File: f.ID, Offset: off, Len: size}
	}
	if off < size && !utf8.RuneStart(f.Content[off]) {
		return LineCol{}, &CharBoundaryError{File: f.ID, Offset: off}
	}

	line := f.lineIndexFor(off)
	var start uint32
	if line > 0 {
		start = f.LineIdx[line-1] + 1
	}
	col, err := safecast.Conv[uint32](utf8.RuneCount(f.Content[start:off]))
	if err != nil {
		panic(fmt.Errorf("column overflow: %w", err))
	}
	return LineCol{Line: line + 1, Col: col + 1}, nil
}

func normalizePath(p string) string {
	// one canonical spelling across platforms
	return filepath.ToSlash(filepath.Clean(p))
}

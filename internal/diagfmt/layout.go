package diagfmt

import (
	"sort"
	"strconv"
	"strings"

	"codemark/internal/diag"
	"codemark/internal/source"
)

// singleMark underlines a byte range inside one line.
type singleMark struct {
	style   markStyle
	start   int // byte offset within the line
	end     int
	message string
}

// multiMarkKind is the role a bracket plays on one line.
type multiMarkKind uint8

const (
	// markTopLeft opens a bracket whose prefix is all whitespace.
	markTopLeft multiMarkKind = iota
	// markTop opens a bracket under a non-blank prefix.
	markTop
	// markLeft continues a bracket through an intervening line.
	markLeft
	// markBottom closes a bracket, carrying the label message.
	markBottom
)

// multiMark is one multi-line bracket's presence on one line. index is
// the bracket column assigned to the label, stable across all lines it
// spans.
type multiMark struct {
	index   int
	style   markStyle
	kind    multiMarkKind
	end     int    // markTop: prefix length; markBottom: underline end (bytes)
	message string // markBottom only
}

// lineLayout is one source line ready to render.
type lineLayout struct {
	number     uint32
	span       source.Span
	source     string
	singles    []singleMark
	multis     []multiMark
	mustRender bool
}

type rowKind uint8

const (
	rowLine rowKind = iota
	rowBreak
)

// renderRow is one row of snippet output: either a source line (with
// its mark rows) or a break marking skipped lines.
type renderRow struct {
	kind   rowKind
	line   *lineLayout // rowLine
	multis []multiMark // rowBreak: marks of the next rendered line
}

// fileLayout is one file's snippet, fully resolved.
type fileLayout struct {
	name     string
	locus    source.LineCol
	numMulti int
	rows     []renderRow
}

// layout is the resolved form of a diagnostic: everything the renderer
// needs, with no position lookups left to fail.
type layout struct {
	files   []*fileLayout
	padding int // digits reserved for line numbers
}

// fileBuilder accumulates one file's lines while labels are processed.
type fileBuilder struct {
	id       source.FileID
	name     string
	content  []byte
	start    uint32 // locus candidate offset
	maxStyle diag.LabelStyle
	numMulti int
	lines    map[uint32]*lineLayout
}

func (fb *fileBuilder) line(index source.Index, lineIdx uint32) (*lineLayout, error) {
	if l, ok := fb.lines[lineIdx]; ok {
		return l, nil
	}
	span, err := index.LineRange(fb.id, lineIdx)
	if err != nil {
		return nil, err
	}
	number, err := index.LineNumber(fb.id, lineIdx)
	if err != nil {
		return nil, err
	}
	l := &lineLayout{
		number: number,
		span:   span,
		source: string(fb.content[span.Start:span.End]),
	}
	fb.lines[lineIdx] = l
	return l, nil
}

// buildLayout resolves every label of the diagnostic against the
// position index and produces the ordered, file-grouped rows. All
// index lookups happen here; an error aborts before anything is
// written.
func buildLayout(index source.Index, d diag.Diagnostic) (*layout, error) {
	var builders []*fileBuilder

	ensureFile := func(label diag.Label) (*fileBuilder, error) {
		for _, fb := range builders {
			if fb.id == label.Span.File {
				// prefer a primary label, then the earliest start,
				// as the snippet locus
				if fb.maxStyle > label.Style ||
					(fb.maxStyle == label.Style && fb.start > label.Span.Start) {
					fb.maxStyle = label.Style
					fb.start = label.Span.Start
				}
				return fb, nil
			}
		}
		name, err := index.Origin(label.Span.File)
		if err != nil {
			return nil, err
		}
		content, err := index.Source(label.Span.File)
		if err != nil {
			return nil, err
		}
		fb := &fileBuilder{
			id:       label.Span.File,
			name:     name,
			content:  content,
			start:    label.Span.Start,
			maxStyle: label.Style,
			lines:    make(map[uint32]*lineLayout),
		}
		builders = append(builders, fb)
		return fb, nil
	}

	for _, label := range d.Labels {
		fb, err := ensureFile(label)
		if err != nil {
			return nil, err
		}

		// surfaces offset and character-boundary violations up front
		if _, err := index.Location(label.Span.File, label.Span.Start); err != nil {
			return nil, err
		}
		if _, err := index.Location(label.Span.File, label.Span.End); err != nil {
			return nil, err
		}

		style := secondaryMark()
		if label.Style == diag.LabelPrimary {
			style = primaryMark(d.Severity)
		}

		startLine, err := index.LineIndex(label.Span.File, label.Span.Start)
		if err != nil {
			return nil, err
		}
		endLine, err := index.LineIndex(label.Span.File, label.Span.End)
		if err != nil {
			return nil, err
		}

		if startLine == endLine {
			l, err := fb.line(index, startLine)
			if err != nil {
				return nil, err
			}
			s := int(label.Span.Start - l.span.Start)
			e := int(label.Span.End - l.span.Start)
			if e < s {
				e = s
			}
			l.singles = insertSingle(l.singles, singleMark{
				style:   style,
				start:   s,
				end:     e,
				message: label.Message,
			})
			l.mustRender = true
			continue
		}

		bracket := fb.numMulti
		fb.numMulti++

		top, err := fb.line(index, startLine)
		if err != nil {
			return nil, err
		}
		prefix := top.source[:label.Span.Start-top.span.Start]
		if strings.TrimSpace(prefix) == "" {
			// nothing of note before the start, hang the corner
			// directly in the gutter
			top.multis = append(top.multis, multiMark{index: bracket, style: style, kind: markTopLeft})
		} else {
			top.multis = append(top.multis, multiMark{index: bracket, style: style, kind: markTop, end: len(prefix)})
		}
		top.mustRender = true

		for li := startLine + 1; li < endLine; li++ {
			l, err := fb.line(index, li)
			if err != nil {
				return nil, err
			}
			l.multis = append(l.multis, multiMark{index: bracket, style: style, kind: markLeft})
			// only the lines hugging the bracket ends render; the
			// middle of a tall bracket collapses into a break
			if li-startLine <= 1 || endLine-li <= 1 {
				l.mustRender = true
			}
		}

		bottom, err := fb.line(index, endLine)
		if err != nil {
			return nil, err
		}
		bottom.multis = append(bottom.multis, multiMark{
			index:   bracket,
			style:   style,
			kind:    markBottom,
			end:     int(label.Span.End - bottom.span.Start),
			message: label.Message,
		})
		bottom.mustRender = true
	}

	out := &layout{}
	for _, fb := range builders {
		fl, err := fb.finish(index)
		if err != nil {
			return nil, err
		}
		out.files = append(out.files, fl)
		for _, row := range fl.rows {
			if row.kind != rowLine {
				continue
			}
			if digits := len(strconv.FormatUint(uint64(row.line.number), 10)); digits > out.padding {
				out.padding = digits
			}
		}
	}
	return out, nil
}

// finish resolves the locus and flattens the line map into render
// rows, inserting context lines and breaks for gaps.
func (fb *fileBuilder) finish(index source.Index) (*fileLayout, error) {
	locus, err := index.Location(fb.id, fb.start)
	if err != nil {
		return nil, err
	}

	indices := make([]uint32, 0, len(fb.lines))
	for li := range fb.lines {
		if fb.lines[li].mustRender {
			indices = append(indices, li)
		}
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })

	fl := &fileLayout{
		name:     fb.name,
		locus:    locus,
		numMulti: fb.numMulti,
	}
	for i, li := range indices {
		if i > 0 {
			switch gap := li - indices[i-1]; {
			case gap == 2:
				// exactly one skipped line reads better shown whole
				ctx, err := fb.line(index, li-1)
				if err != nil {
					return nil, err
				}
				fl.rows = append(fl.rows, renderRow{kind: rowLine, line: ctx})
			case gap > 2:
				fl.rows = append(fl.rows, renderRow{kind: rowBreak, multis: fb.lines[li].multis})
			}
		}
		fl.rows = append(fl.rows, renderRow{kind: rowLine, line: fb.lines[li]})
	}
	return fl, nil
}

// insertSingle keeps marks ordered by (start, end); equal ranges keep
// insertion order.
func insertSingle(list []singleMark, m singleMark) []singleMark {
	i := sort.Search(len(list), func(i int) bool {
		if list[i].start != m.start {
			return list[i].start > m.start
		}
		return list[i].end > m.end
	})
	list = append(list, singleMark{})
	copy(list[i+1:], list[i:])
	list[i] = m
	return list
}

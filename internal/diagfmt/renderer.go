package diagfmt

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/fatih/color"

	"codemark/internal/diag"
)

// renderer writes layout rows to a Surface. The first write or style
// error sticks; later calls become no-ops and the error surfaces from
// the emit driver.
//
// The parts of a rendered snippet:
//
//	               ┌ outer gutter
//	               │ ┌ left border
//	               │ │ ┌ inner gutter
//	               │ │ │  ┌──────────── source ─────────────┐
//	            ┌──────────────────────────────────────────────
//	  header ── │ error[0001]: oh noes, over 9000
//	   locus ── │    ┌─ test:9:1
//	   break ── │    ·
//	    line ── │  9 │ ╭ Cupcake ipsum dolor. Sit amet
//	    line ── │ 10 │ │ marshmallow topping cheesecake
//	            │    │ ╰────────────^ blah blah
//	    note ── │    = blah blah
type renderer struct {
	out Surface
	cfg *Config
	err error
}

func newRenderer(out Surface, cfg *Config) *renderer {
	return &renderer{out: out, cfg: cfg}
}

func (r *renderer) print(s string) {
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.out, s)
}

func (r *renderer) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.out, format, args...)
}

func (r *renderer) glyph(ch rune, n int) {
	if r.err != nil || n <= 0 {
		return
	}
	r.print(strings.Repeat(string(ch), n))
}

func (r *renderer) set(c *color.Color) {
	if r.err != nil {
		return
	}
	r.err = r.out.SetStyle(c)
}

func (r *renderer) reset() {
	if r.err != nil {
		return
	}
	r.err = r.out.Reset()
}

// renderHeader writes the severity, optional code, and message:
//
//	error[E0001]: unexpected type in `+` application
//
// locusPrefix, when non-empty, is prepended as "origin:line:col: "
// (short style).
func (r *renderer) renderHeader(locusPrefix string, d diag.Diagnostic) {
	if locusPrefix != "" {
		r.printf("%s: ", locusPrefix)
	}

	r.set(r.cfg.Styles.Header(d.Severity))
	r.print(d.Severity.String())
	if d.Code != "" {
		r.printf("[%s]", d.Code)
	}
	r.set(r.cfg.Styles.HeaderMessage)
	r.printf(": %s", d.Message)
	r.reset()
	r.print("\n")
}

func (r *renderer) renderEmpty() {
	r.print("\n")
}

// renderSourceStart writes the locus line:
//
//	┌─ test:2:9
func (r *renderer) renderSourceStart(padding int, fl *fileLayout) {
	r.outerGutter(padding)

	r.set(r.cfg.Styles.SourceBorder)
	r.glyph(r.cfg.Chars.SourceBorderTopLeft, 1)
	r.glyph(r.cfg.Chars.SourceBorderTop, 1)
	r.reset()

	r.printf(" %s:%d:%d\n", fl.name, fl.locus.Line, fl.locus.Col)
}

// renderSourceLine writes one source row followed by its single-label
// underline rows and multi-label bracket rows:
//
//	10 │   │ muffin. Halvah croissant candy canes bonbon candy.
//	   │ ╭─│─────────^
func (r *renderer) renderSourceLine(padding int, line *lineLayout, numMulti int) {
	// the source row itself, with bracket continuations on the left
	r.outerGutterNumber(line.number, padding)
	r.borderLeft()

	next := 0
	for col := 0; col < numMulti; col++ {
		if next < len(line.multis) && line.multis[next].index == col {
			m := line.multis[next]
			switch m.kind {
			case markTopLeft:
				r.labelMultiTopLeft(m.style)
			case markTop:
				r.innerGutterSpace()
			case markLeft, markBottom:
				r.labelMultiLeft(m.style, nil)
			}
			next++
		} else {
			r.innerGutterSpace()
		}
	}

	r.print(" ")
	r.print(strings.TrimRightFunc(r.cfg.expandTabs(line.source), unicode.IsSpace))
	r.print("\n")

	// underline rows for single-line marks
	//
	//	│ │   │    ^^^^ oh noes
	for _, sm := range line.singles {
		r.outerGutter(padding)
		r.borderLeft()

		next = 0
		for col := 0; col < numMulti; col++ {
			if next < len(line.multis) && line.multis[next].index == col {
				m := line.multis[next]
				switch m.kind {
				case markTopLeft, markLeft, markBottom:
					r.labelMultiLeft(m.style, nil)
				case markTop:
					r.innerGutterSpace()
				}
				next++
			} else {
				r.innerGutterSpace()
			}
		}

		r.labelSingle(sm, line.source)
	}

	// bracket rows for multi-line tops and bottoms
	//
	//	│ ╰───│──────────────────^ woops
	//	│   ╭─│─────────^
	for mi, m := range line.multis {
		if m.kind == markTopLeft || m.kind == markLeft {
			continue
		}

		r.outerGutter(padding)
		r.borderLeft()

		var ul *underline
		next = 0
		for col := 0; col < numMulti; col++ {
			if next < len(line.multis) && line.multis[next].index == col {
				o := line.multis[next]
				switch {
				case o.kind == markTopLeft || o.kind == markLeft:
					r.labelMultiLeft(o.style, ul)
				case o.kind == markTop && mi > next:
					r.labelMultiLeft(o.style, ul)
				case o.kind == markBottom && mi < next:
					r.labelMultiLeft(o.style, ul)
				case o.kind == markTop && mi == next:
					ul = &underline{style: o.style, top: true}
					r.labelMultiTopLeft(o.style)
				case o.kind == markBottom && mi == next:
					ul = &underline{style: o.style, top: false}
					r.labelMultiBottomLeft(o.style)
				default:
					r.innerGutterColumn(ul)
				}
				next++
			} else {
				r.innerGutterColumn(ul)
			}
		}

		if m.kind == markTop {
			r.labelMultiTopCaret(m.style, line.source, m.end)
		} else {
			r.labelMultiBottomCaret(m.style, line.source, m.end, m.message)
		}
	}
}

// renderSourceEmpty writes a bare gutter row:
//
//	│
func (r *renderer) renderSourceEmpty(padding int) {
	r.outerGutter(padding)
	r.borderLeft()
	r.print("\n")
}

// renderSourceBreak writes a skipped-lines row, keeping open bracket
// columns visible:
//
//	· │ │
func (r *renderer) renderSourceBreak(padding int, numMulti int, multis []multiMark) {
	r.outerGutter(padding)
	r.borderLeftBreak()

	// only markLeft continuations draw here, and only they advance the
	// cursor: a top or bottom mark at a lower column leaves the rest of
	// the row blank
	next := 0
	for col := 0; col < numMulti; col++ {
		if next < len(multis) && multis[next].index == col && multis[next].kind == markLeft {
			r.labelMultiLeft(multis[next].style, nil)
			next++
		} else {
			r.innerGutterSpace()
		}
	}

	r.print("\n")
}

// renderSourceNote writes a trailing note, bulleting the first
// physical line and aligning the rest:
//
//	= expected type `Int`
//	     found type `String`
func (r *renderer) renderSourceNote(padding int, message string) {
	for i, noteLine := range strings.Split(strings.TrimSuffix(message, "\n"), "\n") {
		r.outerGutter(padding)
		if i == 0 {
			r.set(r.cfg.Styles.NoteBullet)
			r.glyph(r.cfg.Chars.NoteBullet, 1)
			r.reset()
		} else {
			r.print(" ")
		}
		r.printf(" %s\n", noteLine)
	}
}

// underline tracks an in-progress horizontal bracket stroke crossing
// the inner gutter.
type underline struct {
	style markStyle
	top   bool
}

// outerGutter writes the line number column without a number.
func (r *renderer) outerGutter(padding int) {
	r.printf(" %*s ", padding, "")
}

// outerGutterNumber writes the line number column.
func (r *renderer) outerGutterNumber(number uint32, padding int) {
	r.print(" ")
	r.set(r.cfg.Styles.LineNumber)
	r.printf("%*d", padding, number)
	r.reset()
	r.print(" ")
}

func (r *renderer) borderLeft() {
	r.set(r.cfg.Styles.SourceBorder)
	r.glyph(r.cfg.Chars.SourceBorderLeft, 1)
	r.reset()
}

func (r *renderer) borderLeftBreak() {
	r.set(r.cfg.Styles.SourceBorder)
	r.glyph(r.cfg.Chars.SourceBorderLeftBreak, 1)
	r.reset()
}

// labelSingle writes the underline and message of a single-line mark.
// A zero-width mark still gets one caret so it stays visible.
func (r *renderer) labelSingle(m singleMark, src string) {
	pad := r.cfg.width(src[:m.start])
	r.printf(" %*s", pad, "")
	r.set(r.cfg.Styles.Label(m.style))
	n := r.cfg.width(src[m.start:m.end])
	if n < 1 {
		n = 1
	}
	r.glyph(r.cfg.Chars.singleCaret(m.style), n)
	if m.message != "" {
		r.printf(" %s", m.message)
	}
	r.reset()
	r.print("\n")
}

// labelMultiLeft writes one bracket continuation column, continuing a
// crossing horizontal stroke if one is in progress.
func (r *renderer) labelMultiLeft(m markStyle, ul *underline) {
	if ul == nil {
		r.print(" ")
	} else {
		r.set(r.cfg.Styles.Label(ul.style))
		r.glyph(r.cfg.Chars.MultiTop, 1)
		r.reset()
	}
	r.set(r.cfg.Styles.Label(m))
	r.glyph(r.cfg.Chars.MultiLeft, 1)
	r.reset()
}

func (r *renderer) labelMultiTopLeft(m markStyle) {
	r.print(" ")
	r.set(r.cfg.Styles.Label(m))
	r.glyph(r.cfg.Chars.MultiTopLeft, 1)
	r.reset()
}

func (r *renderer) labelMultiBottomLeft(m markStyle) {
	r.print(" ")
	r.set(r.cfg.Styles.Label(m))
	r.glyph(r.cfg.Chars.MultiBottomLeft, 1)
	r.reset()
}

// labelMultiTopCaret finishes a top bracket row:
//
//	─────────────^
func (r *renderer) labelMultiTopCaret(m markStyle, src string, prefixEnd int) {
	r.set(r.cfg.Styles.Label(m))
	r.glyph(r.cfg.Chars.MultiTop, r.cfg.width(src[:prefixEnd])+1)
	r.glyph(r.cfg.Chars.multiCaretStart(m), 1)
	r.reset()
	r.print("\n")
}

// labelMultiBottomCaret finishes a bottom bracket row:
//
//	─────────────^ expected `Int` but found `String`
func (r *renderer) labelMultiBottomCaret(m markStyle, src string, end int, message string) {
	r.set(r.cfg.Styles.Label(m))
	r.glyph(r.cfg.Chars.MultiBottom, r.cfg.width(src[:end]))
	r.glyph(r.cfg.Chars.multiCaretEnd(m), 1)
	if message != "" {
		r.printf(" %s", message)
	}
	r.reset()
	r.print("\n")
}

// innerGutterColumn writes an empty bracket column or continues a
// crossing horizontal stroke.
func (r *renderer) innerGutterColumn(ul *underline) {
	switch {
	case ul == nil:
		r.innerGutterSpace()
	case ul.top:
		r.set(r.cfg.Styles.Label(ul.style))
		r.glyph(r.cfg.Chars.MultiTop, 2)
		r.reset()
	default:
		r.set(r.cfg.Styles.Label(ul.style))
		r.glyph(r.cfg.Chars.MultiBottom, 2)
		r.reset()
	}
}

func (r *renderer) innerGutterSpace() {
	r.print("  ")
}

package diagfmt

import (
	"bytes"
	"io"

	"github.com/fatih/color"
)

// Surface is the styled output device the renderer writes to. Text
// goes through Write; SetStyle switches the style for subsequent
// writes and Reset returns to the default. Implementations decide what
// a style means: ANSI escapes, nothing at all, or markup.
type Surface interface {
	io.Writer
	SetStyle(c *color.Color) error
	Reset() error
}

// ColorSurface renders styles as ANSI escape sequences using the
// fatih/color machinery, honoring color.NoColor.
type ColorSurface struct {
	w      io.Writer
	active *color.Color
}

// NewColorSurface wraps a writer, usually a terminal.
func NewColorSurface(w io.Writer) *ColorSurface {
	return &ColorSurface{w: w}
}

func (s *ColorSurface) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

// SetStyle starts styling subsequent writes. A nil style is a reset.
func (s *ColorSurface) SetStyle(c *color.Color) error {
	if err := s.Reset(); err != nil {
		return err
	}
	if c == nil {
		return nil
	}
	c.SetWriter(s.w)
	s.active = c
	return nil
}

// Reset ends the active style, if any.
func (s *ColorSurface) Reset() error {
	if s.active == nil {
		return nil
	}
	s.active.UnsetWriter(s.w)
	s.active = nil
	return nil
}

// PlainSurface discards styles and passes text through unchanged.
type PlainSurface struct {
	w io.Writer
}

// NewPlainSurface wraps a writer with no-op styling.
func NewPlainSurface(w io.Writer) *PlainSurface {
	return &PlainSurface{w: w}
}

func (s *PlainSurface) Write(p []byte) (int, error) { return s.w.Write(p) }

func (s *PlainSurface) SetStyle(*color.Color) error { return nil }

func (s *PlainSurface) Reset() error { return nil }

// BufferSurface collects unstyled output in memory. Useful for tests
// and for building plain strings.
type BufferSurface struct {
	buf bytes.Buffer
}

// NewBufferSurface returns an empty buffered surface.
func NewBufferSurface() *BufferSurface {
	return &BufferSurface{}
}

func (s *BufferSurface) Write(p []byte) (int, error) { return s.buf.Write(p) }

func (s *BufferSurface) SetStyle(*color.Color) error { return nil }

func (s *BufferSurface) Reset() error { return nil }

// String returns everything written so far.
func (s *BufferSurface) String() string { return s.buf.String() }

package diagfmt

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
)

func TestColorSurfaceEmitsEscapes(t *testing.T) {
	var buf bytes.Buffer
	s := NewColorSurface(&buf)

	red := color.New(color.FgRed)
	red.EnableColor()

	if err := s.SetStyle(red); err != nil {
		t.Fatalf("SetStyle() error: %v", err)
	}
	if _, err := s.Write([]byte("x")); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset() error: %v", err)
	}

	got := buf.String()
	want := "\x1b[31mx\x1b[0m"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestColorSurfaceSetStyleReplacesActive(t *testing.T) {
	var buf bytes.Buffer
	s := NewColorSurface(&buf)

	red := color.New(color.FgRed)
	red.EnableColor()
	blue := color.New(color.FgBlue)
	blue.EnableColor()

	if err := s.SetStyle(red); err != nil {
		t.Fatalf("SetStyle(red) error: %v", err)
	}
	if err := s.SetStyle(blue); err != nil {
		t.Fatalf("SetStyle(blue) error: %v", err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset() error: %v", err)
	}

	got := buf.String()
	// the first style is closed before the second opens
	want := "\x1b[31m\x1b[0m\x1b[34m\x1b[0m"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestPlainSurfacePassesTextThrough(t *testing.T) {
	var buf bytes.Buffer
	s := NewPlainSurface(&buf)

	red := color.New(color.FgRed)
	red.EnableColor()

	if err := s.SetStyle(red); err != nil {
		t.Fatalf("SetStyle() error: %v", err)
	}
	if _, err := s.Write([]byte("plain")); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset() error: %v", err)
	}

	if got := buf.String(); got != "plain" {
		t.Errorf("output = %q, want %q", got, "plain")
	}
}

func TestBufferSurface(t *testing.T) {
	s := NewBufferSurface()
	if _, err := s.Write([]byte("ab")); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := s.SetStyle(color.New(color.Bold)); err != nil {
		t.Fatalf("SetStyle() error: %v", err)
	}
	if _, err := s.Write([]byte("cd")); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if got := s.String(); got != "abcd" {
		t.Errorf("String() = %q, want %q", got, "abcd")
	}
}

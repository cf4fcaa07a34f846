package source

import (
	"fmt"

	"fortio.org/safecast"
)

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // byte offsets of every '\n'
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
// Columns count Unicode scalar values, not bytes.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// Size returns the content length in bytes.
func (f *File) Size() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	return n
}

// LineCount returns the number of lines in the file. An empty file has
// one line; a trailing newline opens a final empty line.
func (f *File) LineCount() uint32 {
	n, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	return n + 1
}

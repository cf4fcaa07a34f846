package source

import "fmt"

// Index resolves file handles and byte offsets into human-readable
// positions. The renderer talks to sources only through this interface,
// so callers can plug in their own file storage. Implementations must
// not mutate underlying content while a render is in flight.
type Index interface {
	// Origin returns the display name of the file.
	Origin(id FileID) (string, error)
	// Source returns the raw content of the file.
	Source(id FileID) ([]byte, error)
	// LineIndex returns the 0-based line containing the byte offset.
	// An offset equal to the file length resolves to the last line.
	LineIndex(id FileID, offset uint32) (uint32, error)
	// LineRange returns the byte range of the 0-based line, including
	// its trailing newline if present.
	LineRange(id FileID, line uint32) (Span, error)
	// LineNumber returns the display number for a 0-based line.
	LineNumber(id FileID, line uint32) (uint32, error)
	// Location resolves a byte offset to a 1-based line/column pair.
	// Columns count Unicode scalar values from the line start.
	Location(id FileID, offset uint32) (LineCol, error)
}

// MissingFileError reports a file handle unknown to the index.
type MissingFileError struct {
	File FileID
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("file %d not found in index", e.File)
}

// OffsetOutOfBoundsError reports a byte offset past the end of a file.
type OffsetOutOfBoundsError struct {
	File   FileID
	Offset uint32
	Len    uint32
}

func (e *OffsetOutOfBoundsError) Error() string {
	return fmt.Sprintf("offset %d out of bounds for file %d (len %d)", e.Offset, e.File, e.Len)
}

// CharBoundaryError reports a byte offset that lands inside a
// multi-byte character.
type CharBoundaryError struct {
	File   FileID
	Offset uint32
}

func (e *CharBoundaryError) Error() string {
	return fmt.Sprintf("offset %d is not a character boundary in file %d", e.Offset, e.File)
}

// LineOutOfBoundsError reports a line index past the last line of a file.
type LineOutOfBoundsError struct {
	File FileID
	Line uint32
	Max  uint32 // number of lines in the file
}

func (e *LineOutOfBoundsError) Error() string {
	return fmt.Sprintf("line %d out of bounds for file %d (max %d)", e.Line, e.File, e.Max)
}

package source

// SingleFile is an Index over exactly one named in-memory buffer.
// The only valid file ID is 0. Handy for tools that render diagnostics
// for a single input without the bookkeeping of a FileSet.
type SingleFile struct {
	file File
}

// NewSingleFile builds a SingleFile from a display name and content.
// Content is used as given: no CRLF or BOM normalization.
func NewSingleFile(name string, content []byte) *SingleFile {
	return &SingleFile{
		file: File{
			ID:      0,
			Path:    name,
			Content: content,
			LineIdx: buildLineIndex(content),
			Flags:   FileVirtual,
		},
	}
}

func (sf *SingleFile) get(id FileID) (*File, error) {
	if id != 0 {
		return nil, &MissingFileError{File: id}
	}
	return &sf.file, nil
}

// Origin implements Index.
func (sf *SingleFile) Origin(id FileID) (string, error) {
	f, err := sf.get(id)
	if err != nil {
		return "", err
	}
	return f.Path, nil
}

// Source implements Index.
func (sf *SingleFile) Source(id FileID) ([]byte, error) {
	f, err := sf.get(id)
	if err != nil {
		return nil, err
	}
	return f.Content, nil
}

// LineIndex implements Index.
func (sf *SingleFile) LineIndex(id FileID, offset uint32) (uint32, error) {
	f, err := sf.get(id)
	if err != nil {
		return 0, err
	}
	if size := f.Size(); offset > size {
		return 0, &OffsetOutOfBoundsError{File: id, Offset: offset, Len: size}
	}
	return f.lineIndexFor(offset), nil
}

// LineRange implements Index.
func (sf *SingleFile) LineRange(id FileID, line uint32) (Span, error) {
	f, err := sf.get(id)
	if err != nil {
		return Span{}, err
	}
	return f.lineRange(line)
}

// LineNumber implements Index.
func (sf *SingleFile) LineNumber(id FileID, line uint32) (uint32, error) {
	f, err := sf.get(id)
	if err != nil {
		return 0, err
	}
	if count := f.LineCount(); line >= count {
		return 0, &LineOutOfBoundsError{File: id, Line: line, Max: count}
	}
	return line + 1, nil
}

// Location implements Index.
func (sf *SingleFile) Location(id FileID, offset uint32) (LineCol, error) {
	f, err := sf.get(id)
	if err != nil {
		return LineCol{}, err
	}
	return f.location(offset)
}

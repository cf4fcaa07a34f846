package source

import (
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet manages a collection of source files and resolves byte
// offsets into positions. It implements Index.
type FileSet struct {
	files []File
	index map[string]FileID // path -> id
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// Add stores a file from normalized bytes, computes LineIdx, and returns
// a new FileID. It always creates a new FileID even if a file with the
// same path already exists.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	lineIdx := buildLineIndex(content)
	normalizedPath := normalizePath(path)

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		LineIdx: lineIdx,
		Flags:   flags,
	})
	// the index always points at the latest version of the path
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads a file from disk, normalizes CRLF/BOM, and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags), nil
}

// AddContent normalizes CRLF/BOM in content read elsewhere and calls
// Add. It is Load without the disk read.
func (fileSet *FileSet) AddContent(path string, content []byte) FileID {
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags)
}

// AddVirtual adds a virtual file (stdin, test, or generated) with the
// FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file metadata for the given ID, or an error if the
// ID was never issued by this set.
func (fileSet *FileSet) Get(id FileID) (*File, error) {
	if uint32(id) >= uint32(len(fileSet.files)) {
		return nil, &MissingFileError{File: id}
	}
	return &fileSet.files[id], nil
}

// Lookup returns the latest file ID for the given path, if it exists.
func (fileSet *FileSet) Lookup(path string) (FileID, bool) {
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// Len returns the number of files in the set.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// Resolve converts a span into start and end positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol, err error) {
	f, err := fileSet.Get(span.File)
	if err != nil {
		return LineCol{}, LineCol{}, err
	}
	if start, err = f.location(span.Start); err != nil {
		return LineCol{}, LineCol{}, err
	}
	if end, err = f.location(span.End); err != nil {
		return LineCol{}, LineCol{}, err
	}
	return start, end, nil
}

// Origin implements Index.
func (fileSet *FileSet) Origin(id FileID) (string, error) {
	f, err := fileSet.Get(id)
	if err != nil {
		return "", err
	}
	return f.Path, nil
}

// Source implements Index.
func (fileSet *FileSet) Source(id FileID) ([]byte, error) {
	f, err := fileSet.Get(id)
	if err != nil {
		return nil, err
	}
	return f.Content, nil
}

// LineIndex implements Index.
func (fileSet *FileSet) LineIndex(id FileID, offset uint32) (uint32, error) {
	f, err := fileSet.Get(id)
	if err != nil {
		return 0, err
	}
	if size := f.Size(); offset > size {
		return 0, &OffsetOutOfBoundsError{File: id, Offset: offset, Len: size}
	}
	return f.lineIndexFor(offset), nil
}

// LineRange implements Index.
func (fileSet *FileSet) LineRange(id FileID, line uint32) (Span, error) {
	f, err := fileSet.Get(id)
	if err != nil {
		return Span{}, err
	}
	return f.lineRange(line)
}

// LineNumber implements Index.
func (fileSet *FileSet) LineNumber(id FileID, line uint32) (uint32, error) {
	f, err := fileSet.Get(id)
	if err != nil {
		return 0, err
	}
	if count := f.LineCount(); line >= count {
		return 0, &LineOutOfBoundsError{File: id, Line: line, Max: count}
	}
	return line + 1, nil
}

// Location implements Index.
func (fileSet *FileSet) Location(id FileID, offset uint32) (LineCol, error) {
	f, err := fileSet.Get(id)
	if err != nil {
		return LineCol{}, err
	}
	return f.location(offset)
}

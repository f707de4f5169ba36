package source

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet manages the test data files loaded during one formatting run.
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

// Add stores a file from normalized bytes, computes LineIdx and Hash, and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
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
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
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
	content, flags := Normalize(content)
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds a virtual file (stdin or test input) with the FileVirtual flag.
// Content is normalized the same way Load does.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	content, flags := Normalize(content)
	return fileSet.Add(name, content, flags|FileVirtual)
}

// Get returns the file metadata for the given ID, or nil when the ID is unknown.
func (fileSet *FileSet) Get(id FileID) *File {
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return &fileSet.files[id]
}

// GetByPath returns the latest version of the file loaded under path.
func (fileSet *FileSet) GetByPath(path string) (*File, bool) {
	if id, ok := fileSet.index[normalizePath(path)]; ok {
		return &fileSet.files[id], true
	}
	return nil, false
}

// Len reports how many files were added.
func (fileSet *FileSet) Len() int { return len(fileSet.files) }

// Normalize strips a UTF-8 BOM and converts CRLF to LF, reporting what was changed.
func Normalize(content []byte) ([]byte, FileFlags) {
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return content, flags
}

// Restore converts normalized output back to the file's original conventions
// (CRLF line endings, leading BOM).
func (f *File) Restore(out []byte) []byte {
	if f.Flags&FileNormalizedCRLF != 0 {
		out = bytes.ReplaceAll(out, []byte{'\n'}, []byte{'\r', '\n'})
	}
	if f.Flags&FileHadBOM != 0 {
		out = append(append(make([]byte, 0, len(bom)+len(out)), bom...), out...)
	}
	return out
}

// LineCount returns the number of lines in the file; a trailing newline does not open a new line.
func (f *File) LineCount() int {
	n := len(f.LineIdx)
	if len(f.Content) > 0 && f.Content[len(f.Content)-1] != '\n' {
		n++
	}
	return n
}

// GetLine возвращает строку с заданным номером (1-based) без завершающего \n.
// Если строка не существует, возвращает пустую строку.
func (f *File) GetLine(lineNum int) string {
	if lineNum <= 0 || lineNum > f.LineCount() {
		return ""
	}
	start := 0
	if lineNum > 1 {
		start = int(f.LineIdx[lineNum-2]) + 1
	}
	end := len(f.Content)
	if lineNum-1 < len(f.LineIdx) {
		end = int(f.LineIdx[lineNum-1])
	}
	if start >= end {
		return ""
	}
	return string(f.Content[start:end])
}

package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (script, stdin, test).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileDecodedUTF16
)

// File is a named, immutable source buffer: the analysis target or one of the
// engine scripts.
type File struct {
	ID      FileID
	Name    string // display name used in diagnostics
	Content []byte
	LineIdx []uint32 // byte offsets of every '\n'
	Flags   FileFlags
}

// Text returns the content as a string.
func (f *File) Text() string {
	return string(f.Content)
}

// Len returns the content size in bytes.
func (f *File) Len() int {
	return len(f.Content)
}

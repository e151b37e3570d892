package source

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// StdinName is the display name of a document read from standard input.
const StdinName = "<stdin>"

// ChunkSize is the read size used when draining a stream.
const ChunkSize = 4096

var (
	// ErrNoSource reports that the analysis target is empty.
	ErrNoSource = errors.New("no source to analyze")
	// ErrFileUnreadable reports that the named target could not be opened or read.
	ErrFileUnreadable = errors.New("source file unreadable")
)

// LoadFile reads the named file fully and registers it under its path.
// Open and read failures wrap ErrFileUnreadable; an empty file is ErrNoSource.
func (fileSet *FileSet) LoadFile(path string) (*File, error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileUnreadable, err)
	}
	defer f.Close()

	var content []byte
	info, err := f.Stat()
	if err == nil && info.Mode().IsRegular() && info.Size() > 0 {
		content = make([]byte, info.Size())
		if _, err := io.ReadFull(f, content); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrFileUnreadable, path, err)
		}
	} else {
		// size unknown (pipe, device, procfs): fall back to chunked reads
		content, err = readChunks(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrFileUnreadable, path, err)
		}
	}
	return fileSet.addDocument(path, content, 0)
}

// ReadStream drains r in ChunkSize pieces and registers the result under name.
// Zero bytes read is ErrNoSource.
func (fileSet *FileSet) ReadStream(r io.Reader, name string) (*File, error) {
	if name == "" {
		name = StdinName
	}
	content, err := readChunks(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return fileSet.addDocument(name, content, FileVirtual)
}

func (fileSet *FileSet) addDocument(name string, content []byte, flags FileFlags) (*File, error) {
	decoded, extra, err := decodeText(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(decoded) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrNoSource, name)
	}
	if err := checkIndexable(len(decoded)); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	id := fileSet.Add(name, decoded, flags|extra)
	return fileSet.Get(id), nil
}

func readChunks(r io.Reader) ([]byte, error) {
	var out []byte
	chunk := make([]byte, ChunkSize)
	for {
		n, err := r.Read(chunk)
		out = append(out, chunk[:n]...)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
	}
}
